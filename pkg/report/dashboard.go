/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dashboard.go
Description: HTML dashboard for sweep reports. Renders the label tallies as Chart.js
charts and every kept grid point as a swatch coloured with its own RGB value and titled
with its labels.
*/

package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// swatches are the chart colours of the built-in colour labels.
var swatches = map[string]string{
	"black":     "#000000",
	"blue":      "#0000FF",
	"ocean":     "#006994",
	"green":     "#008000",
	"turquoise": "#40E0D0",
	"cyan":      "#00FFFF",
	"purple":    "#800080",
	"grey":      "#808080",
	"lime":      "#BFFF00",
	"red":       "#FF0000",
	"raspberry": "#E30B5C",
	"magenta":   "#FF00FF",
	"orange":    "#FFA500",
	"yellow":    "#FFFF00",
	"white":     "#FFFFFF",
	"dark":      "#1A1A1A",
	"dim":       "#4D4D4D",
	"medium":    "#808080",
	"bright":    "#B3B3B3",
	"brilliant": "#E6E6E6",
}

const defaultSwatch = "#9E9E9E"

// DashboardGenerator renders sweep reports as HTML pages
type DashboardGenerator struct {
	outputDir string
	logger    *logrus.Logger
	templates *template.Template
}

// DashboardData is what the dashboard template renders
type DashboardData struct {
	Title           string
	Report          *Report
	Classified      int
	ColorChart      *ChartConfig
	LuminosityChart *ChartConfig
}

// ChartConfig is a Chart.js configuration, encoded as JSON inside the page script
type ChartConfig struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data"`
	Options interface{} `json:"options"`
}

// NewDashboardGenerator creates a generator writing below outputDir
func NewDashboardGenerator(outputDir string, logger *logrus.Logger) *DashboardGenerator {
	if logger == nil {
		logger = logrus.New()
	}
	return &DashboardGenerator{
		outputDir: outputDir,
		logger:    logger,
		templates: template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

// GenerateDashboard writes <outputDir>/<rule_base>_<id8>.html and returns its path
func (dg *DashboardGenerator) GenerateDashboard(rep *Report) (string, error) {
	if dg.outputDir == "" {
		return "", fmt.Errorf("dashboard directory must not be empty")
	}
	if err := os.MkdirAll(dg.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	name := rep.RuleBase
	if name == "" {
		name = "unnamed"
	}
	id := rep.ID
	if len(id) > 8 {
		id = id[:8]
	}
	outputFile := filepath.Join(dg.outputDir, fmt.Sprintf("%s_%s.html", name, id))

	file, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	data := &DashboardData{
		Title:           fmt.Sprintf("Colour cube sweep of %s", name),
		Report:          rep,
		Classified:      rep.Samples - rep.Unclassified,
		ColorChart:      dg.createCountChart("bar", "Grid points", rep.ColorCounts),
		LuminosityChart: dg.createCountChart("doughnut", "Grid points", rep.LuminosityCounts),
	}
	if err := dg.templates.Execute(file, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	dg.logger.WithFields(logrus.Fields{
		"report_id": rep.ID,
		"dashboard": outputFile,
	}).Info("Sweep dashboard generated")
	return outputFile, nil
}

// createCountChart plots label tallies, each bar in the colour the label names.
func (dg *DashboardGenerator) createCountChart(kind, label string, counts []Count) *ChartConfig {
	labels := make([]string, len(counts))
	values := make([]int, len(counts))
	colors := make([]string, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		values[i] = c.Count
		colors[i] = defaultSwatch
		if s, ok := swatches[c.Label]; ok {
			colors[i] = s
		}
	}

	options := map[string]interface{}{"responsive": true}
	if kind == "bar" {
		options["scales"] = map[string]interface{}{
			"y": map[string]interface{}{"beginAtZero": true},
		}
		options["plugins"] = map[string]interface{}{
			"legend": map[string]interface{}{"display": false},
		}
	}

	return &ChartConfig{
		Type: kind,
		Data: map[string]interface{}{
			"labels": labels,
			"datasets": []map[string]interface{}{
				{
					"label":           label,
					"data":            values,
					"backgroundColor": colors,
					"borderColor":     "#4a5568",
					"borderWidth":     1,
				},
			},
		},
		Options: options,
	}
}
