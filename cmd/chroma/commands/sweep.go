/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sweep.go
Description: Sweep command. Classifies a grid over the colour cube, prints label tallies,
optionally writes a JSON report and an HTML dashboard and plots a histogram of brightness
or LED codes.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/kleascm/akaylee-chroma/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunSweep sweeps the colour cube with the active rule base
func RunSweep(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	c, err := loadClassifier(logger)
	if err != nil {
		return err
	}

	histogram := viper.GetString("sweep.histogram")
	reportDir := viper.GetString("sweep.report_dir")
	dashboardDir := viper.GetString("sweep.dashboard")
	keep := histogram != "" || reportDir != "" || dashboardDir != ""

	rep, err := report.Sweep(c, viper.GetFloat64("sweep.step"), keep)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"rule_base":    rep.RuleBase,
		"unclassified": rep.Unclassified,
	}
	if reportDir != "" {
		path, err := report.Write(reportDir, rep)
		if err != nil {
			return err
		}
		fields["report"] = path
	}
	if dashboardDir != "" {
		path, err := report.NewDashboardGenerator(dashboardDir, logger.GetLogger()).GenerateDashboard(rep)
		if err != nil {
			return fmt.Errorf("failed to generate dashboard: %w", err)
		}
		fields["dashboard"] = path
	}
	logger.LogSweep(rep.ID, rep.Samples, rep.Duration, fields)
	if rep.Unclassified > 0 {
		logger.Warning("Sweep left colours unclassified", map[string]interface{}{
			"report_id":    rep.ID,
			"unclassified": rep.Unclassified,
		})
	}

	printSweep(rep)
	if path, ok := fields["report"]; ok {
		fmt.Printf("\n💾 Report written to %s\n", path)
	}
	if path, ok := fields["dashboard"]; ok {
		fmt.Printf("🖼️  Dashboard written to %s\n", path)
	}

	if histogram != "" {
		fmt.Printf("\n📊 %s distribution\n", histogram)
		if err := rep.FprintHistogram(os.Stdout, histogram, viper.GetInt("sweep.bins"), viper.GetInt("sweep.width")); err != nil {
			return fmt.Errorf("failed to plot histogram: %w", err)
		}
	}
	return nil
}

func printSweep(rep *report.Report) {
	fmt.Println("🌈 Chroma - Colour Cube Sweep")
	fmt.Println("=============================")
	fmt.Printf("Rule base:    %s\n", rep.RuleBase)
	fmt.Printf("Step:         %g\n", rep.Step)
	fmt.Printf("Samples:      %d\n", rep.Samples)
	fmt.Printf("Unclassified: %d\n", rep.Unclassified)
	fmt.Printf("Duration:     %v\n", rep.Duration)

	fmt.Println()
	fmt.Println("Colors:")
	for _, c := range rep.ColorCounts {
		fmt.Printf("   %-10s %6d  %5.1f%%\n", c.Label, c.Count, percent(c.Count, rep.Samples))
	}
	fmt.Println()
	fmt.Println("Luminosity:")
	for _, c := range rep.LuminosityCounts {
		fmt.Printf("   %-10s %6d  %5.1f%%\n", c.Label, c.Count, percent(c.Count, rep.Samples))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
