/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Writes sweep reports as timestamped JSON files under a report directory,
one subdirectory per rule base.
*/

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write stores the report as <dir>/<rule_base>/<timestamp>_<id8>.json and returns the path.
func Write(dir string, rep *Report) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("report directory must not be empty")
	}
	name := rep.RuleBase
	if name == "" {
		name = "unnamed"
	}
	reportDir := filepath.Join(dir, name)
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	// 2024-06-11_01-30-00_1b4e28ba.json
	id := rep.ID
	if len(id) > 8 {
		id = id[:8]
	}
	filename := fmt.Sprintf("%s_%s.json", rep.GeneratedAt.Format("2006-01-02_15-04-05"), id)
	path := filepath.Join(reportDir, filename)

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return path, nil
}

// Read loads a report written by Write.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &rep, nil
}
