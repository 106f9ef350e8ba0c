/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: export.go
Description: Export command. Renders the active rule base as Fuzzy Control Language or as
a YAML/JSON rule-base document.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/kleascm/akaylee-chroma/pkg/chroma"
	"github.com/kleascm/akaylee-chroma/pkg/rulebase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunExport writes the active rule base in the requested format
func RunExport(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	format := viper.GetString("export.format")
	var data []byte
	switch format {
	case "fcl":
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		data = []byte(engine.Export())
	case string(rulebase.FormatYAML), string(rulebase.FormatJSON):
		doc, err := activeDocument()
		if err != nil {
			return err
		}
		if data, err = rulebase.Encode(doc, rulebase.Format(format)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q (use fcl, yaml or json)", format)
	}

	output := viper.GetString("export.output")
	if output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("Rule base exported", map[string]interface{}{
		"format": format,
		"output": output,
	})
	fmt.Printf("📝 Exported %s rule base to %s\n", format, output)
	return nil
}

// activeDocument returns the --rulebase document as loaded, or the built-in rule base for
// --mode as a document.
func activeDocument() (*rulebase.Document, error) {
	if path := viper.GetString("rulebase"); path != "" {
		doc, err := rulebase.Load(path)
		if err != nil {
			return nil, err
		}
		// configure to reject invalid documents before re-encoding them
		if _, err := doc.Configure(); err != nil {
			return nil, fmt.Errorf("failed to configure rule base %s: %w", path, err)
		}
		return doc, nil
	}

	rb, err := chroma.ColorRuleBase(chroma.Mode(viper.GetInt("mode")))
	if err != nil {
		return nil, err
	}
	return rulebase.FromRuleBase(rb), nil
}
