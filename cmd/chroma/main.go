/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for the Chroma fuzzy colour classifier. Classifies RGB
channel values, runs the numeric evaluation rule base, sweeps the colour cube and exports
or checks rule bases, with configuration through flags, a config file and CHROMA_ env vars.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/akaylee-chroma/cmd/chroma/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	mode       int
	ruleBase   string

	// Logging configuration
	logLevel    string
	logFormat   string
	logDir      string
	logMaxFiles int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chroma",
		Short: "Chroma - fuzzy RGB colour classifier",
		Long: `Chroma classifies 4-bit red, green and blue channel values into colour and
luminosity labels with a fuzzy inference engine. Rule bases are built in (triangular or
Gaussian channel terms) or loaded from YAML/JSON documents.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().IntVar(&mode, "mode", 0, "Built-in rule base (0 = triangular, 1 = gaussian)")
	rootCmd.PersistentFlags().StringVar(&ruleBase, "rulebase", "", "Rule base document (.yaml, .yml, .json); overrides --mode")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log output directory (empty = stderr only)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("rulebase", rootCmd.PersistentFlags().Lookup("rulebase"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))

	// Add classify command
	classifyCmd := &cobra.Command{
		Use:   "classify RED GREEN BLUE",
		Short: "Classify one colour",
		Long: `Classify red, green and blue channel values in [0, 15]. Values outside the range
are clamped. Prints the colour and luminosity labels with their activation degrees.`,
		Args: cobra.ExactArgs(3),
		RunE: commands.RunClassify,
	}
	classifyCmd.Flags().Bool("explain", false, "Show fuzzified inputs, term supports and fired rules")
	classifyCmd.Flags().Bool("json", false, "Print the result as JSON")
	viper.BindPFlag("classify.explain", classifyCmd.Flags().Lookup("explain"))
	viper.BindPFlag("classify.json", classifyCmd.Flags().Lookup("json"))
	rootCmd.AddCommand(classifyCmd)

	// Add evaluate command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "evaluate X Y",
		Short: "Run the numeric evaluation rule base",
		Long: `Evaluate the two-input numeric rule base (x in [0, 3400], y in [0, 100]) and
print the defuzzified result in [0, 100].`,
		Args: cobra.ExactArgs(2),
		RunE: commands.RunEvaluate,
	})

	// Add sweep command
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Classify every colour on a grid over the colour cube",
		Long: `Sweep the colour cube with a fixed step, tally how often each label wins and
optionally write a JSON report and plot a histogram of the numeric outputs.`,
		Args: cobra.NoArgs,
		RunE: commands.RunSweep,
	}
	sweepCmd.Flags().Float64("step", 1, "Grid step per channel (1 = all 4096 integer colours)")
	sweepCmd.Flags().String("report-dir", "", "Directory for JSON sweep reports (empty = no report)")
	sweepCmd.Flags().String("dashboard", "", "Directory for an HTML sweep dashboard (empty = no dashboard)")
	sweepCmd.Flags().String("histogram", "", "Plot a histogram of brightness or led_code")
	sweepCmd.Flags().Int("bins", 10, "Histogram bins")
	sweepCmd.Flags().Int("width", 50, "Histogram bar width")
	viper.BindPFlag("sweep.step", sweepCmd.Flags().Lookup("step"))
	viper.BindPFlag("sweep.report_dir", sweepCmd.Flags().Lookup("report-dir"))
	viper.BindPFlag("sweep.dashboard", sweepCmd.Flags().Lookup("dashboard"))
	viper.BindPFlag("sweep.histogram", sweepCmd.Flags().Lookup("histogram"))
	viper.BindPFlag("sweep.bins", sweepCmd.Flags().Lookup("bins"))
	viper.BindPFlag("sweep.width", sweepCmd.Flags().Lookup("width"))
	rootCmd.AddCommand(sweepCmd)

	// Add export command
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active rule base",
		Long: `Export the active rule base as Fuzzy Control Language or as a YAML/JSON rule-base
document that can be edited and loaded back with --rulebase.`,
		Args: cobra.NoArgs,
		RunE: commands.RunExport,
	}
	exportCmd.Flags().String("format", "fcl", "Export format (fcl, yaml, json)")
	exportCmd.Flags().String("output", "", "Output file (empty = stdout)")
	viper.BindPFlag("export.format", exportCmd.Flags().Lookup("format"))
	viper.BindPFlag("export.output", exportCmd.Flags().Lookup("output"))
	rootCmd.AddCommand(exportCmd)

	// Add check command for rule-base validation
	rootCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the active rule base",
		Long: `Configure the active rule base and run sanity checks: every variable covers its
domain, black and white classify as expected and the whole cube is classified.`,
		Args: cobra.NoArgs,
		RunE: commands.PerformSelfCheck,
	})

	// Add list-terms command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list-terms",
		Short: "List variables, terms and rules of the active rule base",
		Args:  cobra.NoArgs,
		RunE:  commands.ListTerms,
	})

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
