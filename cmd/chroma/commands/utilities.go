/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utilities.go
Description: Utility commands for Chroma. Provides list-terms and the rule-base self-check
used to validate built-in and user-supplied rule bases before use.
*/

package commands

import (
	"fmt"
	"math"

	"github.com/kleascm/akaylee-chroma/pkg/chroma"
	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"github.com/kleascm/akaylee-chroma/pkg/report"
	"github.com/spf13/cobra"
)

// ListTerms lists the variables, terms, operators and rules of the active rule base
func ListTerms(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	fmt.Printf("🧬 Chroma - Rule Base %q\n", engine.Name())
	fmt.Println("==============================")
	fmt.Println()

	fmt.Println("Inputs:")
	for _, v := range engine.InputVariables() {
		printVariable(&v.Variable)
	}
	fmt.Println("Outputs:")
	for _, o := range engine.OutputVariables() {
		printVariable(&o.Variable)
	}

	rules := engine.Rules()
	fmt.Printf("Rules (%d):\n", len(rules))
	for i, r := range rules {
		fmt.Printf("%4d. %s\n", i+1, r)
	}
	return nil
}

func printVariable(v *fuzzy.Variable) {
	fmt.Printf("   %s [%g, %g]\n", v.Name, v.Min, v.Max)
	for _, t := range v.Terms {
		fmt.Printf("      %s\n", fuzzy.FormatTerm(t))
	}
	fmt.Println()
}

// PerformSelfCheck configures the active rule base and validates its behaviour
func PerformSelfCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Chroma - Rule Base Self-Check")
	fmt.Println("================================")
	fmt.Println()

	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	fmt.Print("🔍 Configuration... ")
	c, err := loadClassifier(logger)
	if err != nil {
		fmt.Printf("❌ FAILED: %v\n", err)
		return err
	}
	fmt.Printf("✅ PASSED (%s, %d rules)\n", c.Engine().Name(), len(c.Engine().Rules()))

	checks := []struct {
		name     string
		function func(*chroma.Classifier) error
	}{
		{"Black", checkBlack},
		{"White", checkWhite},
		{"Cube Coverage", checkCoverage},
		{"Evaluation Centre", checkEvaluation},
	}

	passed := 1
	total := len(checks) + 1

	for _, check := range checks {
		fmt.Printf("🔍 %s... ", check.name)
		if err := check.function(c); err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
			logger.Error("Self-check failed", map[string]interface{}{
				"check":     check.name,
				"rule_base": c.Engine().Name(),
				"error":     err.Error(),
			})
		} else {
			fmt.Println("✅ PASSED")
			passed++
		}
	}

	fmt.Println()
	fmt.Printf("📊 Results: %d/%d checks passed\n", passed, total)

	if passed == total {
		fmt.Println("✨ All checks passed! Rule base is ready.")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Please review the rule base.")
	return fmt.Errorf("%d/%d checks failed", total-passed, total)
}

// checkBlack expects (0,0,0) to be fully black and dark.
func checkBlack(c *chroma.Classifier) error {
	return expectLabels(c, 0, "black", "dark")
}

// checkWhite expects (15,15,15) to be fully white and brilliant.
func checkWhite(c *chroma.Classifier) error {
	return expectLabels(c, chroma.ChannelMax, "white", "brilliant")
}

func expectLabels(c *chroma.Classifier, v float64, color, luminosity string) error {
	if err := c.SetColor(v, v, v); err != nil {
		return err
	}
	got := c.Color()
	if got.Term != color || got.Degree != 1 {
		return fmt.Errorf("(%g,%g,%g) classified as %q, want %q 1.000", v, v, v, got.String(), color)
	}
	if lum := c.LuminosityLabel(); lum != luminosity {
		return fmt.Errorf("(%g,%g,%g) luminosity %q, want %q", v, v, v, lum, luminosity)
	}
	return nil
}

// checkCoverage expects every integer colour to fire at least one rule per output.
func checkCoverage(c *chroma.Classifier) error {
	rep, err := report.Sweep(c, 1, false)
	if err != nil {
		return err
	}
	if rep.Unclassified > 0 {
		return fmt.Errorf("%d of %d colours left unclassified", rep.Unclassified, rep.Samples)
	}
	return nil
}

// checkEvaluation expects the centre of the evaluation domain to map to the centre of
// the result domain.
func checkEvaluation(c *chroma.Classifier) error {
	v, err := c.Evaluate(1700, 50)
	if err != nil {
		return err
	}
	if math.Abs(v-50) > 1e-6 {
		return fmt.Errorf("evaluate(1700, 50) = %.3f, want 50", v)
	}
	return nil
}
