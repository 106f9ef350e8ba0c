/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: classify.go
Description: Classify and evaluate commands. Classify prints the colour and luminosity
labels of one RGB value, optionally with the full inference trace; evaluate runs the
numeric rule base.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-chroma/pkg/chroma"
	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Classification is the JSON form of one classify run.
type Classification struct {
	Red        float64     `json:"red"`
	Green      float64     `json:"green"`
	Blue       float64     `json:"blue"`
	Hex        string      `json:"hex"`
	Color      fuzzy.Label `json:"color"`
	Luminosity fuzzy.Label `json:"luminosity"`
	LedCode    float64     `json:"led_code"`
	Brightness float64     `json:"brightness"`
}

// RunClassify classifies the RGB value given as arguments
func RunClassify(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	values, err := fuzzy.ParseInputs(args)
	if err != nil {
		return err
	}

	c, err := loadClassifier(logger)
	if err != nil {
		return err
	}
	if err := c.SetColor(values[0], values[1], values[2]); err != nil {
		return fmt.Errorf("failed to classify: %w", err)
	}

	r, g, b := c.Channels()
	result := Classification{
		Red:        r,
		Green:      g,
		Blue:       b,
		Hex:        c.Hex(),
		Color:      c.Color(),
		Luminosity: c.Luminosity(),
		LedCode:    c.LedCode(),
		Brightness: c.Brightness(),
	}
	logger.LogClassification(c.Engine().ID(), [3]float64{r, g, b}, result.Color.Term, result.Luminosity.Term, map[string]interface{}{
		"degree":     result.Color.Degree,
		"brightness": result.Brightness,
	})

	if viper.GetBool("classify.json") {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printClassification(result)
	if viper.GetBool("classify.explain") {
		return printExplanation(c)
	}
	return nil
}

func printClassification(res Classification) {
	fmt.Println("🎨 Chroma - Classification")
	fmt.Println("==========================")
	fmt.Printf("Input:      R=%g G=%g B=%g (%s)\n", res.Red, res.Green, res.Blue, res.Hex)
	fmt.Printf("Color:      %s\n", labelOrNone(res.Color))
	fmt.Printf("Luminosity: %s\n", labelOrNone(res.Luminosity))
	fmt.Printf("LED code:   %.1f\n", res.LedCode)
	fmt.Printf("Brightness: %.1f\n", res.Brightness)
}

func labelOrNone(l fuzzy.Label) string {
	if !l.Fired {
		return "(no rule fired)"
	}
	return l.String()
}

// printExplanation shows every stage of the inference for the current snapshot.
func printExplanation(c *chroma.Classifier) error {
	engine := c.Engine()

	fmt.Println()
	fmt.Println("🔍 Fuzzified inputs")
	for _, v := range engine.InputVariables() {
		acts, err := engine.Fuzzified(v.Name)
		if err != nil {
			return err
		}
		fmt.Printf("   %-6s %s\n", v.Name, formatActivations(acts))
	}

	fmt.Println()
	fmt.Println("📐 Term supports")
	for _, o := range engine.OutputVariables() {
		acts, err := engine.Activations(o.Name)
		if err != nil {
			return err
		}
		fmt.Printf("   %-10s %s\n", o.Name, formatActivations(acts))
	}

	fmt.Println()
	fmt.Println("🔥 Fired rules")
	rules := engine.Rules()
	for i, s := range engine.FiringStrengths() {
		if s > 0 {
			fmt.Printf("   %.3f  %s\n", s, rules[i])
		}
	}
	return nil
}

// formatActivations lists only the non-zero degrees.
func formatActivations(acts []fuzzy.Activation) string {
	var parts []string
	for _, a := range acts {
		if a.Degree > 0 {
			parts = append(parts, fmt.Sprintf("%s=%.3f", a.Term, a.Degree))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// RunEvaluate runs the numeric evaluation rule base on X and Y
func RunEvaluate(cmd *cobra.Command, args []string) error {
	logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	values, err := fuzzy.ParseInputs(args)
	if err != nil {
		return err
	}

	c, err := loadClassifier(logger)
	if err != nil {
		return err
	}
	result, err := c.Evaluate(values[0], values[1])
	if err != nil {
		return fmt.Errorf("failed to evaluate: %w", err)
	}
	logger.LogEvaluation(c.Evaluator().ID(), values[0], values[1], result)

	fmt.Println("🧮 Chroma - Evaluation")
	fmt.Println("======================")
	fmt.Printf("x=%g y=%g -> %.3f\n", values[0], values[1], result)
	return nil
}
