/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Demo of the chroma classifier. Classifies a handful of reference colours in
both channel modes, explains one decision rule by rule, runs the numeric evaluation and
prints the rule base in FCL and YAML.
*/

package main

import (
	"fmt"
	"log"

	"github.com/kleascm/akaylee-chroma/pkg/chroma"
	"github.com/kleascm/akaylee-chroma/pkg/rulebase"
)

var references = []struct {
	name             string
	red, green, blue float64
}{
	{"black", 0, 0, 0},
	{"pure red", 15, 0, 0},
	{"orange", 15, 7.5, 0},
	{"navy", 0, 0, 7.5},
	{"grey", 7.5, 7.5, 7.5},
	{"white", 15, 15, 15},
	{"out of range", -5, 20, 7},
}

func main() {
	fmt.Println("🌈 Akaylee Chroma - Classifier Demo 🌈")
	fmt.Println("======================================")
	fmt.Println()

	// Demo 1: Reference colours in both modes
	for _, mode := range []chroma.Mode{chroma.ModeTriangular, chroma.ModeGaussian} {
		demoReferences(mode)
	}

	// Demo 2: One decision, rule by rule
	demoExplain(12, 13, 1)

	// Demo 3: Numeric evaluation
	demoEvaluate()

	// Demo 4: Exporting the rule base
	demoExport()

	fmt.Println("🎉 Chroma Demo Complete! 🎉")
}

func demoReferences(mode chroma.Mode) {
	fmt.Printf("✨ Reference colours (%s)\n", mode)
	fmt.Println("--------------------------------")

	c, err := chroma.New(int(mode))
	if err != nil {
		log.Fatalf("Error creating classifier: %v", err)
	}
	for _, ref := range references {
		if err := c.SetColor(ref.red, ref.green, ref.blue); err != nil {
			log.Printf("Error classifying %s: %v", ref.name, err)
			continue
		}
		fmt.Printf("  %-13s %s  %-10s %-10s LED %4.0f  brightness %5.1f\n",
			ref.name, c.Hex(), c.Color(), c.Luminosity(), c.LedCode(), c.Brightness())
	}
	fmt.Println()
}

func demoExplain(red, green, blue float64) {
	fmt.Printf("🔍 Why (%g, %g, %g) is what it is\n", red, green, blue)
	fmt.Println("--------------------------------")

	c, err := chroma.New(int(chroma.ModeTriangular))
	if err != nil {
		log.Fatalf("Error creating classifier: %v", err)
	}
	if err := c.SetColor(red, green, blue); err != nil {
		log.Fatalf("Error classifying: %v", err)
	}

	engine := c.Engine()
	for _, v := range engine.InputVariables() {
		acts, err := engine.Fuzzified(v.Name)
		if err != nil {
			log.Fatalf("Error fuzzifying %s: %v", v.Name, err)
		}
		fmt.Printf("  %-6s", v.Name)
		for _, a := range acts {
			if a.Degree > 0 {
				fmt.Printf(" %s=%.3f", a.Term, a.Degree)
			}
		}
		fmt.Println()
	}

	rules := engine.Rules()
	for i, s := range engine.FiringStrengths() {
		if s > 0 {
			fmt.Printf("  %.3f  %s\n", s, rules[i])
		}
	}
	fmt.Printf("  => %s, %s\n", c.Color(), c.Luminosity())
	fmt.Println()
}

func demoEvaluate() {
	fmt.Println("🧮 Numeric evaluation")
	fmt.Println("--------------------------------")

	c, err := chroma.New(int(chroma.ModeTriangular))
	if err != nil {
		log.Fatalf("Error creating classifier: %v", err)
	}
	for _, p := range [][2]float64{{0, 0}, {850, 25}, {1700, 50}, {3400, 100}} {
		result, err := c.Evaluate(p[0], p[1])
		if err != nil {
			log.Printf("Error evaluating (%g, %g): %v", p[0], p[1], err)
			continue
		}
		fmt.Printf("  evaluate(%6g, %5g) = %7.3f\n", p[0], p[1], result)
	}
	fmt.Println()
}

func demoExport() {
	fmt.Println("📜 Rule base export")
	fmt.Println("--------------------------------")

	c, err := chroma.New(int(chroma.ModeGaussian))
	if err != nil {
		log.Fatalf("Error creating classifier: %v", err)
	}
	fcl := c.Engine().Export()
	fmt.Printf("FCL (%d bytes), first lines:\n", len(fcl))
	printHead(fcl, 8)

	rb, err := chroma.ColorRuleBase(chroma.ModeGaussian)
	if err != nil {
		log.Fatalf("Error building rule base: %v", err)
	}
	data, err := rulebase.Encode(rulebase.FromRuleBase(rb), rulebase.FormatYAML)
	if err != nil {
		log.Fatalf("Error encoding rule base: %v", err)
	}
	fmt.Printf("YAML (%d bytes), first lines:\n", len(data))
	printHead(string(data), 8)
	fmt.Println()
}

func printHead(text string, n int) {
	start := 0
	for i := 0; i < len(text) && n > 0; i++ {
		if text[i] == '\n' {
			fmt.Printf("  %s\n", text[start:i])
			start = i + 1
			n--
		}
	}
}
