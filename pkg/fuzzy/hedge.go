/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: hedge.go
Description: Linguistic hedges that modify a membership degree inside a rule antecedent,
e.g. "red is very high" or "blue is not low".
*/

package fuzzy

import "math"

// Hedge reshapes a membership degree.
type Hedge struct {
	Name  string
	apply func(x float64) float64
}

// Apply returns the hedged degree.
func (h Hedge) Apply(x float64) float64 { return clampDegree(h.apply(x)) }

// "any" matches every value of the variable regardless of the term.
var hedges = map[string]Hedge{
	"not":       {Name: "not", apply: func(x float64) float64 { return 1 - x }},
	"seldom":    {Name: "seldom", apply: seldom},
	"somewhat":  {Name: "somewhat", apply: math.Sqrt},
	"very":      {Name: "very", apply: func(x float64) float64 { return x * x }},
	"extremely": {Name: "extremely", apply: extremely},
	"any":       {Name: "any", apply: func(float64) float64 { return 1 }},
}

// HedgeByName looks up a hedge; the second result is false for unknown words.
func HedgeByName(name string) (Hedge, bool) {
	h, ok := hedges[name]
	return h, ok
}

func seldom(x float64) float64 {
	if x <= 0.5 {
		return math.Sqrt(x / 2)
	}
	return 1 - math.Sqrt((1-x)/2)
}

func extremely(x float64) float64 {
	if x <= 0.5 {
		return 2 * x * x
	}
	return 1 - 2*(1-x)*(1-x)
}
