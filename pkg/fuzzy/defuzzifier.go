/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: defuzzifier.go
Description: Reduction of aggregated output supports to a crisp result: a winning label
for classification, or a number for numeric mode. Every numeric defuzzifier falls back to
the output variable's default when nothing fired.
*/

package fuzzy

import (
	"fmt"
	"strings"
)

// DefaultResolution is the number of integration samples used by centroid and bisector.
const DefaultResolution = 1000

// Defuzzifier turns per-term aggregated supports into a crisp value.
// The boolean result is false when no term had any support and the fallback was used.
type Defuzzifier interface {
	Name() string
	Defuzzify(out *OutputVariable, supports []float64) (float64, bool)
}

// WeightedAverage is sum(support * representative) / sum(support).
type WeightedAverage struct{}

func (WeightedAverage) Name() string { return "weighted_average" }

func (WeightedAverage) Defuzzify(out *OutputVariable, supports []float64) (float64, bool) {
	var num, den float64
	for i, s := range supports {
		if s <= 0 {
			continue
		}
		num += s * out.Terms[i].Representative()
		den += s
	}
	if den == 0 {
		return out.Fallback(), false
	}
	return out.Clamp(num / den), true
}

// Centroid integrates the implied and aggregated output set over the domain.
type Centroid struct {
	Resolution  int
	Implication TNorm
	Aggregation SNorm
}

func (Centroid) Name() string { return "centroid" }

func (c Centroid) Defuzzify(out *OutputVariable, supports []float64) (float64, bool) {
	xs, mus := sampleOutput(out, supports, c.Resolution, c.Implication, c.Aggregation)
	var num, den float64
	for i, mu := range mus {
		num += xs[i] * mu
		den += mu
	}
	if den == 0 {
		return out.Fallback(), false
	}
	return num / den, true
}

// Bisector returns the point that splits the area under the output set in two halves.
type Bisector struct {
	Resolution  int
	Implication TNorm
	Aggregation SNorm
}

func (Bisector) Name() string { return "bisector" }

func (b Bisector) Defuzzify(out *OutputVariable, supports []float64) (float64, bool) {
	xs, mus := sampleOutput(out, supports, b.Resolution, b.Implication, b.Aggregation)
	var area float64
	for _, mu := range mus {
		area += mu
	}
	if area == 0 {
		return out.Fallback(), false
	}
	var acc float64
	for i, mu := range mus {
		acc += mu
		if acc >= area/2 {
			return xs[i], true
		}
	}
	return xs[len(xs)-1], true
}

func sampleOutput(out *OutputVariable, supports []float64, resolution int, imp TNorm, agg SNorm) ([]float64, []float64) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	if imp == nil {
		imp = AlgebraicProduct
	}
	if agg == nil {
		agg = Maximum
	}
	dx := (out.Max - out.Min) / float64(resolution)
	xs := make([]float64, resolution)
	mus := make([]float64, resolution)
	for i := range xs {
		x := out.Min + (float64(i)+0.5)*dx
		mu := 0.0
		for t, s := range supports {
			if s <= 0 {
				continue
			}
			mu = agg.Compute(mu, imp.Compute(s, out.Terms[t].Membership(x)))
		}
		xs[i] = x
		mus[i] = mu
	}
	return xs, mus
}

// DefuzzifierByName builds a defuzzifier. Empty selects the weighted average.
func DefuzzifierByName(name string, resolution int, imp TNorm, agg SNorm) (Defuzzifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "weighted_average", "wtavg":
		return WeightedAverage{}, nil
	case "centroid", "cog":
		return Centroid{Resolution: resolution, Implication: imp, Aggregation: agg}, nil
	case "bisector", "coa":
		return Bisector{Resolution: resolution, Implication: imp, Aggregation: agg}, nil
	}
	return nil, configErrorf("defuzzifier", name, "unknown defuzzifier (known: weighted_average, centroid, bisector)")
}

// Label is the winner of a classification output.
type Label struct {
	Variable string  `json:"variable"`
	Term     string  `json:"term"`
	Degree   float64 `json:"degree"`
	// Fired is false when no rule concluded anything for the variable; Term is then empty.
	Fired bool `json:"fired"`
}

// String formats the label with its activation degree, e.g. "red 1.000".
func (l Label) String() string {
	if !l.Fired {
		return ""
	}
	return fmt.Sprintf("%s %.3f", l.Term, l.Degree)
}

// classify picks the term with the greatest support. Ties go to the term declared first.
func classify(out *OutputVariable, supports []float64) Label {
	best := -1
	for i, s := range supports {
		if s <= 0 {
			continue
		}
		if best < 0 || s > supports[best] {
			best = i
		}
	}
	if best < 0 {
		return Label{Variable: out.Name}
	}
	return Label{Variable: out.Name, Term: out.Terms[best].Name(), Degree: supports[best], Fired: true}
}
