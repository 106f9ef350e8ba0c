/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: variable.go
Description: Input and output variables. A variable owns a closed numeric domain and an
ordered list of terms; fuzzification clamps the raw value into the domain before any
membership is computed.
*/

package fuzzy

import (
	"math"
	"sort"
)

// Activation is one term's degree for a given crisp value or rule outcome.
type Activation struct {
	Term   string  `json:"term"`
	Degree float64 `json:"degree"`
}

// Variable is the part shared by input and output variables.
type Variable struct {
	Name  string
	Min   float64
	Max   float64
	Terms []Term
}

// Clamp pins x into [Min, Max]. NaN is returned unchanged.
func (v *Variable) Clamp(x float64) float64 {
	if x < v.Min {
		return v.Min
	}
	if x > v.Max {
		return v.Max
	}
	return x
}

// Term looks up a term by name.
func (v *Variable) Term(name string) (Term, bool) {
	i := v.termIndex(name)
	if i < 0 {
		return nil, false
	}
	return v.Terms[i], true
}

func (v *Variable) termIndex(name string) int {
	for i, t := range v.Terms {
		if t.Name() == name {
			return i
		}
	}
	return -1
}

// Fuzzify returns the degree of every term, in declaration order, for the clamped value.
func (v *Variable) Fuzzify(x float64) []Activation {
	x = v.Clamp(x)
	out := make([]Activation, len(v.Terms))
	for i, t := range v.Terms {
		out[i] = Activation{Term: t.Name(), Degree: clampDegree(t.Membership(x))}
	}
	return out
}

// Midpoint is the centre of the domain.
func (v *Variable) Midpoint() float64 { return (v.Min + v.Max) / 2 }

func (v *Variable) validate(component string) error {
	if err := checkName(component, v.Name); err != nil {
		return err
	}
	if math.IsNaN(v.Min) || math.IsNaN(v.Max) || math.IsInf(v.Min, 0) || math.IsInf(v.Max, 0) {
		return configErrorf(component, v.Name, "domain bounds must be finite")
	}
	if v.Min >= v.Max {
		return configErrorf(component, v.Name, "domain [%g, %g] is empty", v.Min, v.Max)
	}
	if len(v.Terms) == 0 {
		return configErrorf(component, v.Name, "no terms declared")
	}
	seen := make(map[string]bool, len(v.Terms))
	for _, t := range v.Terms {
		if t == nil {
			return configErrorf(component, v.Name, "nil term")
		}
		if seen[t.Name()] {
			return configErrorf(component, v.Name, "duplicate term %q", t.Name())
		}
		seen[t.Name()] = true
	}
	if x, ok := v.deadZone(); ok {
		return configErrorf(component, v.Name, "no term covers %g", x)
	}
	return nil
}

// deadZone reports a point of the domain where every term has degree 0.
// Between two consecutive breakpoints every piecewise-linear term is linear, so testing
// the breakpoints themselves and the midpoints between them is exhaustive.
func (v *Variable) deadZone() (float64, bool) {
	points := []float64{v.Min, v.Max}
	for _, t := range v.Terms {
		bps := t.Breakpoints()
		if len(bps) == 0 {
			// positive everywhere
			return 0, false
		}
		for _, p := range bps {
			if p > v.Min && p < v.Max {
				points = append(points, p)
			}
		}
	}
	sort.Float64s(points)

	covered := func(x float64) bool {
		for _, t := range v.Terms {
			if t.Membership(x) > 0 {
				return true
			}
		}
		return false
	}
	for i, p := range points {
		if !covered(p) {
			return p, true
		}
		if i+1 < len(points) && points[i+1] > p {
			mid := (p + points[i+1]) / 2
			if !covered(mid) {
				return mid, true
			}
		}
	}
	return 0, false
}

// InputVariable is a crisp channel fed by the caller.
type InputVariable struct {
	Variable
}

// NewInputVariable builds an input variable; validation happens in Configure.
func NewInputVariable(name string, min, max float64, terms ...Term) *InputVariable {
	return &InputVariable{Variable{Name: name, Min: min, Max: max, Terms: terms}}
}

// OutputVariable is a classification axis or a numeric axis, depending on how it is read.
// Term order is the tie-break priority for classification.
type OutputVariable struct {
	Variable
	// Default is returned by numeric defuzzification when no rule fires.
	// NaN selects the domain midpoint.
	Default float64
}

// NewOutputVariable builds an output variable whose numeric fallback is the domain midpoint.
func NewOutputVariable(name string, min, max float64, terms ...Term) *OutputVariable {
	return &OutputVariable{Variable: Variable{Name: name, Min: min, Max: max, Terms: terms}, Default: math.NaN()}
}

// Fallback is the value numeric defuzzification returns when nothing fires.
func (o *OutputVariable) Fallback() float64 {
	if math.IsNaN(o.Default) {
		return o.Midpoint()
	}
	return o.Default
}

func clampDegree(d float64) float64 {
	switch {
	case math.IsNaN(d) || d < 0:
		return 0
	case d > 1:
		return 1
	}
	return d
}
