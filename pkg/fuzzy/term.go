/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: term.go
Description: Membership functions for linguistic terms. Each term maps a crisp value to
a degree in [0,1] and exposes a representative point used by weighted defuzzification
and the breakpoints used by the coverage check.
*/

package fuzzy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Term is a named membership function over one variable's domain.
type Term interface {
	Name() string
	Membership(x float64) float64
	// Representative is the crisp value that stands for the term in weighted averages.
	Representative() float64
	// Breakpoints lists the x positions where the shape changes slope.
	// Empty for smooth shapes that are positive everywhere.
	Breakpoints() []float64
	// Kind is the lowercase shape name used in rule-base documents and FCL export.
	Kind() string
	Parameters() []float64
}

// Triangle rises from A to a peak at B and falls back to zero at C.
type Triangle struct {
	name    string
	A, B, C float64
}

// NewTriangle validates a <= b <= c and a < c.
func NewTriangle(name string, a, b, c float64) (*Triangle, error) {
	if err := checkName("term", name); err != nil {
		return nil, err
	}
	if err := checkFinite(name, a, b, c); err != nil {
		return nil, err
	}
	if a > b || b > c {
		return nil, configErrorf("term", name, "triangle breakpoints must satisfy a <= b <= c, got (%g, %g, %g)", a, b, c)
	}
	if a == c {
		return nil, configErrorf("term", name, "triangle has zero width at %g", a)
	}
	return &Triangle{name: name, A: a, B: b, C: c}, nil
}

func (t *Triangle) Name() string { return t.name }

func (t *Triangle) Membership(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < t.A || x > t.C:
		return 0
	case x == t.B:
		return 1
	case x < t.B:
		return (x - t.A) / (t.B - t.A)
	default:
		return (t.C - x) / (t.C - t.B)
	}
}

func (t *Triangle) Representative() float64 { return t.B }
func (t *Triangle) Breakpoints() []float64  { return []float64{t.A, t.B, t.C} }
func (t *Triangle) Kind() string            { return "triangle" }
func (t *Triangle) Parameters() []float64   { return []float64{t.A, t.B, t.C} }

// Trapezoid has a plateau of 1 between B and C.
type Trapezoid struct {
	name       string
	A, B, C, D float64
}

// NewTrapezoid validates a <= b <= c <= d and a < d.
func NewTrapezoid(name string, a, b, c, d float64) (*Trapezoid, error) {
	if err := checkName("term", name); err != nil {
		return nil, err
	}
	if err := checkFinite(name, a, b, c, d); err != nil {
		return nil, err
	}
	if a > b || b > c || c > d {
		return nil, configErrorf("term", name, "trapezoid breakpoints must satisfy a <= b <= c <= d, got (%g, %g, %g, %g)", a, b, c, d)
	}
	if a == d {
		return nil, configErrorf("term", name, "trapezoid has zero width at %g", a)
	}
	return &Trapezoid{name: name, A: a, B: b, C: c, D: d}, nil
}

func (t *Trapezoid) Name() string { return t.name }

func (t *Trapezoid) Membership(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < t.A || x > t.D:
		return 0
	case x >= t.B && x <= t.C:
		return 1
	case x < t.B:
		return (x - t.A) / (t.B - t.A)
	default:
		return (t.D - x) / (t.D - t.C)
	}
}

func (t *Trapezoid) Representative() float64 { return (t.B + t.C) / 2 }
func (t *Trapezoid) Breakpoints() []float64  { return []float64{t.A, t.B, t.C, t.D} }
func (t *Trapezoid) Kind() string            { return "trapezoid" }
func (t *Trapezoid) Parameters() []float64   { return []float64{t.A, t.B, t.C, t.D} }

// Rectangle is 1 on [Start, End] and 0 elsewhere.
type Rectangle struct {
	name       string
	Start, End float64
}

func NewRectangle(name string, start, end float64) (*Rectangle, error) {
	if err := checkName("term", name); err != nil {
		return nil, err
	}
	if err := checkFinite(name, start, end); err != nil {
		return nil, err
	}
	if start >= end {
		return nil, configErrorf("term", name, "rectangle start %g must be below end %g", start, end)
	}
	return &Rectangle{name: name, Start: start, End: end}, nil
}

func (r *Rectangle) Name() string { return r.name }

func (r *Rectangle) Membership(x float64) float64 {
	if x >= r.Start && x <= r.End {
		return 1
	}
	return 0
}

func (r *Rectangle) Representative() float64 { return (r.Start + r.End) / 2 }
func (r *Rectangle) Breakpoints() []float64  { return []float64{r.Start, r.End} }
func (r *Rectangle) Kind() string            { return "rectangle" }
func (r *Rectangle) Parameters() []float64   { return []float64{r.Start, r.End} }

// Gaussian is a bell curve centred on Mean.
type Gaussian struct {
	name        string
	Mean, Sigma float64
}

func NewGaussian(name string, mean, sigma float64) (*Gaussian, error) {
	if err := checkName("term", name); err != nil {
		return nil, err
	}
	if err := checkFinite(name, mean, sigma); err != nil {
		return nil, err
	}
	if sigma <= 0 {
		return nil, configErrorf("term", name, "gaussian sigma must be positive, got %g", sigma)
	}
	return &Gaussian{name: name, Mean: mean, Sigma: sigma}, nil
}

func (g *Gaussian) Name() string { return g.name }

func (g *Gaussian) Membership(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	d := x - g.Mean
	return math.Exp(-(d * d) / (2 * g.Sigma * g.Sigma))
}

func (g *Gaussian) Representative() float64 { return g.Mean }
func (g *Gaussian) Breakpoints() []float64  { return nil }
func (g *Gaussian) Kind() string            { return "gaussian" }
func (g *Gaussian) Parameters() []float64   { return []float64{g.Mean, g.Sigma} }

// Ramp climbs linearly from 0 at Start to 1 at End. Start may be greater than End
// for a falling ramp.
type Ramp struct {
	name       string
	Start, End float64
}

func NewRamp(name string, start, end float64) (*Ramp, error) {
	if err := checkName("term", name); err != nil {
		return nil, err
	}
	if err := checkFinite(name, start, end); err != nil {
		return nil, err
	}
	if start == end {
		return nil, configErrorf("term", name, "ramp has zero width at %g", start)
	}
	return &Ramp{name: name, Start: start, End: end}, nil
}

func (r *Ramp) Name() string { return r.name }

func (r *Ramp) Membership(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if r.Start < r.End {
		switch {
		case x <= r.Start:
			return 0
		case x >= r.End:
			return 1
		}
		return (x - r.Start) / (r.End - r.Start)
	}
	switch {
	case x >= r.Start:
		return 0
	case x <= r.End:
		return 1
	}
	return (r.Start - x) / (r.Start - r.End)
}

func (r *Ramp) Representative() float64 { return r.End }
func (r *Ramp) Breakpoints() []float64  { return []float64{r.Start, r.End} }
func (r *Ramp) Kind() string            { return "ramp" }
func (r *Ramp) Parameters() []float64   { return []float64{r.Start, r.End} }

// NewTerm builds a term from its shape name and parameter list, the form used by
// rule-base documents.
func NewTerm(kind, name string, params []float64) (Term, error) {
	want := map[string]int{"triangle": 3, "trapezoid": 4, "rectangle": 2, "gaussian": 2, "ramp": 2}
	k := strings.ToLower(strings.TrimSpace(kind))
	n, ok := want[k]
	if !ok {
		return nil, configErrorf("term", name, "unknown shape %q", kind)
	}
	if len(params) != n {
		return nil, configErrorf("term", name, "%s takes %d parameters, got %d", k, n, len(params))
	}
	switch k {
	case "triangle":
		return NewTriangle(name, params[0], params[1], params[2])
	case "trapezoid":
		return NewTrapezoid(name, params[0], params[1], params[2], params[3])
	case "rectangle":
		return NewRectangle(name, params[0], params[1])
	case "gaussian":
		return NewGaussian(name, params[0], params[1])
	default:
		return NewRamp(name, params[0], params[1])
	}
}

// MustTerm is NewTerm for static tables; it panics on error.
func MustTerm(t Term, err error) Term {
	if err != nil {
		panic(err)
	}
	return t
}

// FormatTerm renders "kind(p1, p2, ...)".
func FormatTerm(t Term) string {
	params := t.Parameters()
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return fmt.Sprintf("%s(%s)", t.Kind(), strings.Join(parts, ", "))
}

func checkName(component, name string) error {
	if strings.TrimSpace(name) == "" {
		return configErrorf(component, "", "name must not be empty")
	}
	if strings.ContainsAny(name, " \t\n") {
		return configErrorf(component, name, "name must not contain whitespace")
	}
	return nil
}

func checkFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return configErrorf("term", name, "parameters must be finite, got %g", v)
		}
	}
	return nil
}
