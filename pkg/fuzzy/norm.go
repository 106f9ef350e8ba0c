/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: norm.go
Description: T-norms (conjunction and implication) and S-norms (aggregation). An engine
picks one of each at configuration time and applies it uniformly to every rule.
*/

package fuzzy

import (
	"math"
	"sort"
	"strings"
)

// TNorm combines two degrees with fuzzy AND semantics.
type TNorm interface {
	Name() string
	Compute(a, b float64) float64
}

// SNorm combines two degrees with fuzzy OR semantics.
type SNorm interface {
	Name() string
	Compute(a, b float64) float64
}

type tnorm struct {
	name string
	fn   func(a, b float64) float64
}

func (n tnorm) Name() string                 { return n.name }
func (n tnorm) Compute(a, b float64) float64 { return n.fn(a, b) }

type snorm struct {
	name string
	fn   func(a, b float64) float64
}

func (n snorm) Name() string                 { return n.name }
func (n snorm) Compute(a, b float64) float64 { return n.fn(a, b) }

// Conjunction and implication operators.
var (
	Minimum           TNorm = tnorm{"minimum", math.Min}
	AlgebraicProduct  TNorm = tnorm{"product", func(a, b float64) float64 { return a * b }}
	BoundedDifference TNorm = tnorm{"bounded", func(a, b float64) float64 { return math.Max(0, a+b-1) }}
	EinsteinProduct   TNorm = tnorm{"einstein", einsteinProduct}
	HamacherProduct   TNorm = tnorm{"hamacher", hamacherProduct}
)

// Aggregation operators.
var (
	Maximum      SNorm = snorm{"maximum", math.Max}
	AlgebraicSum SNorm = snorm{"algebraic_sum", func(a, b float64) float64 { return a + b - a*b }}
	BoundedSum   SNorm = snorm{"bounded_sum", func(a, b float64) float64 { return math.Min(1, a+b) }}
	HamacherSum  SNorm = snorm{"hamacher", hamacherSum}
	DrasticSum   SNorm = snorm{"drastic", drasticSum}
)

func einsteinProduct(a, b float64) float64 {
	return (a * b) / (2 - (a + b - a*b))
}

func hamacherProduct(a, b float64) float64 {
	if a+b == 0 {
		return 0
	}
	return (a * b) / (a + b - a*b)
}

func hamacherSum(a, b float64) float64 {
	if a*b == 1 {
		return 1
	}
	return (a + b - 2*a*b) / (1 - a*b)
}

func drasticSum(a, b float64) float64 {
	if math.Min(a, b) == 0 {
		return math.Max(a, b)
	}
	return 1
}

var (
	tnorms = map[string]TNorm{}
	snorms = map[string]SNorm{}
)

func init() {
	for _, n := range []TNorm{Minimum, AlgebraicProduct, BoundedDifference, EinsteinProduct, HamacherProduct} {
		tnorms[n.Name()] = n
	}
	tnorms["min"] = Minimum
	tnorms["prod"] = AlgebraicProduct
	for _, n := range []SNorm{Maximum, AlgebraicSum, BoundedSum, HamacherSum, DrasticSum} {
		snorms[n.Name()] = n
	}
	snorms["max"] = Maximum
}

// TNormByName resolves a conjunction or implication operator. Empty selects product.
func TNormByName(name string) (TNorm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return AlgebraicProduct, nil
	}
	if n, ok := tnorms[key]; ok {
		return n, nil
	}
	return nil, configErrorf("norm", name, "unknown t-norm (known: %s)", strings.Join(TNormNames(), ", "))
}

// SNormByName resolves an aggregation operator. Empty selects maximum.
func SNormByName(name string) (SNorm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Maximum, nil
	}
	if n, ok := snorms[key]; ok {
		return n, nil
	}
	return nil, configErrorf("norm", name, "unknown s-norm (known: %s)", strings.Join(SNormNames(), ", "))
}

// TNormNames lists the canonical t-norm names.
func TNormNames() []string {
	var names []string
	for k, n := range tnorms {
		if k == n.Name() {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// SNormNames lists the canonical s-norm names.
func SNormNames() []string {
	var names []string
	for k, n := range snorms {
		if k == n.Name() {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
