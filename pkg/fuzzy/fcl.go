/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fcl.go
Description: Fuzzy Control Language (IEC 61131-7) rendering of a configured engine, so a
rule base can be inspected or loaded into other fuzzy tooling.
*/

package fuzzy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var fclNorms = map[string]string{
	"minimum":       "MIN",
	"product":       "PROD",
	"bounded":       "BDIF",
	"einstein":      "EPROD",
	"hamacher":      "HPROD",
	"maximum":       "MAX",
	"algebraic_sum": "ASUM",
	"bounded_sum":   "BSUM",
	"drastic":       "DSUM",
}

var fclDefuzzifiers = map[string]string{
	"weighted_average": "COGS",
	"centroid":         "COG",
	"bisector":         "COA",
}

// Export renders the engine as a FUNCTION_BLOCK.
func (e *Engine) Export() string {
	const indent = "  "
	var b strings.Builder

	name := e.name
	if name == "" {
		name = "engine"
	}
	fmt.Fprintf(&b, "FUNCTION_BLOCK %s\n\n", name)

	b.WriteString("VAR_INPUT\n")
	for _, v := range e.inputs {
		fmt.Fprintf(&b, "%s%s: REAL;\n", indent, v.Name)
	}
	b.WriteString("END_VAR\n\n")

	b.WriteString("VAR_OUTPUT\n")
	for _, v := range e.outputs {
		fmt.Fprintf(&b, "%s%s: REAL;\n", indent, v.Name)
	}
	b.WriteString("END_VAR\n\n")

	for _, v := range e.inputs {
		fmt.Fprintf(&b, "FUZZIFY %s\n", v.Name)
		fmt.Fprintf(&b, "%sRANGE := (%s .. %s);\n", indent, fclNumber(v.Min), fclNumber(v.Max))
		for _, t := range v.Terms {
			fmt.Fprintf(&b, "%sTERM %s := %s;\n", indent, t.Name(), fclTerm(t))
		}
		b.WriteString("END_FUZZIFY\n\n")
	}

	for _, v := range e.outputs {
		fmt.Fprintf(&b, "DEFUZZIFY %s\n", v.Name)
		fmt.Fprintf(&b, "%sRANGE := (%s .. %s);\n", indent, fclNumber(v.Min), fclNumber(v.Max))
		for _, t := range v.Terms {
			fmt.Fprintf(&b, "%sTERM %s := %s;\n", indent, t.Name(), fclTerm(t))
		}
		fmt.Fprintf(&b, "%sMETHOD : %s;\n", indent, fclDefuzzifiers[e.defuzzifier.Name()])
		fmt.Fprintf(&b, "%sACCU : %s;\n", indent, fclNorm(e.aggregation.Name()))
		fmt.Fprintf(&b, "%sDEFAULT := %s;\n", indent, fclNumber(v.Default))
		b.WriteString("END_DEFUZZIFY\n\n")
	}

	b.WriteString("RULEBLOCK rules\n")
	fmt.Fprintf(&b, "%sAND : %s;\n", indent, fclNorm(e.conjunction.Name()))
	fmt.Fprintf(&b, "%sACT : %s;\n", indent, fclNorm(e.implication.Name()))
	for i, r := range e.rules {
		fmt.Fprintf(&b, "%sRULE %d : %s;\n", indent, i+1, r.rule.String())
	}
	b.WriteString("END_RULEBLOCK\n\n")

	b.WriteString("END_FUNCTION_BLOCK\n")
	return b.String()
}

func fclNorm(name string) string {
	if n, ok := fclNorms[name]; ok {
		return n
	}
	// hamacher is both a t-norm and an s-norm
	return strings.ToUpper(name)
}

// fclTerm uses FCL's point list for piecewise-linear shapes and the shape name otherwise.
func fclTerm(t Term) string {
	switch s := t.(type) {
	case *Triangle:
		return fclPoints([2]float64{s.A, 0}, [2]float64{s.B, 1}, [2]float64{s.C, 0})
	case *Trapezoid:
		return fclPoints([2]float64{s.A, 0}, [2]float64{s.B, 1}, [2]float64{s.C, 1}, [2]float64{s.D, 0})
	}
	params := t.Parameters()
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fclNumber(p)
	}
	kind := t.Kind()
	return fmt.Sprintf("%s %s", strings.ToUpper(kind[:1])+kind[1:], strings.Join(parts, " "))
}

func fclPoints(points ...[2]float64) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("(%s, %s)", fclNumber(p[0]), fclNumber(p[1]))
	}
	return strings.Join(parts, " ")
}

func fclNumber(v float64) string {
	if math.IsNaN(v) {
		return "NAN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
