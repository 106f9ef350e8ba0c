/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rules.go
Description: Built-in rule bases. The colour rule base classifies 4-bit RGB channels into a
colour name and a luminosity class; the evaluation rule base is the generic two-input
numeric system behind Evaluate.
*/

package chroma

import (
	"fmt"

	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
)

// Names of the built-in variables.
const (
	InputRed         = "red"
	InputGreen       = "green"
	InputBlue        = "blue"
	OutputColor      = "color"
	OutputLuminosity = "luminosity"

	InputX       = "x"
	InputY       = "y"
	OutputResult = "result"
)

// ChannelMax is the top of the 4-bit channel domain.
const ChannelMax = 15.0

// Mode selects the membership shape of the channel terms.
type Mode int

const (
	// ModeTriangular uses overlapping triangles with shoulders at the domain ends.
	ModeTriangular Mode = 0
	// ModeGaussian uses bell curves with the same centres.
	ModeGaussian Mode = 1
)

func (m Mode) String() string {
	switch m {
	case ModeTriangular:
		return "triangular"
	case ModeGaussian:
		return "gaussian"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

var levels = []string{"low", "mid", "high"}

// ColorTerms lists the colour labels in tie-break priority order.
var ColorTerms = []string{
	"black", "blue", "ocean", "green", "turquoise", "cyan", "purple", "grey",
	"lime", "red", "raspberry", "magenta", "orange", "yellow", "white",
}

// LuminosityTerms lists the luminosity labels from darkest to brightest.
var LuminosityTerms = []string{"dark", "dim", "medium", "bright", "brilliant"}

// colorTable names every (red, green, blue) level combination, indexed [r][g][b].
var colorTable = [3][3][3]string{
	{ // red low
		{"black", "blue", "blue"},
		{"green", "cyan", "ocean"},
		{"green", "turquoise", "cyan"},
	},
	{ // red mid
		{"red", "purple", "purple"},
		{"yellow", "grey", "blue"},
		{"lime", "lime", "cyan"},
	},
	{ // red high
		{"red", "raspberry", "magenta"},
		{"orange", "red", "magenta"},
		{"yellow", "yellow", "white"},
	},
}

// luminosityFor maps the summed channel levels (0..6) to a luminosity term.
func luminosityFor(sum int) string {
	switch {
	case sum == 0:
		return "dark"
	case sum <= 2:
		return "dim"
	case sum == 3:
		return "medium"
	case sum <= 5:
		return "bright"
	}
	return "brilliant"
}

// ledColorTerms are positioned on the 12-bit 0xRGB code scale (0..4095).
func ledColorTerms() []fuzzy.Term {
	pts := [][3]float64{
		{0, 0, 8}, {7, 15, 119}, {112, 127, 198}, {168, 240, 244}, {243, 247, 251},
		{250, 255, 1225}, {837, 1807, 1872}, {1846, 1911, 1987}, {1956, 2032, 3162},
		{2710, 3840, 3844}, {3843, 3847, 3851}, {3850, 3855, 3916}, {3891, 3952, 4032},
		{4000, 4080, 4089}, {4085, 4095, 4095},
	}
	terms := make([]fuzzy.Term, len(ColorTerms))
	for i, name := range ColorTerms {
		terms[i] = fuzzy.MustTerm(fuzzy.NewTriangle(name, pts[i][0], pts[i][1], pts[i][2]))
	}
	return terms
}

func luminosityTerms() []fuzzy.Term {
	terms := make([]fuzzy.Term, len(LuminosityTerms))
	for i, name := range LuminosityTerms {
		apex := float64(i) * 25
		terms[i] = fuzzy.MustTerm(fuzzy.NewTriangle(name, max(0, apex-25), apex, min(100, apex+25)))
	}
	return terms
}

func channelTerms(mode Mode) ([]fuzzy.Term, error) {
	switch mode {
	case ModeTriangular:
		return []fuzzy.Term{
			fuzzy.MustTerm(fuzzy.NewTriangle("low", 0, 0, 5)),
			fuzzy.MustTerm(fuzzy.NewTriangle("mid", 2.5, 7.5, 12.5)),
			fuzzy.MustTerm(fuzzy.NewTriangle("high", 10, 15, 15)),
		}, nil
	case ModeGaussian:
		const sigma = 2.25
		return []fuzzy.Term{
			fuzzy.MustTerm(fuzzy.NewGaussian("low", 0, sigma)),
			fuzzy.MustTerm(fuzzy.NewGaussian("mid", 7.5, sigma)),
			fuzzy.MustTerm(fuzzy.NewGaussian("high", 15, sigma)),
		}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(mode))
}

// ColorRuleBase returns the colour/luminosity rule base for a mode.
func ColorRuleBase(mode Mode) (fuzzy.RuleBase, error) {
	var inputs []*fuzzy.InputVariable
	for _, name := range []string{InputRed, InputGreen, InputBlue} {
		terms, err := channelTerms(mode)
		if err != nil {
			return fuzzy.RuleBase{}, err
		}
		inputs = append(inputs, fuzzy.NewInputVariable(name, 0, ChannelMax, terms...))
	}

	color := fuzzy.NewOutputVariable(OutputColor, 0, 4095, ledColorTerms()...)
	luminosity := fuzzy.NewOutputVariable(OutputLuminosity, 0, 100, luminosityTerms()...)

	var rules []string
	for r := range levels {
		for g := range levels {
			for b := range levels {
				cond := fmt.Sprintf("if %s is %s and %s is %s and %s is %s",
					InputRed, levels[r], InputGreen, levels[g], InputBlue, levels[b])
				rules = append(rules,
					fmt.Sprintf("%s then %s is %s", cond, OutputColor, colorTable[r][g][b]),
					fmt.Sprintf("%s then %s is %s", cond, OutputLuminosity, luminosityFor(r+g+b)),
				)
			}
		}
	}

	return fuzzy.RuleBase{
		Name:        "rgb_" + mode.String(),
		Inputs:      inputs,
		Outputs:     []*fuzzy.OutputVariable{color, luminosity},
		Rules:       rules,
		Conjunction: "product",
		Implication: "product",
		Aggregation: "maximum",
		Defuzzifier: "weighted_average",
	}, nil
}

// EvaluationRuleBase returns the two-input numeric rule base. x spans [0, 3400], y spans
// [0, 100] and the result spans [0, 100]; the table is symmetric in x and y.
func EvaluationRuleBase() fuzzy.RuleBase {
	tri := func(lo, hi float64) []fuzzy.Term {
		mid := (lo + hi) / 2
		return []fuzzy.Term{
			fuzzy.MustTerm(fuzzy.NewTriangle("low", lo, lo, mid)),
			fuzzy.MustTerm(fuzzy.NewTriangle("mid", lo, mid, hi)),
			fuzzy.MustTerm(fuzzy.NewTriangle("high", mid, hi, hi)),
		}
	}
	table := [3][3]string{
		{"low", "low", "mid"},
		{"low", "mid", "high"},
		{"mid", "high", "high"},
	}
	var rules []string
	for i := range levels {
		for j := range levels {
			rules = append(rules, fmt.Sprintf("if %s is %s and %s is %s then %s is %s",
				InputX, levels[i], InputY, levels[j], OutputResult, table[i][j]))
		}
	}
	return fuzzy.RuleBase{
		Name: "evaluation",
		Inputs: []*fuzzy.InputVariable{
			fuzzy.NewInputVariable(InputX, 0, 3400, tri(0, 3400)...),
			fuzzy.NewInputVariable(InputY, 0, 100, tri(0, 100)...),
		},
		Outputs:     []*fuzzy.OutputVariable{fuzzy.NewOutputVariable(OutputResult, 0, 100, tri(0, 100)...)},
		Rules:       rules,
		Conjunction: "product",
		Aggregation: "maximum",
		Defuzzifier: "weighted_average",
	}
}
