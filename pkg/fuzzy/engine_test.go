/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: Tests for engine configuration, the input snapshot, classification,
numeric defuzzification and FCL export.
*/

package fuzzy_test

import (
	"math"
	"testing"

	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tri(name string, a, b, c float64) fuzzy.Term {
	return fuzzy.MustTerm(fuzzy.NewTriangle(name, a, b, c))
}

// levelRuleBase maps x in [0, 10] onto y in [0, 10] with two mirrored rules.
func levelRuleBase() fuzzy.RuleBase {
	return fuzzy.RuleBase{
		Name: "level",
		Inputs: []*fuzzy.InputVariable{
			fuzzy.NewInputVariable("x", 0, 10, tri("low", 0, 0, 10), tri("high", 0, 10, 10)),
		},
		Outputs: []*fuzzy.OutputVariable{
			fuzzy.NewOutputVariable("y", 0, 10, tri("small", 0, 0, 10), tri("large", 0, 10, 10)),
		},
		Rules: []string{
			"if x is low then y is small",
			"if x is high then y is large",
		},
	}
}

func configure(t *testing.T, rb fuzzy.RuleBase) *fuzzy.Engine {
	t.Helper()
	e, err := fuzzy.Configure(rb)
	require.NoError(t, err)
	return e
}

// TestConfigure tests a valid rule base and its initial snapshot
func TestConfigure(t *testing.T) {
	e := configure(t, levelRuleBase())

	assert.Equal(t, "level", e.Name())
	assert.Len(t, e.ID(), 36)
	assert.Len(t, e.Rules(), 2)
	assert.Equal(t, "if x is low then y is small", e.Rules()[0].String())

	// the snapshot starts at the domain minimum
	assert.Equal(t, []float64{0}, e.Inputs())
	label, err := e.Label("y")
	require.NoError(t, err)
	assert.Equal(t, fuzzy.Label{Variable: "y", Term: "small", Degree: 1, Fired: true}, label)
	assert.Equal(t, "small 1.000", label.String())
}

// TestConfigureErrors tests that invalid rule bases are rejected
func TestConfigureErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(rb *fuzzy.RuleBase)
	}{
		{"no inputs", func(rb *fuzzy.RuleBase) { rb.Inputs = nil }},
		{"no outputs", func(rb *fuzzy.RuleBase) { rb.Outputs = nil }},
		{"no rules", func(rb *fuzzy.RuleBase) { rb.Rules = nil }},
		{"empty domain", func(rb *fuzzy.RuleBase) { rb.Inputs[0].Max = 0 }},
		{"infinite domain", func(rb *fuzzy.RuleBase) { rb.Inputs[0].Max = math.Inf(1) }},
		{"no terms", func(rb *fuzzy.RuleBase) { rb.Inputs[0].Terms = nil }},
		{"duplicate term", func(rb *fuzzy.RuleBase) {
			rb.Inputs[0].Terms = []fuzzy.Term{tri("low", 0, 0, 10), tri("low", 0, 10, 10)}
		}},
		{"gap between terms", func(rb *fuzzy.RuleBase) {
			rb.Inputs[0].Terms = []fuzzy.Term{tri("low", 0, 2, 4), tri("high", 6, 8, 10)}
		}},
		{"touching terms", func(rb *fuzzy.RuleBase) {
			rb.Inputs[0].Terms = []fuzzy.Term{tri("low", 0, 0, 5), tri("high", 5, 10, 10)}
		}},
		{"uncovered minimum", func(rb *fuzzy.RuleBase) {
			rb.Outputs[0].Terms = []fuzzy.Term{tri("small", 0, 5, 10), tri("large", 5, 10, 10)}
		}},
		{"duplicate variable", func(rb *fuzzy.RuleBase) { rb.Outputs[0].Name = "x" }},
		{"unknown conjunction", func(rb *fuzzy.RuleBase) { rb.Conjunction = "lukasiewicz" }},
		{"unknown aggregation", func(rb *fuzzy.RuleBase) { rb.Aggregation = "sum" }},
		{"unknown defuzzifier", func(rb *fuzzy.RuleBase) { rb.Defuzzifier = "mom" }},
		{"unparseable rule", func(rb *fuzzy.RuleBase) { rb.Rules = []string{"x is low"} }},
		{"undeclared input", func(rb *fuzzy.RuleBase) { rb.Rules = []string{"if z is low then y is small"} }},
		{"undeclared output", func(rb *fuzzy.RuleBase) { rb.Rules = []string{"if x is low then z is small"} }},
		{"unknown input term", func(rb *fuzzy.RuleBase) { rb.Rules = []string{"if x is medium then y is small"} }},
		{"unknown output term", func(rb *fuzzy.RuleBase) { rb.Rules = []string{"if x is low then y is tiny"} }},
		{"output in antecedent", func(rb *fuzzy.RuleBase) { rb.Rules = []string{"if y is small then y is large"} }},
		{"input in consequent", func(rb *fuzzy.RuleBase) { rb.Rules = []string{"if x is low then x is high"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := levelRuleBase()
			tt.modify(&rb)
			e, err := fuzzy.Configure(rb)
			require.Error(t, err)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, fuzzy.ErrConfiguration)
		})
	}
}

// TestGaussianTermsCoverDomain tests that bell curves never leave a dead zone
func TestGaussianTermsCoverDomain(t *testing.T) {
	rb := levelRuleBase()
	rb.Inputs[0].Terms = []fuzzy.Term{
		fuzzy.MustTerm(fuzzy.NewGaussian("low", 0, 0.1)),
		fuzzy.MustTerm(fuzzy.NewGaussian("high", 10, 0.1)),
	}
	configure(t, rb)
}

// TestSetInputs tests snapshot replacement, clamping and rejection of bad input
func TestSetInputs(t *testing.T) {
	e := configure(t, levelRuleBase())

	require.NoError(t, e.SetInputs(2.5))
	assert.Equal(t, []float64{2.5}, e.Inputs())

	acts, err := e.Fuzzified("x")
	require.NoError(t, err)
	assert.Equal(t, []fuzzy.Activation{{Term: "low", Degree: 0.75}, {Term: "high", Degree: 0.25}}, acts)
	assert.Equal(t, []float64{0.75, 0.25}, e.FiringStrengths())

	// out of domain values are clamped
	require.NoError(t, e.SetInputs(-3))
	assert.Equal(t, []float64{0}, e.Inputs())
	require.NoError(t, e.SetInputs(math.Inf(1)))
	assert.Equal(t, []float64{10}, e.Inputs())

	// rejected input leaves the snapshot untouched
	err = e.SetInputs(math.NaN())
	assert.ErrorIs(t, err, fuzzy.ErrInput)
	err = e.SetInputs(1, 2)
	assert.ErrorIs(t, err, fuzzy.ErrInput)
	err = e.SetInputs()
	assert.ErrorIs(t, err, fuzzy.ErrInput)
	assert.Equal(t, []float64{10}, e.Inputs())

	_, err = e.Label("z")
	assert.ErrorIs(t, err, fuzzy.ErrInput)
	_, err = e.Value("z")
	assert.ErrorIs(t, err, fuzzy.ErrInput)
	_, err = e.Activations("z")
	assert.ErrorIs(t, err, fuzzy.ErrInput)
	_, err = e.Fuzzified("z")
	assert.ErrorIs(t, err, fuzzy.ErrInput)
}

// TestClassificationTieBreak tests that equal supports go to the term declared first
func TestClassificationTieBreak(t *testing.T) {
	e := configure(t, levelRuleBase())
	require.NoError(t, e.SetInputs(5))

	acts, err := e.Activations("y")
	require.NoError(t, err)
	assert.Equal(t, acts[0].Degree, acts[1].Degree)

	label, err := e.Label("y")
	require.NoError(t, err)
	assert.Equal(t, "small", label.Term)
	assert.Equal(t, 0.5, label.Degree)

	// reversing the declaration order reverses the winner
	rb := levelRuleBase()
	rb.Outputs[0].Terms = []fuzzy.Term{tri("large", 0, 10, 10), tri("small", 0, 0, 10)}
	e = configure(t, rb)
	require.NoError(t, e.SetInputs(5))
	label, err = e.Label("y")
	require.NoError(t, err)
	assert.Equal(t, "large", label.Term)
}

// TestDeterminism tests that the same inputs always produce the same result
func TestDeterminism(t *testing.T) {
	e := configure(t, levelRuleBase())
	for _, x := range []float64{0, 1.25, 3.3, 5, 7.7, 10} {
		first, err := e.Evaluate(x)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := e.Evaluate(x)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

// TestEvaluateIsStateless tests that Evaluate leaves the snapshot alone
func TestEvaluateIsStateless(t *testing.T) {
	e := configure(t, levelRuleBase())
	require.NoError(t, e.SetInputs(2))

	res, err := e.Evaluate(8)
	require.NoError(t, err)
	assert.Equal(t, []float64{8}, res.Inputs)
	assert.Equal(t, "large", res.Labels["y"].Term)
	assert.InDelta(t, 8, res.Values["y"], 1e-12)

	assert.Equal(t, []float64{2}, e.Inputs())
	label, _ := e.Label("y")
	assert.Equal(t, "small", label.Term)
}

// TestWeightedAverage tests numeric output along the input domain
func TestWeightedAverage(t *testing.T) {
	e := configure(t, levelRuleBase())
	for _, x := range []float64{0, 2.5, 5, 7.5, 10} {
		require.NoError(t, e.SetInputs(x))
		v, err := e.Value("y")
		require.NoError(t, err)
		assert.InDelta(t, x, v, 1e-12)
	}
}

// TestNoRuleFired tests the empty label and the numeric fallback
func TestNoRuleFired(t *testing.T) {
	rb := levelRuleBase()
	rb.Rules = []string{"if x is high then y is large"}
	e := configure(t, rb)

	require.NoError(t, e.SetInputs(0))
	label, err := e.Label("y")
	require.NoError(t, err)
	assert.False(t, label.Fired)
	assert.Empty(t, label.Term)
	assert.Empty(t, label.String())

	v, err := e.Value("y")
	require.NoError(t, err)
	assert.Equal(t, 5.0, v, "domain midpoint")

	rb = levelRuleBase()
	rb.Rules = []string{"if x is high then y is large"}
	rb.Outputs[0].Default = 2
	e = configure(t, rb)
	v, err = e.Value("y")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

// TestHedgesAndWeights tests that hedges and weights scale the firing strength
func TestHedgesAndWeights(t *testing.T) {
	rb := levelRuleBase()
	rb.Rules = []string{
		"if x is very high then y is large",
		"if x is high then y is large with 0.5",
		"if x is not high then y is small",
		"if x is any then y is small with 0.1",
	}
	e := configure(t, rb)
	require.NoError(t, e.SetInputs(5))

	s := e.FiringStrengths()
	assert.InDelta(t, 0.25, s[0], 1e-12)
	assert.InDelta(t, 0.25, s[1], 1e-12)
	assert.InDelta(t, 0.5, s[2], 1e-12)
	assert.InDelta(t, 0.1, s[3], 1e-12)

	acts, err := e.Activations("y")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, acts[0].Degree, 1e-12, "maximum aggregation")
	assert.InDelta(t, 0.25, acts[1].Degree, 1e-12)
}

// TestConjunction tests that the configured t-norm joins antecedents
func TestConjunction(t *testing.T) {
	build := func(conj string) *fuzzy.Engine {
		rb := levelRuleBase()
		rb.Inputs = append(rb.Inputs, fuzzy.NewInputVariable("z", 0, 10, tri("low", 0, 0, 10), tri("high", 0, 10, 10)))
		rb.Rules = []string{"if x is low and z is low then y is small", "if x is high and z is high then y is large"}
		rb.Conjunction = conj
		return configure(t, rb)
	}

	product := build("")
	require.NoError(t, product.SetInputs(5, 5))
	assert.InDelta(t, 0.25, product.FiringStrengths()[0], 1e-12)

	minimum := build("minimum")
	require.NoError(t, minimum.SetInputs(5, 5))
	assert.InDelta(t, 0.5, minimum.FiringStrengths()[0], 1e-12)

	_, err := product.Evaluate(5)
	assert.ErrorIs(t, err, fuzzy.ErrInput)
}

// TestAreaDefuzzifiers tests centroid and bisector on a symmetric output set
func TestAreaDefuzzifiers(t *testing.T) {
	for _, name := range []string{"centroid", "bisector"} {
		t.Run(name, func(t *testing.T) {
			rb := levelRuleBase()
			rb.Defuzzifier = name
			rb.Resolution = 500
			e := configure(t, rb)

			require.NoError(t, e.SetInputs(5))
			v, err := e.Value("y")
			require.NoError(t, err)
			assert.InDelta(t, 5, v, 0.05)

			require.NoError(t, e.SetInputs(10))
			v, err = e.Value("y")
			require.NoError(t, err)
			assert.Greater(t, v, 5.0)
		})
	}
}

// TestSetLogger tests that debug logging of snapshots does not disturb results
func TestSetLogger(t *testing.T) {
	e := configure(t, levelRuleBase())
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(&discard{})
	e.SetLogger(logger)
	e.SetLogger(nil)

	require.NoError(t, e.SetInputs(7.5))
	v, err := e.Value("y")
	require.NoError(t, err)
	assert.InDelta(t, 7.5, v, 1e-12)
}

type discard struct{ n int }

func (d *discard) Write(p []byte) (int, error) {
	d.n += len(p)
	return len(p), nil
}

// TestParseInputs tests argument conversion
func TestParseInputs(t *testing.T) {
	values, err := fuzzy.ParseInputs([]string{"1", " 2.5", "-3e1"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -30}, values)

	_, err = fuzzy.ParseInputs([]string{"1", "red"})
	assert.ErrorIs(t, err, fuzzy.ErrInput)
	_, err = fuzzy.ParseInputs([]string{"NaN"})
	assert.ErrorIs(t, err, fuzzy.ErrInput)
}

// TestExport tests the FCL rendering of a rule base
func TestExport(t *testing.T) {
	rb := levelRuleBase()
	rb.Inputs[0].Terms = append(rb.Inputs[0].Terms, fuzzy.MustTerm(fuzzy.NewGaussian("mid", 5, 2)))
	rb.Rules = append(rb.Rules, "if x is somewhat mid then y is large with 0.5")
	fcl := configure(t, rb).Export()

	for _, want := range []string{
		"FUNCTION_BLOCK level\n",
		"VAR_INPUT\n  x: REAL;\nEND_VAR\n",
		"VAR_OUTPUT\n  y: REAL;\nEND_VAR\n",
		"FUZZIFY x\n  RANGE := (0 .. 10);\n  TERM low := (0, 0) (0, 1) (10, 0);\n",
		"  TERM mid := Gaussian 5 2;\n",
		"DEFUZZIFY y\n",
		"  METHOD : COGS;\n  ACCU : MAX;\n  DEFAULT := NAN;\n",
		"RULEBLOCK rules\n  AND : PROD;\n  ACT : PROD;\n",
		"  RULE 1 : if x is low then y is small;\n",
		"  RULE 3 : if x is somewhat mid then y is large with 0.5;\n",
		"END_FUNCTION_BLOCK\n",
	} {
		assert.Contains(t, fcl, want)
	}
}
