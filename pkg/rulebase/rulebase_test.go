/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rulebase_test.go
Description: Tests for loading, encoding and compiling rule-base documents.
*/

package rulebase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/akaylee-chroma/pkg/chroma"
	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"github.com/kleascm/akaylee-chroma/pkg/rulebase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadYAML tests loading a hand-written document and classifying with it
func TestLoadYAML(t *testing.T) {
	doc, err := rulebase.Load(filepath.Join("testdata", "coarse.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "rgb_coarse", doc.Name)
	assert.Equal(t, "centroid", doc.Defuzzifier)
	assert.Equal(t, 200, doc.Resolution)
	require.Len(t, doc.Inputs, 3)
	require.Len(t, doc.Outputs, 2)
	assert.Equal(t, []float64{15, 0}, doc.Inputs[0].Terms[0].Params)
	require.NotNil(t, doc.Outputs[1].Default)
	assert.Equal(t, 0.0, *doc.Outputs[1].Default)
	assert.Nil(t, doc.Outputs[0].Default)
	assert.Len(t, doc.Rules, 16)

	engine, err := doc.Configure()
	require.NoError(t, err)
	c, err := chroma.FromEngine(engine)
	require.NoError(t, err)

	tests := []struct {
		r, g, b    float64
		color      string
		luminosity string
	}{
		{0, 0, 0, "black", "dark"},
		{15, 15, 15, "white", "bright"},
		{15, 0, 0, "red", "medium"},
		{0, 15, 15, "cyan", "medium"},
		{12, 13, 1, "yellow", "medium"},
	}
	for _, tt := range tests {
		require.NoError(t, c.SetColor(tt.r, tt.g, tt.b))
		assert.Equal(t, tt.color, c.ColorLabel(), "(%g,%g,%g)", tt.r, tt.g, tt.b)
		assert.Equal(t, tt.luminosity, c.LuminosityLabel(), "(%g,%g,%g)", tt.r, tt.g, tt.b)
	}
}

// TestBuiltInRoundTrip tests that an exported built-in rule base behaves like the in-code one
func TestBuiltInRoundTrip(t *testing.T) {
	for _, format := range []rulebase.Format{rulebase.FormatYAML, rulebase.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			rb, err := chroma.ColorRuleBase(chroma.ModeGaussian)
			require.NoError(t, err)

			data, err := rulebase.Encode(rulebase.FromRuleBase(rb), format)
			require.NoError(t, err)
			doc, err := rulebase.Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, rb.Name, doc.Name)
			assert.Equal(t, rb.Rules, doc.Rules)

			engine, err := doc.Configure()
			require.NoError(t, err)
			loaded, err := chroma.FromEngine(engine)
			require.NoError(t, err)
			builtIn, err := chroma.New(int(chroma.ModeGaussian))
			require.NoError(t, err)

			for _, rgb := range [][3]float64{{0, 0, 0}, {15, 7, 0}, {3, 9, 12}, {8, 8, 8}, {15, 15, 15}} {
				require.NoError(t, loaded.SetColor(rgb[0], rgb[1], rgb[2]))
				require.NoError(t, builtIn.SetColor(rgb[0], rgb[1], rgb[2]))
				assert.Equal(t, builtIn.Color(), loaded.Color())
				assert.Equal(t, builtIn.Luminosity(), loaded.Luminosity())
				assert.InDelta(t, builtIn.LedCode(), loaded.LedCode(), 1e-9)
			}
		})
	}
}

// TestEncodeDecodeJSON tests that a YAML document survives conversion to JSON
func TestEncodeDecodeJSON(t *testing.T) {
	doc, err := rulebase.Load(filepath.Join("testdata", "coarse.yaml"))
	require.NoError(t, err)

	data, err := rulebase.Encode(doc, rulebase.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "rgb_coarse"`)

	path := filepath.Join(t.TempDir(), "coarse.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	again, err := rulebase.Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

// TestDecodeRejectsUnknownFields tests that misspelt keys fail loudly
func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := rulebase.Decode([]byte("name: x\nconjuntion: minimum\n"), rulebase.FormatYAML)
	assert.Error(t, err)

	_, err = rulebase.Decode([]byte(`{"name": "x", "rule": []}`), rulebase.FormatJSON)
	assert.Error(t, err)

	_, err = rulebase.Decode([]byte("name: x\n"), rulebase.Format("toml"))
	assert.Error(t, err)
}

// TestFormatFromPath tests extension detection
func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    rulebase.Format
		wantErr bool
	}{
		{"rules.yaml", rulebase.FormatYAML, false},
		{"dir/RULES.YML", rulebase.FormatYAML, false},
		{"rules.json", rulebase.FormatJSON, false},
		{"rules.toml", "", true},
		{"rules", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := rulebase.FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLoadErrors tests missing files and unsupported extensions
func TestLoadErrors(t *testing.T) {
	_, err := rulebase.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = rulebase.Load(filepath.Join("testdata", "coarse.txt"))
	assert.Error(t, err)
}

// TestInvalidDocument tests that bad terms and rules surface as configuration errors
func TestInvalidDocument(t *testing.T) {
	valid := func() *rulebase.Document {
		return &rulebase.Document{
			Name: "tiny",
			Inputs: []rulebase.VariableSpec{{
				Name: "x", Min: 0, Max: 1,
				Terms: []rulebase.TermSpec{{Name: "all", Type: "rectangle", Params: []float64{0, 1}}},
			}},
			Outputs: []rulebase.VariableSpec{{
				Name: "y", Min: 0, Max: 1,
				Terms: []rulebase.TermSpec{{Name: "one", Type: "triangle", Params: []float64{0, 1, 1}}, {Name: "zero", Type: "triangle", Params: []float64{0, 0, 1}}},
			}},
			Rules: []string{"if x is all then y is one"},
		}
	}

	engine, err := valid().Configure()
	require.NoError(t, err)
	assert.Equal(t, "tiny", engine.Name())

	doc := valid()
	doc.Outputs[0].Terms[0].Params = []float64{0, 1}
	_, err = doc.RuleBase()
	assert.ErrorIs(t, err, fuzzy.ErrConfiguration)

	doc = valid()
	doc.Inputs[0].Terms[0].Type = "bell"
	_, err = doc.RuleBase()
	assert.ErrorIs(t, err, fuzzy.ErrConfiguration)

	doc = valid()
	doc.Rules = []string{"if x is all then y is two"}
	_, err = doc.Configure()
	assert.ErrorIs(t, err, fuzzy.ErrConfiguration)
}

// TestDefaultValue tests that an output default reaches the engine
func TestDefaultValue(t *testing.T) {
	doc, err := rulebase.Load(filepath.Join("testdata", "coarse.yaml"))
	require.NoError(t, err)

	rb, err := doc.RuleBase()
	require.NoError(t, err)
	assert.Equal(t, 0.0, rb.Outputs[1].Default)
	assert.Equal(t, 2047.5, rb.Outputs[0].Fallback())

	back := rulebase.FromRuleBase(rb)
	require.NotNil(t, back.Outputs[1].Default)
	assert.Nil(t, back.Outputs[0].Default)
}
