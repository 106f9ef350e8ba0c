/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rulebase.go
Description: Declarative rule-base documents. A document lists the variables, their terms
and the textual rules, and compiles into a fuzzy.RuleBase. Documents are read and written
as YAML or JSON, chosen by file extension.
*/

package rulebase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// TermSpec declares one linguistic term.
type TermSpec struct {
	Name   string    `yaml:"name" json:"name"`
	Type   string    `yaml:"type" json:"type"` // triangle, trapezoid, rectangle, gaussian, ramp
	Params []float64 `yaml:"params" json:"params"`
}

// VariableSpec declares an input or output variable.
type VariableSpec struct {
	Name  string     `yaml:"name" json:"name"`
	Min   float64    `yaml:"min" json:"min"`
	Max   float64    `yaml:"max" json:"max"`
	Terms []TermSpec `yaml:"terms" json:"terms"`
	// Default is the numeric fallback of an output; nil selects the domain midpoint.
	Default *float64 `yaml:"default,omitempty" json:"default,omitempty"`
}

// Document is a complete rule base.
type Document struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Conjunction string         `yaml:"conjunction,omitempty" json:"conjunction,omitempty"`
	Implication string         `yaml:"implication,omitempty" json:"implication,omitempty"`
	Aggregation string         `yaml:"aggregation,omitempty" json:"aggregation,omitempty"`
	Defuzzifier string         `yaml:"defuzzifier,omitempty" json:"defuzzifier,omitempty"`
	Resolution  int            `yaml:"resolution,omitempty" json:"resolution,omitempty"`
	Inputs      []VariableSpec `yaml:"inputs" json:"inputs"`
	Outputs     []VariableSpec `yaml:"outputs" json:"outputs"`
	Rules       []string       `yaml:"rules" json:"rules"`
}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported rule base extension %q (use .yaml, .yml or .json)", filepath.Ext(path))
}

// Load reads and decodes a rule-base document.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule base: %w", err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a document. Unknown fields are rejected so typos fail loudly.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode yaml rule base: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode json rule base: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported rule base format %q", format)
	}
	return &doc, nil
}

// Encode renders a document.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to encode yaml rule base: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json rule base: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported rule base format %q", format)
}

// RuleBase compiles the document. Term errors are fuzzy.ConfigErrors; variable and rule
// checks happen in fuzzy.Configure.
func (d *Document) RuleBase() (fuzzy.RuleBase, error) {
	rb := fuzzy.RuleBase{
		Name:        d.Name,
		Rules:       d.Rules,
		Conjunction: d.Conjunction,
		Implication: d.Implication,
		Aggregation: d.Aggregation,
		Defuzzifier: d.Defuzzifier,
		Resolution:  d.Resolution,
	}
	for _, v := range d.Inputs {
		terms, err := buildTerms(v)
		if err != nil {
			return fuzzy.RuleBase{}, err
		}
		rb.Inputs = append(rb.Inputs, fuzzy.NewInputVariable(v.Name, v.Min, v.Max, terms...))
	}
	for _, v := range d.Outputs {
		terms, err := buildTerms(v)
		if err != nil {
			return fuzzy.RuleBase{}, err
		}
		out := fuzzy.NewOutputVariable(v.Name, v.Min, v.Max, terms...)
		if v.Default != nil {
			out.Default = *v.Default
		}
		rb.Outputs = append(rb.Outputs, out)
	}
	return rb, nil
}

// Configure compiles the document and builds an engine.
func (d *Document) Configure() (*fuzzy.Engine, error) {
	rb, err := d.RuleBase()
	if err != nil {
		return nil, err
	}
	return fuzzy.Configure(rb)
}

func buildTerms(v VariableSpec) ([]fuzzy.Term, error) {
	terms := make([]fuzzy.Term, 0, len(v.Terms))
	for _, ts := range v.Terms {
		t, err := fuzzy.NewTerm(ts.Type, ts.Name, ts.Params)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// FromRuleBase turns an in-code rule base into a document, e.g. to export a template.
func FromRuleBase(rb fuzzy.RuleBase) *Document {
	doc := &Document{
		Name:        rb.Name,
		Conjunction: rb.Conjunction,
		Implication: rb.Implication,
		Aggregation: rb.Aggregation,
		Defuzzifier: rb.Defuzzifier,
		Resolution:  rb.Resolution,
		Rules:       append([]string(nil), rb.Rules...),
	}
	for _, v := range rb.Inputs {
		doc.Inputs = append(doc.Inputs, specFor(v.Variable))
	}
	for _, v := range rb.Outputs {
		spec := specFor(v.Variable)
		if !math.IsNaN(v.Default) {
			d := v.Default
			spec.Default = &d
		}
		doc.Outputs = append(doc.Outputs, spec)
	}
	return doc
}

func specFor(v fuzzy.Variable) VariableSpec {
	spec := VariableSpec{Name: v.Name, Min: v.Min, Max: v.Max}
	for _, t := range v.Terms {
		spec.Terms = append(spec.Terms, TermSpec{Name: t.Name(), Type: t.Kind(), Params: t.Parameters()})
	}
	return spec
}
