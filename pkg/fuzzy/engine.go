/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: The fuzzy inference engine. Configure validates a rule base once and returns an
immutable engine; SetInputs stores a clamped input snapshot and recomputes every output
synchronously (fuzzification, rule evaluation, aggregation, defuzzification).
The engine has no internal locking: a SetInputs followed by reads must be serialized by
the caller when an engine is shared. Evaluate does not touch the snapshot.
*/

package fuzzy

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RuleBase is everything needed to build an engine. Operator names are resolved by
// TNormByName, SNormByName and DefuzzifierByName; empty names select the defaults
// (product conjunction and implication, maximum aggregation, weighted average).
type RuleBase struct {
	Name        string
	Inputs      []*InputVariable
	Outputs     []*OutputVariable
	Rules       []string
	Conjunction string
	Implication string
	Aggregation string
	Defuzzifier string
	Resolution  int
}

// Engine evaluates one configured rule base.
type Engine struct {
	id          string
	name        string
	inputs      []*InputVariable
	outputs     []*OutputVariable
	rules       []*boundRule
	conjunction TNorm
	implication TNorm
	aggregation SNorm
	defuzzifier Defuzzifier
	logger      *logrus.Logger

	current *snapshot
}

// snapshot is the full derivation for one set of inputs.
type snapshot struct {
	inputs    []float64
	degrees   [][]float64 // [input][term]
	strengths []float64   // [rule]
	supports  [][]float64 // [output][term]
}

// Result is a stateless evaluation returned by Evaluate.
type Result struct {
	Inputs    []float64          `json:"inputs"`
	Labels    map[string]Label   `json:"labels"`
	Values    map[string]float64 `json:"values"`
	Strengths []float64          `json:"strengths"`
}

// Configure validates the rule base and builds an engine. It fails with a ConfigError when
// a variable is malformed or leaves part of its domain uncovered, when an operator is
// unknown, or when a rule references an undeclared variable or term.
func Configure(rb RuleBase) (*Engine, error) {
	if len(rb.Inputs) == 0 {
		return nil, configErrorf("engine", rb.Name, "no input variables")
	}
	if len(rb.Outputs) == 0 {
		return nil, configErrorf("engine", rb.Name, "no output variables")
	}
	if len(rb.Rules) == 0 {
		return nil, configErrorf("engine", rb.Name, "no rules")
	}

	names := make(map[string]bool)
	for _, v := range rb.Inputs {
		if v == nil {
			return nil, configErrorf("engine", rb.Name, "nil input variable")
		}
		if err := v.validate("input"); err != nil {
			return nil, err
		}
		if names[v.Name] {
			return nil, configErrorf("input", v.Name, "declared twice")
		}
		names[v.Name] = true
	}
	for _, v := range rb.Outputs {
		if v == nil {
			return nil, configErrorf("engine", rb.Name, "nil output variable")
		}
		if err := v.validate("output"); err != nil {
			return nil, err
		}
		if names[v.Name] {
			return nil, configErrorf("output", v.Name, "declared twice")
		}
		names[v.Name] = true
	}

	conj, err := TNormByName(rb.Conjunction)
	if err != nil {
		return nil, err
	}
	imp, err := TNormByName(rb.Implication)
	if err != nil {
		return nil, err
	}
	agg, err := SNormByName(rb.Aggregation)
	if err != nil {
		return nil, err
	}
	defuzz, err := DefuzzifierByName(rb.Defuzzifier, rb.Resolution, imp, agg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		id:          uuid.New().String(),
		name:        rb.Name,
		inputs:      rb.Inputs,
		outputs:     rb.Outputs,
		conjunction: conj,
		implication: imp,
		aggregation: agg,
		defuzzifier: defuzz,
		logger:      logrus.New(),
	}
	for _, text := range rb.Rules {
		r, err := ParseRule(text)
		if err != nil {
			return nil, err
		}
		b, err := bindRule(r, e.inputs, e.outputs)
		if err != nil {
			return nil, err
		}
		e.rules = append(e.rules, b)
	}

	initial := make([]float64, len(e.inputs))
	for i, v := range e.inputs {
		initial[i] = v.Min
	}
	e.current = e.process(initial)

	e.logger.WithFields(logrus.Fields{
		"engine_id":   e.id,
		"rule_base":   e.name,
		"inputs":      len(e.inputs),
		"outputs":     len(e.outputs),
		"rules":       len(e.rules),
		"conjunction": conj.Name(),
		"aggregation": agg.Name(),
		"defuzzifier": defuzz.Name(),
	}).Debug("Engine configured")

	return e, nil
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// ID identifies this engine instance in logs.
func (e *Engine) ID() string { return e.id }

// Name returns the rule base name.
func (e *Engine) Name() string { return e.name }

// InputVariables returns the declared inputs in order.
func (e *Engine) InputVariables() []*InputVariable { return e.inputs }

// OutputVariables returns the declared outputs in order.
func (e *Engine) OutputVariables() []*OutputVariable { return e.outputs }

// Rules returns the parsed rules in declaration order.
func (e *Engine) Rules() []*Rule {
	out := make([]*Rule, len(e.rules))
	for i, b := range e.rules {
		out[i] = b.rule
	}
	return out
}

// SetInputs replaces the input snapshot. One value per input variable, in declaration
// order. Out-of-domain values (including infinities) are clamped; NaN is rejected.
func (e *Engine) SetInputs(values ...float64) error {
	clamped, err := e.clampInputs(values)
	if err != nil {
		return err
	}
	start := time.Now()
	e.current = e.process(clamped)

	if e.logger.IsLevelEnabled(logrus.DebugLevel) {
		fields := logrus.Fields{
			"engine_id": e.id,
			"duration":  time.Since(start),
		}
		for i, v := range e.inputs {
			fields[v.Name] = clamped[i]
		}
		for i, o := range e.outputs {
			fields[o.Name] = classify(o, e.current.supports[i]).Term
		}
		e.logger.WithFields(fields).Debug("Inputs updated")
	}
	return nil
}

// Inputs returns the clamped input snapshot.
func (e *Engine) Inputs() []float64 {
	return append([]float64(nil), e.current.inputs...)
}

// Label returns the winning term of an output for the current snapshot.
func (e *Engine) Label(output string) (Label, error) {
	i, err := e.outputIndex(output)
	if err != nil {
		return Label{}, err
	}
	return classify(e.outputs[i], e.current.supports[i]), nil
}

// Value returns the numeric defuzzification of an output for the current snapshot.
func (e *Engine) Value(output string) (float64, error) {
	i, err := e.outputIndex(output)
	if err != nil {
		return 0, err
	}
	v, _ := e.defuzzifier.Defuzzify(e.outputs[i], e.current.supports[i])
	return v, nil
}

// Activations returns the aggregated support of every term of an output.
func (e *Engine) Activations(output string) ([]Activation, error) {
	i, err := e.outputIndex(output)
	if err != nil {
		return nil, err
	}
	out := make([]Activation, len(e.outputs[i].Terms))
	for t, term := range e.outputs[i].Terms {
		out[t] = Activation{Term: term.Name(), Degree: e.current.supports[i][t]}
	}
	return out, nil
}

// Fuzzified returns the membership degrees of an input variable for the current snapshot.
func (e *Engine) Fuzzified(input string) ([]Activation, error) {
	for i, v := range e.inputs {
		if v.Name == input {
			out := make([]Activation, len(v.Terms))
			for t, term := range v.Terms {
				out[t] = Activation{Term: term.Name(), Degree: e.current.degrees[i][t]}
			}
			return out, nil
		}
	}
	return nil, inputErrorf("unknown input variable %q", input)
}

// FiringStrengths returns one strength per rule, in rule order.
func (e *Engine) FiringStrengths() []float64 {
	return append([]float64(nil), e.current.strengths...)
}

// Evaluate computes every output for the given inputs without changing the snapshot.
func (e *Engine) Evaluate(values ...float64) (Result, error) {
	clamped, err := e.clampInputs(values)
	if err != nil {
		return Result{}, err
	}
	s := e.process(clamped)
	res := Result{
		Inputs:    s.inputs,
		Labels:    make(map[string]Label, len(e.outputs)),
		Values:    make(map[string]float64, len(e.outputs)),
		Strengths: s.strengths,
	}
	for i, o := range e.outputs {
		res.Labels[o.Name] = classify(o, s.supports[i])
		res.Values[o.Name], _ = e.defuzzifier.Defuzzify(o, s.supports[i])
	}
	return res, nil
}

func (e *Engine) clampInputs(values []float64) ([]float64, error) {
	if len(values) != len(e.inputs) {
		return nil, inputErrorf("expected %d values (%s), got %d", len(e.inputs), strings.Join(e.inputNames(), ", "), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, inputErrorf("%s is not a number", e.inputs[i].Name)
		}
		out[i] = e.inputs[i].Clamp(v)
	}
	return out, nil
}

func (e *Engine) process(inputs []float64) *snapshot {
	s := &snapshot{
		inputs:    inputs,
		degrees:   make([][]float64, len(e.inputs)),
		strengths: make([]float64, len(e.rules)),
		supports:  make([][]float64, len(e.outputs)),
	}
	for i, v := range e.inputs {
		acts := v.Fuzzify(inputs[i])
		s.degrees[i] = make([]float64, len(acts))
		for t, a := range acts {
			s.degrees[i][t] = a.Degree
		}
	}
	for i, o := range e.outputs {
		s.supports[i] = make([]float64, len(o.Terms))
	}
	for r, b := range e.rules {
		w := b.strength(s.degrees, e.conjunction)
		s.strengths[r] = w
		if w <= 0 {
			continue
		}
		sup := s.supports[b.output]
		sup[b.outTerm] = clampDegree(e.aggregation.Compute(sup[b.outTerm], w))
	}
	return s
}

func (e *Engine) outputIndex(name string) (int, error) {
	for i, o := range e.outputs {
		if o.Name == name {
			return i, nil
		}
	}
	return -1, inputErrorf("unknown output variable %q", name)
}

func (e *Engine) inputNames() []string {
	names := make([]string, len(e.inputs))
	for i, v := range e.inputs {
		names[i] = v.Name
	}
	return names
}

// ParseInputs converts command-line style arguments into input values.
func ParseInputs(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil || math.IsNaN(v) {
			return nil, inputErrorf("argument %d (%q) is not a number", i+1, a)
		}
		out[i] = v
	}
	return out, nil
}
