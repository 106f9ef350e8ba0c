/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rule.go
Description: Textual rules of the form
	if red is high and green is not low then color is orange with 0.8
Parsing is purely syntactic; names are resolved against the declared variables when
the rule base is configured.
*/

package fuzzy

import (
	"fmt"
	"strconv"
	"strings"
)

// Proposition is "variable is [hedges...] term".
type Proposition struct {
	Variable string
	Hedges   []Hedge // applied right to left
	Term     string  // empty when the last hedge is "any"
}

func (p Proposition) String() string {
	parts := []string{p.Variable, "is"}
	for _, h := range p.Hedges {
		parts = append(parts, h.Name)
	}
	if p.Term != "" {
		parts = append(parts, p.Term)
	}
	return strings.Join(parts, " ")
}

// Rule is one line of the rule base.
type Rule struct {
	Text       string
	Antecedent []Proposition
	Consequent Proposition
	Weight     float64
}

// String renders the rule in canonical form.
func (r *Rule) String() string {
	conds := make([]string, len(r.Antecedent))
	for i, p := range r.Antecedent {
		conds[i] = p.String()
	}
	s := fmt.Sprintf("if %s then %s", strings.Join(conds, " and "), r.Consequent.String())
	if r.Weight != 1 {
		s += " with " + strconv.FormatFloat(r.Weight, 'g', -1, 64)
	}
	return s
}

// ParseRule parses one rule. Keywords are case-insensitive; names are case-sensitive.
func ParseRule(text string) (*Rule, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, configErrorf("rule", "", "empty rule")
	}
	if !strings.EqualFold(tokens[0], "if") {
		return nil, configErrorf("rule", text, "must start with \"if\"")
	}

	thenAt := -1
	for i, tok := range tokens {
		if strings.EqualFold(tok, "then") {
			if thenAt >= 0 {
				return nil, configErrorf("rule", text, "more than one \"then\"")
			}
			thenAt = i
		}
	}
	if thenAt < 0 {
		return nil, configErrorf("rule", text, "missing \"then\"")
	}

	rule := &Rule{Text: text, Weight: 1}

	// antecedent: propositions separated by "and"
	var current []string
	flush := func() error {
		p, err := parseProposition(text, current, true)
		if err != nil {
			return err
		}
		rule.Antecedent = append(rule.Antecedent, p)
		current = nil
		return nil
	}
	for _, tok := range tokens[1:thenAt] {
		switch strings.ToLower(tok) {
		case "and":
			if err := flush(); err != nil {
				return nil, err
			}
		case "or":
			return nil, configErrorf("rule", text, "disjunction is not supported; split the rule in two")
		default:
			current = append(current, tok)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	// consequent, optionally followed by "with <weight>"
	rest := tokens[thenAt+1:]
	for i, tok := range rest {
		if !strings.EqualFold(tok, "with") {
			continue
		}
		if i != len(rest)-2 {
			return nil, configErrorf("rule", text, "\"with\" must be followed by exactly one weight")
		}
		w, err := strconv.ParseFloat(rest[i+1], 64)
		if err != nil {
			return nil, configErrorf("rule", text, "bad weight %q", rest[i+1])
		}
		if w < 0 || w > 1 {
			return nil, configErrorf("rule", text, "weight %g outside [0, 1]", w)
		}
		rule.Weight = w
		rest = rest[:i]
		break
	}
	consequent, err := parseProposition(text, rest, false)
	if err != nil {
		return nil, err
	}
	rule.Consequent = consequent
	return rule, nil
}

func parseProposition(text string, tokens []string, allowHedges bool) (Proposition, error) {
	if len(tokens) < 3 || !strings.EqualFold(tokens[1], "is") {
		if len(tokens) == 2 && strings.EqualFold(tokens[1], "is") {
			return Proposition{}, configErrorf("rule", text, "proposition %q has no term", strings.Join(tokens, " "))
		}
		return Proposition{}, configErrorf("rule", text, "expected \"<variable> is <term>\", got %q", strings.Join(tokens, " "))
	}
	p := Proposition{Variable: tokens[0]}
	words := tokens[2:]
	last := len(words) - 1
	for i, w := range words {
		h, isHedge := HedgeByName(strings.ToLower(w))
		if i == last && !(isHedge && h.Name == "any") {
			p.Term = w
			break
		}
		if !isHedge {
			return Proposition{}, configErrorf("rule", text, "unknown hedge %q", w)
		}
		if !allowHedges {
			return Proposition{}, configErrorf("rule", text, "hedges are not allowed in the consequent")
		}
		p.Hedges = append(p.Hedges, h)
		if h.Name == "any" && i != last {
			return Proposition{}, configErrorf("rule", text, "\"any\" must be the last word of a proposition")
		}
	}
	return p, nil
}

// boundRule is a Rule resolved to variable and term indexes.
type boundRule struct {
	rule    *Rule
	inputs  []int // input variable index per antecedent
	terms   []int // term index per antecedent, -1 for "any"
	hedges  [][]Hedge
	output  int
	outTerm int
}

func bindRule(r *Rule, inputs []*InputVariable, outputs []*OutputVariable) (*boundRule, error) {
	b := &boundRule{rule: r}
	for _, p := range r.Antecedent {
		vi := -1
		for i, v := range inputs {
			if v.Name == p.Variable {
				vi = i
				break
			}
		}
		if vi < 0 {
			for _, o := range outputs {
				if o.Name == p.Variable {
					return nil, configErrorf("rule", r.Text, "output variable %q used in the antecedent", p.Variable)
				}
			}
			return nil, configErrorf("rule", r.Text, "undeclared input variable %q", p.Variable)
		}
		ti := -1
		if p.Term != "" {
			ti = inputs[vi].termIndex(p.Term)
			if ti < 0 {
				return nil, configErrorf("rule", r.Text, "variable %q has no term %q", p.Variable, p.Term)
			}
		}
		b.inputs = append(b.inputs, vi)
		b.terms = append(b.terms, ti)
		b.hedges = append(b.hedges, p.Hedges)
	}

	b.output = -1
	for i, o := range outputs {
		if o.Name == r.Consequent.Variable {
			b.output = i
			break
		}
	}
	if b.output < 0 {
		for _, v := range inputs {
			if v.Name == r.Consequent.Variable {
				return nil, configErrorf("rule", r.Text, "input variable %q used in the consequent", v.Name)
			}
		}
		return nil, configErrorf("rule", r.Text, "undeclared output variable %q", r.Consequent.Variable)
	}
	b.outTerm = outputs[b.output].termIndex(r.Consequent.Term)
	if b.outTerm < 0 {
		return nil, configErrorf("rule", r.Text, "variable %q has no term %q", r.Consequent.Variable, r.Consequent.Term)
	}
	return b, nil
}

// strength is the rule's firing strength for the given fuzzified inputs.
func (b *boundRule) strength(degrees [][]float64, conj TNorm) float64 {
	s := 1.0
	for i, vi := range b.inputs {
		d := 1.0
		if ti := b.terms[i]; ti >= 0 {
			d = degrees[vi][ti]
		}
		hs := b.hedges[i]
		for j := len(hs) - 1; j >= 0; j-- {
			d = hs[j].Apply(d)
		}
		if i == 0 {
			s = d
		} else {
			s = conj.Compute(s, d)
		}
	}
	return clampDegree(s * b.rule.Weight)
}
