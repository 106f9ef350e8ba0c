/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: term_test.go
Description: Tests for membership functions, term validation, hedges and norms.
*/

package fuzzy_test

import (
	"errors"
	"math"
	"testing"

	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTermMembership tests every shape at its breakpoints and in between
func TestTermMembership(t *testing.T) {
	tri := fuzzy.MustTerm(fuzzy.NewTriangle("mid", 0, 5, 10))
	shoulder := fuzzy.MustTerm(fuzzy.NewTriangle("low", 0, 0, 5))
	trap := fuzzy.MustTerm(fuzzy.NewTrapezoid("plateau", 0, 2, 4, 6))
	rect := fuzzy.MustTerm(fuzzy.NewRectangle("band", 1, 3))
	gauss := fuzzy.MustTerm(fuzzy.NewGaussian("bell", 7.5, 2.25))
	rising := fuzzy.MustTerm(fuzzy.NewRamp("up", 0, 10))
	falling := fuzzy.MustTerm(fuzzy.NewRamp("down", 10, 0))

	tests := []struct {
		name string
		term fuzzy.Term
		x    float64
		want float64
	}{
		{"triangle below", tri, -1, 0},
		{"triangle start", tri, 0, 0},
		{"triangle rising", tri, 2.5, 0.5},
		{"triangle peak", tri, 5, 1},
		{"triangle falling", tri, 7.5, 0.5},
		{"triangle end", tri, 10, 0},
		{"triangle NaN", tri, math.NaN(), 0},
		{"shoulder peak", shoulder, 0, 1},
		{"shoulder falling", shoulder, 4, 0.2},
		{"trapezoid rising", trap, 1, 0.5},
		{"trapezoid plateau", trap, 3, 1},
		{"trapezoid falling", trap, 5, 0.5},
		{"rectangle inside", rect, 2, 1},
		{"rectangle edge", rect, 3, 1},
		{"rectangle outside", rect, 0, 0},
		{"gaussian mean", gauss, 7.5, 1},
		{"gaussian one sigma", gauss, 9.75, math.Exp(-0.5)},
		{"ramp up middle", rising, 5, 0.5},
		{"ramp up past end", rising, 11, 1},
		{"ramp up before start", rising, -1, 0},
		{"ramp down middle", falling, 5, 0.5},
		{"ramp down end", falling, 0, 1},
		{"ramp down start", falling, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.term.Membership(tt.x), 1e-12)
		})
	}
}

// TestRepresentative tests the crisp value used by the weighted average
func TestRepresentative(t *testing.T) {
	assert.Equal(t, 5.0, fuzzy.MustTerm(fuzzy.NewTriangle("t", 0, 5, 10)).Representative())
	assert.Equal(t, 3.0, fuzzy.MustTerm(fuzzy.NewTrapezoid("t", 0, 2, 4, 6)).Representative())
	assert.Equal(t, 7.5, fuzzy.MustTerm(fuzzy.NewGaussian("t", 7.5, 1)).Representative())
	assert.Equal(t, 0.0, fuzzy.MustTerm(fuzzy.NewRamp("t", 10, 0)).Representative())
}

// TestTermValidation tests that malformed terms are rejected as configuration errors
func TestTermValidation(t *testing.T) {
	tests := []struct {
		name string
		make func() (fuzzy.Term, error)
	}{
		{"triangle out of order", func() (fuzzy.Term, error) { return fuzzy.NewTriangle("t", 5, 0, 10) }},
		{"triangle zero width", func() (fuzzy.Term, error) { return fuzzy.NewTriangle("t", 3, 3, 3) }},
		{"triangle NaN", func() (fuzzy.Term, error) { return fuzzy.NewTriangle("t", 0, math.NaN(), 1) }},
		{"triangle infinite", func() (fuzzy.Term, error) { return fuzzy.NewTriangle("t", 0, 1, math.Inf(1)) }},
		{"empty name", func() (fuzzy.Term, error) { return fuzzy.NewTriangle("", 0, 1, 2) }},
		{"name with space", func() (fuzzy.Term, error) { return fuzzy.NewTriangle("dark red", 0, 1, 2) }},
		{"trapezoid out of order", func() (fuzzy.Term, error) { return fuzzy.NewTrapezoid("t", 0, 4, 2, 6) }},
		{"rectangle reversed", func() (fuzzy.Term, error) { return fuzzy.NewRectangle("t", 3, 1) }},
		{"gaussian zero sigma", func() (fuzzy.Term, error) { return fuzzy.NewGaussian("t", 0, 0) }},
		{"ramp zero width", func() (fuzzy.Term, error) { return fuzzy.NewRamp("t", 2, 2) }},
		{"unknown shape", func() (fuzzy.Term, error) { return fuzzy.NewTerm("sigmoid", "t", []float64{1, 2}) }},
		{"wrong parameter count", func() (fuzzy.Term, error) { return fuzzy.NewTerm("triangle", "t", []float64{1, 2}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.make()
			require.Error(t, err)
			assert.ErrorIs(t, err, fuzzy.ErrConfiguration)

			var cfg *fuzzy.ConfigError
			require.True(t, errors.As(err, &cfg))
			assert.Equal(t, "term", cfg.Component)
		})
	}
}

// TestNewTerm tests building terms from their document form
func TestNewTerm(t *testing.T) {
	term, err := fuzzy.NewTerm(" Gaussian ", "mid", []float64{7.5, 2.25})
	require.NoError(t, err)
	assert.Equal(t, "mid", term.Name())
	assert.Equal(t, "gaussian", term.Kind())
	assert.Equal(t, []float64{7.5, 2.25}, term.Parameters())
	assert.Nil(t, term.Breakpoints())

	term, err = fuzzy.NewTerm("trapezoid", "wide", []float64{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "trapezoid(0, 1, 2, 3)", fuzzy.FormatTerm(term))
}

// TestMustTermPanics tests that MustTerm panics on invalid input
func TestMustTermPanics(t *testing.T) {
	assert.Panics(t, func() {
		fuzzy.MustTerm(fuzzy.NewTriangle("t", 1, 0, 2))
	})
}

// TestHedges tests the linguistic hedges
func TestHedges(t *testing.T) {
	tests := []struct {
		hedge string
		in    float64
		want  float64
	}{
		{"not", 0.3, 0.7},
		{"very", 0.5, 0.25},
		{"somewhat", 0.25, 0.5},
		{"seldom", 0.5, 0.5},
		{"seldom", 0.08, 0.2},
		{"extremely", 0.5, 0.5},
		{"extremely", 0.25, 0.125},
		{"extremely", 0.75, 0.875},
		{"any", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.hedge, func(t *testing.T) {
			h, ok := fuzzy.HedgeByName(tt.hedge)
			require.True(t, ok)
			assert.InDelta(t, tt.want, h.Apply(tt.in), 1e-12)
		})
	}

	_, ok := fuzzy.HedgeByName("rather")
	assert.False(t, ok)
}

// TestNorms tests operator values and lookup by name
func TestNorms(t *testing.T) {
	tnorms := []struct {
		norm fuzzy.TNorm
		want float64
	}{
		{fuzzy.Minimum, 0.5},
		{fuzzy.AlgebraicProduct, 0.25},
		{fuzzy.BoundedDifference, 0},
		{fuzzy.EinsteinProduct, 0.2},
		{fuzzy.HamacherProduct, 1.0 / 3},
	}
	for _, tt := range tnorms {
		t.Run(tt.norm.Name(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.norm.Compute(0.5, 0.5), 1e-12)
			for _, a := range []float64{0.2, 0.5, 0.9} {
				assert.InDelta(t, a, tt.norm.Compute(a, 1), 1e-12, "1 is the identity")
				assert.InDelta(t, 0, tt.norm.Compute(a, 0), 1e-12, "0 absorbs")
			}
		})
	}

	snorms := []struct {
		norm fuzzy.SNorm
		want float64
	}{
		{fuzzy.Maximum, 0.5},
		{fuzzy.AlgebraicSum, 0.75},
		{fuzzy.BoundedSum, 1},
		{fuzzy.HamacherSum, 2.0 / 3},
		{fuzzy.DrasticSum, 1},
	}
	for _, tt := range snorms {
		t.Run(tt.norm.Name(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.norm.Compute(0.5, 0.5), 1e-12)
			for _, a := range []float64{0.2, 0.5, 0.9} {
				assert.InDelta(t, a, tt.norm.Compute(a, 0), 1e-12, "0 is the identity")
				assert.InDelta(t, 1, tt.norm.Compute(a, 1), 1e-12, "1 absorbs")
			}
		})
	}

	n, err := fuzzy.TNormByName("")
	require.NoError(t, err)
	assert.Equal(t, "product", n.Name())

	n, err = fuzzy.TNormByName(" MIN ")
	require.NoError(t, err)
	assert.Equal(t, "minimum", n.Name())

	s, err := fuzzy.SNormByName("")
	require.NoError(t, err)
	assert.Equal(t, "maximum", s.Name())

	_, err = fuzzy.TNormByName("lukasiewicz")
	assert.ErrorIs(t, err, fuzzy.ErrConfiguration)
	_, err = fuzzy.SNormByName("lukasiewicz")
	assert.ErrorIs(t, err, fuzzy.ErrConfiguration)

	assert.Contains(t, fuzzy.TNormNames(), "einstein")
	assert.Contains(t, fuzzy.SNormNames(), "algebraic_sum")
	assert.NotContains(t, fuzzy.TNormNames(), "min")
}
