/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: chroma.go
Description: The RGB colour classifier. A Classifier owns one configured colour engine and
one numeric evaluation engine. SetColor replaces the channel snapshot and every accessor
reads labels derived from the latest snapshot only.
*/

package chroma

import (
	"errors"
	"fmt"

	"github.com/kleascm/akaylee-chroma/pkg/fuzzy"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedMode is returned for mode selectors other than 0 and 1.
var ErrUnsupportedMode = errors.New("chroma: unsupported mode")

// Classifier maps red, green and blue channel values to colour and luminosity labels.
// It is not safe for concurrent use: SetColor and the reads that follow it must be
// serialized by the caller.
type Classifier struct {
	mode      Mode
	engine    *fuzzy.Engine
	evaluator *fuzzy.Engine
	logger    *logrus.Logger
}

// New builds a classifier with a built-in rule base. Mode 0 selects triangular channel
// terms and mode 1 Gaussian ones; any other value fails with ErrUnsupportedMode.
func New(mode int) (*Classifier, error) {
	rb, err := ColorRuleBase(Mode(mode))
	if err != nil {
		return nil, err
	}
	engine, err := fuzzy.Configure(rb)
	if err != nil {
		return nil, fmt.Errorf("failed to configure %s rule base: %w", Mode(mode), err)
	}
	c, err := FromEngine(engine)
	if err != nil {
		return nil, err
	}
	c.mode = Mode(mode)
	return c, nil
}

// FromEngine wraps an engine loaded from elsewhere, typically a rule-base document. The
// engine must declare the red, green and blue inputs in that order and the color and
// luminosity outputs.
func FromEngine(engine *fuzzy.Engine) (*Classifier, error) {
	if engine == nil {
		return nil, fmt.Errorf("chroma: nil engine")
	}
	inputs := engine.InputVariables()
	want := []string{InputRed, InputGreen, InputBlue}
	if len(inputs) != len(want) {
		return nil, fmt.Errorf("chroma: engine %q must have inputs %v", engine.Name(), want)
	}
	for i, v := range inputs {
		if v.Name != want[i] {
			return nil, fmt.Errorf("chroma: engine %q input %d is %q, want %q", engine.Name(), i, v.Name, want[i])
		}
	}
	for _, out := range []string{OutputColor, OutputLuminosity} {
		if _, err := engine.Label(out); err != nil {
			return nil, fmt.Errorf("chroma: engine %q: %w", engine.Name(), err)
		}
	}

	evaluator, err := fuzzy.Configure(EvaluationRuleBase())
	if err != nil {
		return nil, fmt.Errorf("failed to configure evaluation rule base: %w", err)
	}

	c := &Classifier{
		mode:      -1,
		engine:    engine,
		evaluator: evaluator,
		logger:    logrus.New(),
	}
	return c, nil
}

// SetLogger sets the logger used by the classifier and both of its engines.
func (c *Classifier) SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	c.logger = logger
	c.engine.SetLogger(logger)
	c.evaluator.SetLogger(logger)
}

// Mode returns the built-in mode, or -1 for a classifier built with FromEngine.
func (c *Classifier) Mode() Mode { return c.mode }

// Engine exposes the colour engine for inspection (activations, export).
func (c *Classifier) Engine() *fuzzy.Engine { return c.engine }

// Evaluator exposes the numeric evaluation engine.
func (c *Classifier) Evaluator() *fuzzy.Engine { return c.evaluator }

// SetColor replaces the channel snapshot. Values outside [0, 15] are clamped.
func (c *Classifier) SetColor(red, green, blue float64) error {
	if err := c.engine.SetInputs(red, green, blue); err != nil {
		return err
	}
	c.logger.WithFields(logrus.Fields{
		"engine_id":  c.engine.ID(),
		"red":        red,
		"green":      green,
		"blue":       blue,
		"color":      c.ColorLabel(),
		"luminosity": c.LuminosityLabel(),
	}).Debug("Color classified")
	return nil
}

// Channels returns the clamped red, green and blue values of the snapshot.
func (c *Classifier) Channels() (red, green, blue float64) {
	in := c.engine.Inputs()
	return in[0], in[1], in[2]
}

// Color returns the winning colour term with its activation degree.
func (c *Classifier) Color() fuzzy.Label {
	l, _ := c.engine.Label(OutputColor)
	return l
}

// Luminosity returns the winning luminosity term with its activation degree.
func (c *Classifier) Luminosity() fuzzy.Label {
	l, _ := c.engine.Label(OutputLuminosity)
	return l
}

// ColorLabel is the colour name for the current snapshot, empty when no rule fired.
func (c *Classifier) ColorLabel() string { return c.Color().Term }

// LuminosityLabel is the luminosity name for the current snapshot, empty when no rule fired.
func (c *Classifier) LuminosityLabel() string { return c.Luminosity().Term }

// LedCode is the numeric position of the colour on the 12-bit 0xRGB scale (0..4095).
func (c *Classifier) LedCode() float64 {
	v, _ := c.engine.Value(OutputColor)
	return v
}

// Brightness is the defuzzified luminosity on a 0..100 scale.
func (c *Classifier) Brightness() float64 {
	v, _ := c.engine.Value(OutputLuminosity)
	return v
}

// Evaluate runs the two-input numeric rule base. It does not read or change the colour
// snapshot. When no rule fires the midpoint of the result domain is returned.
func (c *Classifier) Evaluate(x, y float64) (float64, error) {
	res, err := c.evaluator.Evaluate(x, y)
	if err != nil {
		return 0, err
	}
	v := res.Values[OutputResult]
	c.logger.WithFields(logrus.Fields{
		"engine_id": c.evaluator.ID(),
		"x":         x,
		"y":         y,
		"result":    v,
	}).Debug("Evaluated")
	return v, nil
}

// Hex renders the snapshot as a #RRGGBB swatch colour, scaling each 4-bit channel to 8 bits.
func (c *Classifier) Hex() string {
	r, g, b := c.Channels()
	return fmt.Sprintf("#%02X%02X%02X", to8bit(r), to8bit(g), to8bit(b))
}

func to8bit(v float64) uint8 {
	return uint8(v/ChannelMax*255 + 0.5)
}
