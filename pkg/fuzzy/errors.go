/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error values for the fuzzy inference engine. Configuration problems are
reported at setup time as ConfigError, bad runtime inputs as InputError. Both unwrap
to a sentinel so callers can branch with errors.Is.
*/

package fuzzy

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the sentinel behind every ConfigError.
	ErrConfiguration = errors.New("fuzzy: invalid configuration")

	// ErrInput is the sentinel behind every InputError.
	ErrInput = errors.New("fuzzy: invalid input")
)

// ConfigError describes a rule base that cannot be turned into a working engine.
type ConfigError struct {
	Component string // "term", "variable", "rule", "engine", ...
	Name      string
	Reason    string
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("fuzzy: %s: %s", e.Component, e.Reason)
	}
	return fmt.Sprintf("fuzzy: %s %q: %s", e.Component, e.Name, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErrorf(component, name, format string, args ...interface{}) error {
	return &ConfigError{Component: component, Name: name, Reason: fmt.Sprintf(format, args...)}
}

// InputError is returned when a caller passes values the engine cannot evaluate.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return "fuzzy: input: " + e.Reason }

func (e *InputError) Unwrap() error { return ErrInput }

func inputErrorf(format string, args ...interface{}) error {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}
