package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns the individual failures carried by err, if any.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

func aggregate(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrConfigValidation, &AggregateError{Errors: errs})
}

func finite(key string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Key: key, Reason: "must be finite", Value: v}
	}
	return nil
}

func positive(key string, v float64) error {
	if err := finite(key, v); err != nil {
		return err
	}
	if v <= 0 {
		return &ValidationError{Key: key, Reason: "must be positive", Value: v}
	}
	return nil
}

func nonNegative(key string, v float64) error {
	if err := finite(key, v); err != nil {
		return err
	}
	if v < 0 {
		return &ValidationError{Key: key, Reason: "cannot be negative", Value: v}
	}
	return nil
}

func within(key string, v, lo, hi float64) error {
	if err := finite(key, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return &ValidationError{Key: key, Reason: fmt.Sprintf("must be within [%g, %g]", lo, hi), Value: v}
	}
	return nil
}
