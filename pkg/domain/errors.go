package domain

import (
	"context"
	"errors"
)

// ErrConfigLoad is returned when a configuration source is unreadable, malformed,
// or missing a required field.
var ErrConfigLoad = errors.New("config load error")

// ErrConfigValidation is returned when a configuration value is outside its
// physically valid domain.
var ErrConfigValidation = errors.New("config validation error")

// ErrIntegratorFailure is returned when the integrator fails or returns an invalid result.
var ErrIntegratorFailure = errors.New("integrator failure")

// ErrArtifactIO is returned when a run artifact cannot be written or read.
var ErrArtifactIO = errors.New("artifact io error")

// ErrRunNotFound is returned when a run label cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// ErrFieldNotFound is returned when a requested field is absent from a run.
var ErrFieldNotFound = errors.New("field not found")

// ErrRender is returned when a comparison figure cannot be produced.
var ErrRender = errors.New("render error")

// ErrDuplicateRun is returned when a batch already holds a result for a label.
var ErrDuplicateRun = errors.New("duplicate run label")

// ErrProvenanceCollision is returned when two provenance sources declare the same key.
var ErrProvenanceCollision = errors.New("provenance key collision")

// ErrorKind is the operator-facing name of an error class.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindConfigLoad        ErrorKind = "ConfigLoadError"
	KindConfigValidation  ErrorKind = "ConfigValidationError"
	KindIntegratorFailure ErrorKind = "IntegratorFailure"
	KindArtifactIO        ErrorKind = "ArtifactIOError"
	KindFieldNotFound     ErrorKind = "FieldNotFoundError"
	KindRender            ErrorKind = "RenderError"
	KindCanceled          ErrorKind = "Canceled"
	KindUnknown           ErrorKind = "UnknownError"
)

// KindOf classifies err into one of the ErrorKind values.
// Validation wins over load so that a provenance collision (wrapped in both) is
// reported as a validation defect, and an integrator that hit its own deadline
// is an integrator failure rather than a cancellation.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrConfigValidation), errors.Is(err, ErrProvenanceCollision),
		errors.Is(err, ErrDuplicateRun):
		return KindConfigValidation
	case errors.Is(err, ErrConfigLoad):
		return KindConfigLoad
	case errors.Is(err, ErrIntegratorFailure):
		return KindIntegratorFailure
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrRender):
		return KindRender
	case errors.Is(err, ErrFieldNotFound):
		return KindFieldNotFound
	case errors.Is(err, ErrArtifactIO), errors.Is(err, ErrRunNotFound):
		return KindArtifactIO
	default:
		return KindUnknown
	}
}
