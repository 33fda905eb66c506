package runner

import (
	"log/slog"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures where results are persisted.
func WithStore(store ports.ResultStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithRecorder configures a recorder notified of every run outcome.
func WithRecorder(recorder ports.RunRecorder) Option {
	return func(r *Runner) {
		r.Recorder = recorder
	}
}

// WithSource overrides how run labels resolve to configurations.
// By default labels are sub-directories of the config root passed to RunBatch.
func WithSource(source ports.ConfigSource) Option {
	return func(r *Runner) {
		r.Source = source
	}
}

// WithExecutor replaces the executor built around the integrator.
func WithExecutor(executor ports.Executor) Option {
	return func(r *Runner) {
		r.Executor = executor
	}
}

// WithSkipExisting makes the runner reuse results already in the store instead
// of executing their labels again, so an interrupted batch can be resumed.
func WithSkipExisting(skip bool) Option {
	return func(r *Runner) {
		r.SkipExisting = skip
	}
}
