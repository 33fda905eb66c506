package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/logging"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// Executor runs a single configuration through the integrator and stamps the
// output with the run's provenance. It performs no I/O of its own.
type Executor struct {
	integrator ports.Integrator
	logger     *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor around integrator.
func NewExecutor(integrator ports.Integrator, opts ...ExecutorOption) *Executor {
	e := &Executor{
		integrator: integrator,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute calls the integrator exactly once; failures are never retried.
// The result carries run_label plus every constant and parameter as attributes.
func (e *Executor) Execute(ctx context.Context, run config.Run) (*domain.RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	attrs, err := Provenance(run)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("integrating", "run", run.RunLabel(), "start_pressure", run.Parameters.StartPressure, "pressure_step", run.Parameters.PressureStep)
	out, err := e.integrator.Integrate(ctx, run.Constants, run.Parameters)
	if err != nil {
		// The caller's cancellation is not the integrator's fault.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("run %q interrupted: %w", run.RunLabel(), ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrIntegratorFailure, err)
	}

	result, err := domain.NewRunResult(out.Pressure, out.Profiles, attrs)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid output: %w", domain.ErrIntegratorFailure, err)
	}
	e.logger.Debug("integrated", "run", run.RunLabel(), "levels", result.Len(), "fields", result.FieldNames())
	return result, nil
}

// Provenance merges the run label, the constants and the parameters into one
// attribute map. A key declared by more than one source is rejected.
func Provenance(run config.Run) (map[string]string, error) {
	return mergeProvenance([]provenanceSource{
		{"run", map[string]string{domain.KeyRunLabel: run.RunLabel()}},
		{config.SectionConstants, run.Constants.Provenance()},
		{config.SectionParameters, run.Parameters.Provenance()},
	})
}

type provenanceSource struct {
	name  string
	attrs map[string]string
}

func mergeProvenance(sources []provenanceSource) (map[string]string, error) {
	merged := make(map[string]string)
	owner := make(map[string]string)
	var collisions []string
	for _, src := range sources {
		for key, value := range src.attrs {
			if prev, taken := owner[key]; taken {
				collisions = append(collisions, fmt.Sprintf("%s (%s, %s)", key, prev, src.name))
				continue
			}
			owner[key] = src.name
			merged[key] = value
		}
	}
	if len(collisions) > 0 {
		sort.Strings(collisions)
		return nil, fmt.Errorf("%w: %w: %v", domain.ErrConfigValidation, domain.ErrProvenanceCollision, collisions)
	}
	return merged, nil
}
