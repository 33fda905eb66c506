package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/logging"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/runtime"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/memory"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// Runner executes batches of runs sequentially.
type Runner struct {
	// Store is where results are persisted.
	// If nil, results are kept in memory only.
	Store ports.ResultStore

	// Logger receives the operator-facing progress lines.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Recorder, if set, observes every outcome.
	Recorder ports.RunRecorder

	// Source resolves labels to configurations. If nil, a config.DirSource
	// rooted at the configRoot given to RunBatch is used.
	Source ports.ConfigSource

	// Executor runs one configuration.
	Executor ports.Executor

	// SkipExisting reuses stored results instead of re-running their labels.
	SkipExisting bool
}

// NewRunner creates a Runner that executes runs with integrator.
func NewRunner(integrator ports.Integrator, opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.Store == nil {
		r.Store = memory.NewStore()
	}
	if r.Executor == nil {
		r.Executor = runtime.NewExecutor(integrator, runtime.WithLogger(r.Logger))
	}
	return r
}

// RunBatch runs every label in order and persists each result as it completes.
//
// The returned batch holds the results that are now in the store; the report
// records one outcome per label. A failing run never stops the batch. The
// returned error is non-nil only when labels contains a duplicate or an empty
// label (nothing runs) or when ctx is canceled (the runs completed so far are returned with it).
func (r *Runner) RunBatch(ctx context.Context, configRoot string, labels []string) (*domain.Batch, *domain.Report, error) {
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if label == "" {
			return nil, nil, fmt.Errorf("%w: empty run label", domain.ErrConfigValidation)
		}
		if seen[label] {
			return nil, nil, fmt.Errorf("%w: %q", domain.ErrDuplicateRun, label)
		}
		seen[label] = true
	}

	source := r.Source
	if source == nil {
		source = config.NewDirSource(configRoot)
	}

	batch := domain.NewBatch()
	report := &domain.Report{}

	for i, label := range labels {
		if err := ctx.Err(); err != nil {
			r.Logger.Warn("batch interrupted", "completed", i, "remaining", len(labels)-i)
			return batch, report, fmt.Errorf("batch interrupted before run %q: %w", label, err)
		}

		if r.SkipExisting {
			if result, ok := r.existing(ctx, label); ok {
				if err := batch.Add(label, result); err != nil {
					r.fail(report, label, 0, err)
					continue
				}
				report.Skipped(label, r.location(label))
				r.observe(report)
				r.Logger.Info("skipping simulation, result exists", "run", label, "location", r.location(label))
				continue
			}
		}

		r.Logger.Info("running simulation", "run", label)
		start := time.Now()

		result, err := r.runOne(ctx, source, label)
		elapsed := time.Since(start)
		if err != nil {
			report.Failed(label, elapsed, err)
			r.observe(report)
			if ctxErr := ctx.Err(); ctxErr != nil {
				r.Logger.Warn("batch interrupted", "run", label, "error", err)
				return batch, report, fmt.Errorf("batch interrupted during run %q: %w", label, ctxErr)
			}
			r.Logger.Error("simulation failed", "run", label, "kind", string(domain.KindOf(err)), "error", err)
			continue
		}

		if err := batch.Add(label, result); err != nil {
			r.fail(report, label, elapsed, err)
			continue
		}
		report.Succeeded(label, elapsed, r.location(label))
		r.observe(report)
		r.Logger.Info("calculation time", "run", label, "seconds", elapsed.Seconds(), "location", r.location(label))
	}

	return batch, report, nil
}

func (r *Runner) fail(report *domain.Report, label string, elapsed time.Duration, err error) {
	report.Failed(label, elapsed, err)
	r.observe(report)
	r.Logger.Error("simulation failed", "run", label, "kind", string(domain.KindOf(err)), "error", err)
}

func (r *Runner) runOne(ctx context.Context, source ports.ConfigSource, label string) (*domain.RunResult, error) {
	run, err := source.Load(ctx, label)
	if err != nil {
		return nil, err
	}
	run.Label = label

	result, err := r.Executor.Execute(ctx, run)
	if err != nil {
		return nil, err
	}

	if err := r.Store.Save(ctx, label, result); err != nil {
		if !errors.Is(err, domain.ErrArtifactIO) {
			err = fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
		}
		return nil, err
	}
	return result, nil
}

func (r *Runner) existing(ctx context.Context, label string) (*domain.RunResult, bool) {
	result, err := r.Store.Load(ctx, label)
	if err != nil {
		if !errors.Is(err, domain.ErrRunNotFound) {
			r.Logger.Warn("stored result unreadable, running again", "run", label, "error", err)
		}
		return nil, false
	}
	return result, true
}

func (r *Runner) location(label string) string {
	if l, ok := r.Store.(ports.Locator); ok {
		return l.Location(label)
	}
	return ""
}

func (r *Runner) observe(report *domain.Report) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObserveRun(report.Outcomes[len(report.Outcomes)-1])
}
