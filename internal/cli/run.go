package cli

import (
	"context"
	"fmt"

	plume "github.com/dennissergeev/exo-lightning-msci-project"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/presentation/tui"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/observability"
)

// RunOptions configures the run command.
type RunOptions struct {
	// Labels to run, in order. Empty means Settings.Runs.
	Labels []string

	// Resume skips labels whose artifact already exists in the store.
	Resume bool

	// MetricsFile, if set, receives the batch metrics in the Prometheus text format.
	MetricsFile string

	// Compare draws the successful runs into one figure after the batch.
	Compare bool
}

// Run executes a batch, prints its report and, optionally, the comparison figure.
// It returns ErrRunsFailed when at least one run failed.
func (a *App) Run(ctx context.Context, opts RunOptions) (*plume.Result, error) {
	labels := opts.Labels
	if len(labels) == 0 {
		labels = a.Settings.Runs
	}

	integrator, err := a.LoadIntegrator()
	if err != nil {
		return nil, err
	}
	store, closeStore, err := a.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	expOpts := []plume.Option{
		plume.WithConfigRoot(a.Settings.ConfigRoot),
		plume.WithFigureDir(a.Settings.FigureDir),
		plume.WithStore(store),
		plume.WithLogger(a.Logger),
		plume.WithSkipExisting(opts.Resume),
	}
	var metrics *observability.Metrics
	if opts.MetricsFile != "" {
		metrics = observability.NewMetrics(false)
		expOpts = append(expOpts, plume.WithRecorder(metrics))
	}
	exp := plume.New(integrator, expOpts...)

	var res *plume.Result
	if opts.Compare {
		res, err = exp.Run(ctx, labels...)
	} else {
		res = &plume.Result{}
		res.Batch, res.Report, err = exp.Runner.RunBatch(ctx, exp.ConfigRoot, labels)
	}

	if res != nil && res.Report != nil {
		if perr := a.print(tui.ReportMarkdown("Batch", res.Report)); perr != nil {
			a.Logger.Warn("failed to print report", "error", perr)
		}
		tui.PrintSummary(a.Out, res.Report)
		if res.Figure != nil {
			printSystemMessage(a.Out, "Comparison written to %s", res.Figure.Path)
		}
	}
	if metrics != nil {
		if merr := metrics.WriteTextfile(opts.MetricsFile); merr != nil {
			a.Logger.Error("metrics not written", "path", opts.MetricsFile, "error", merr)
		}
	}
	if err != nil {
		return res, err
	}
	return res, failures(res.Report)
}

func failures(report *domain.Report) error {
	if report == nil || report.OK() {
		return nil
	}
	failed := report.Failures()
	return fmt.Errorf("%w: %d of %d (first: %s, %s)", ErrRunsFailed,
		len(failed), len(report.Outcomes), failed[0].Label, failed[0].Kind)
}
