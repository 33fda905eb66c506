package plume

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/logging"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/compare"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/figure"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/runner"
)

// Version is the release of the module. Overridden at link time with -ldflags "-X".
var Version = "0.1.0-dev"

// DefaultLabels is the batch the experiment runs when none is given.
var DefaultLabels = []string{"default", "run01", "run02"}

// Experiment runs a batch of configurations and compares the results in one figure.
type Experiment struct {
	ConfigRoot string
	FigureDir  string
	Fields     []figure.FieldSpec

	Runner    *runner.Runner
	Assembler *compare.Assembler
	Plotter   *figure.Plotter

	logger *slog.Logger
}

// Option configures an Experiment.
type Option func(*config)

type config struct {
	configRoot   string
	figureDir    string
	fields       []figure.FieldSpec
	logger       *slog.Logger
	store        ports.ResultStore
	recorder     ports.RunRecorder
	skipExisting bool
	plotterOpts  []figure.Option
}

// WithConfigRoot sets the directory holding one sub-directory per run label.
func WithConfigRoot(dir string) Option {
	return func(c *config) { c.configRoot = dir }
}

// WithFigureDir sets where comparison images are written.
func WithFigureDir(dir string) Option {
	return func(c *config) { c.figureDir = dir }
}

// WithFields replaces the default panels.
func WithFields(fields ...figure.FieldSpec) Option {
	return func(c *config) { c.fields = fields }
}

// WithLogger sets the logger shared by every stage.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithStore sets where run results are persisted.
func WithStore(store ports.ResultStore) Option {
	return func(c *config) { c.store = store }
}

// WithRecorder observes run outcomes of both the batch and the assembly.
func WithRecorder(recorder ports.RunRecorder) Option {
	return func(c *config) { c.recorder = recorder }
}

// WithSkipExisting reuses stored results instead of running their labels again.
func WithSkipExisting(skip bool) Option {
	return func(c *config) { c.skipExisting = skip }
}

// WithPlotterOptions forwards options to the figure plotter.
func WithPlotterOptions(opts ...figure.Option) Option {
	return func(c *config) { c.plotterOpts = append(c.plotterOpts, opts...) }
}

// New creates an Experiment that executes runs with integrator.
func New(integrator ports.Integrator, opts ...Option) *Experiment {
	c := &config{configRoot: "config", figureDir: "figures"}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.fields == nil {
		c.fields = figure.DefaultFields()
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(c.logger),
		runner.WithSkipExisting(c.skipExisting),
	}
	assemblerOpts := []compare.Option{compare.WithLogger(c.logger)}
	if c.store != nil {
		runnerOpts = append(runnerOpts, runner.WithStore(c.store))
	}
	if c.recorder != nil {
		runnerOpts = append(runnerOpts, runner.WithRecorder(c.recorder))
		assemblerOpts = append(assemblerOpts, compare.WithRecorder(c.recorder))
	}

	return &Experiment{
		ConfigRoot: c.configRoot,
		FigureDir:  c.figureDir,
		Fields:     c.fields,
		Runner:     runner.NewRunner(integrator, runnerOpts...),
		Assembler:  compare.NewAssembler(assemblerOpts...),
		Plotter:    figure.New(append([]figure.Option{figure.WithLogger(c.logger)}, c.plotterOpts...)...),
		logger:     c.logger,
	}
}

// Result is what Run produced.
type Result struct {
	Batch   *domain.Batch
	Report  *domain.Report
	Dataset *compare.Dataset

	// Figure is nil when no run succeeded.
	Figure *figure.Figure
}

// Run executes labels in order and draws every successful run into one figure
// named after the first label. Failed runs are reported and left out of the figure.
func (e *Experiment) Run(ctx context.Context, labels ...string) (*Result, error) {
	if len(labels) == 0 {
		labels = DefaultLabels
	}

	batch, report, err := e.Runner.RunBatch(ctx, e.ConfigRoot, labels)
	res := &Result{Batch: batch, Report: report}
	if err != nil {
		return res, err
	}
	if batch.Len() == 0 {
		e.logger.Warn("no run succeeded, skipping comparison")
		return res, nil
	}

	res.Dataset = e.Assembler.FromBatch(batch)
	fig, err := e.Plot(res.Dataset, labels[0])
	res.Figure = fig
	return res, err
}

// Plot renders ds into <FigureDir>/<name>_comparison.png. The vertical axis is
// taken from the provenance of the first run in ds.
func (e *Experiment) Plot(ds *compare.Dataset, name string) (*figure.Figure, error) {
	labels := ds.Labels()
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", domain.ErrRender)
	}
	first, _ := ds.Result(labels[0])
	axis, err := figure.AxisFromProvenance(first.Attributes())
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", labels[0], err)
	}

	path := filepath.Join(e.FigureDir, figure.FileName(name))
	fig, err := e.Plotter.Render(ds, e.Fields, axis, path)
	if err != nil {
		return nil, err
	}
	e.logger.Info("comparison figure written", "path", fig.Path, "runs", len(fig.LegendEntries))
	return fig, nil
}
