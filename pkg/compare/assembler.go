package compare

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/logging"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/artifact"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// Location points at the persisted artifact of one run.
type Location struct {
	Label string
	Path  string
}

// Locations turns a label to path mapping into Locations ordered by label.
func Locations(paths map[string]string) []Location {
	locs := make([]Location, 0, len(paths))
	for label, path := range paths {
		locs = append(locs, Location{Label: label, Path: path})
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i].Label < locs[j].Label })
	return locs
}

// Assembler loads runs into a Dataset.
type Assembler struct {
	logger      *slog.Logger
	recorder    ports.RunRecorder
	derivations []Derivation
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithRecorder sets a recorder notified of every load outcome.
func WithRecorder(recorder ports.RunRecorder) Option {
	return func(a *Assembler) {
		a.recorder = recorder
	}
}

// WithDerivations replaces DefaultDerivations. Called with no arguments it
// disables derived fields.
func WithDerivations(derivations ...Derivation) Option {
	return func(a *Assembler) {
		if derivations == nil {
			derivations = []Derivation{}
		}
		a.derivations = derivations
	}
}

// NewAssembler creates an Assembler.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		logger:      logging.NewNop(),
		derivations: DefaultDerivations(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssembleFiles reads each artifact file. Entries that cannot be read are
// reported and excluded; the rest are returned in the order given.
func (a *Assembler) AssembleFiles(ctx context.Context, locations []Location) (*Dataset, *domain.Report) {
	paths := make(map[string]string, len(locations))
	labels := make([]string, 0, len(locations))
	for _, loc := range locations {
		paths[loc.Label] = loc.Path
		labels = append(labels, loc.Label)
	}
	return a.assemble(ctx, labels, func(label string) (*domain.RunResult, string, error) {
		r, err := artifact.ReadFile(paths[label])
		return r, paths[label], err
	})
}

// Assemble loads labels from any result store.
func (a *Assembler) Assemble(ctx context.Context, store ports.ResultReader, labels []string) (*Dataset, *domain.Report) {
	return a.assemble(ctx, labels, func(label string) (*domain.RunResult, string, error) {
		location := ""
		if l, ok := store.(ports.Locator); ok {
			location = l.Location(label)
		}
		r, err := store.Load(ctx, label)
		return r, location, err
	})
}

// FromBatch wraps results that are already in memory.
func (a *Assembler) FromBatch(batch *domain.Batch) *Dataset {
	return NewDataset(batch, a.derivations...)
}

type loadFunc func(label string) (result *domain.RunResult, location string, err error)

func (a *Assembler) assemble(ctx context.Context, labels []string, load loadFunc) (*Dataset, *domain.Report) {
	batch := domain.NewBatch()
	report := &domain.Report{}

	for _, label := range labels {
		if err := ctx.Err(); err != nil {
			report.Failed(label, 0, err)
			a.observe(report)
			continue
		}

		start := time.Now()
		result, location, err := load(label)
		if err == nil {
			err = batch.Add(label, result)
		}
		if err != nil {
			report.Failed(label, time.Since(start), err)
			a.observe(report)
			a.logger.Error("run excluded from comparison", "run", label, "kind", string(domain.KindOf(err)), "error", err)
			continue
		}

		if stamped := result.Label(); stamped != "" && stamped != label {
			a.logger.Warn("artifact was stamped with another label", "run", label, "run_label", stamped)
		}
		report.Succeeded(label, time.Since(start), location)
		a.observe(report)
		a.logger.Debug("run loaded", "run", label, "levels", result.Len(), "location", location)
	}

	return NewDataset(batch, a.derivations...), report
}

func (a *Assembler) observe(report *domain.Report) {
	if a.recorder == nil {
		return
	}
	a.recorder.ObserveRun(report.Outcomes[len(report.Outcomes)-1])
}
