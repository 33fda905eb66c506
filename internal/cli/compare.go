package cli

import (
	"context"
	"fmt"
	"strings"

	plume "github.com/dennissergeev/exo-lightning-msci-project"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/presentation/tui"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/compare"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/figure"
)

// CompareOptions configures the compare command.
type CompareOptions struct {
	// Labels are loaded from the store. Empty means every stored run.
	Labels []string

	// Artifacts are label=path pairs read directly from disk instead of the store.
	Artifacts []string

	// Where, as key=value, selects stored runs by provenance when Labels is empty.
	Where string

	// Name of the figure. Empty means the first label.
	Name string
}

// ParseArtifacts turns label=path pairs into locations, keeping their order.
func ParseArtifacts(pairs []string) ([]compare.Location, error) {
	locations := make([]compare.Location, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		label, path, ok := strings.Cut(pair, "=")
		if !ok || label == "" || path == "" {
			return nil, fmt.Errorf("invalid artifact %q (want label=path)", pair)
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateRun, label)
		}
		seen[label] = true
		locations = append(locations, compare.Location{Label: label, Path: path})
	}
	return locations, nil
}

// Compare assembles stored or on-disk results and draws them into one figure.
// Entries that cannot be loaded are reported and left out; ErrRunsFailed is
// returned after the figure is written if any entry failed.
func (a *App) Compare(ctx context.Context, opts CompareOptions) (*figure.Figure, error) {
	assembler := compare.NewAssembler(compare.WithLogger(a.Logger))

	var (
		ds     *compare.Dataset
		report *domain.Report
		first  string
	)
	if len(opts.Artifacts) > 0 {
		locations, err := ParseArtifacts(opts.Artifacts)
		if err != nil {
			return nil, err
		}
		first = locations[0].Label
		ds, report = assembler.AssembleFiles(ctx, locations)
	} else {
		store, closeStore, err := a.OpenStore(ctx)
		if err != nil {
			return nil, err
		}
		defer closeStore()

		labels := opts.Labels
		if len(labels) == 0 && opts.Where != "" {
			key, value, err := compare.ParseWhere(opts.Where)
			if err != nil {
				return nil, err
			}
			if labels, err = compare.FindByAttribute(ctx, store, key, value); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
			}
		} else if len(labels) == 0 {
			if labels, err = store.List(ctx); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
			}
		}
		if len(labels) == 0 {
			return nil, fmt.Errorf("%w: no stored runs to compare", domain.ErrRunNotFound)
		}
		first = labels[0]
		ds, report = assembler.Assemble(ctx, store, labels)
	}

	if !report.OK() {
		if err := a.print(tui.ReportMarkdown("Comparison inputs", report)); err != nil {
			a.Logger.Warn("failed to print report", "error", err)
		}
		tui.PrintSummary(a.Out, report)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = first
	}
	exp := plume.New(nil,
		plume.WithFigureDir(a.Settings.FigureDir),
		plume.WithLogger(a.Logger),
	)
	fig, err := exp.Plot(ds, name)
	if err != nil {
		return nil, err
	}
	printSystemMessage(a.Out, "Comparison written to %s", fig.Path)
	return fig, failures(report)
}
