package cli

import (
	"context"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/presentation/tui"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/runtime"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Validate loads every label's configuration and checks that its provenance
// can be built, without running the integrator.
func (a *App) Validate(ctx context.Context, labels []string) (*domain.Report, error) {
	if len(labels) == 0 {
		labels = a.Settings.Runs
	}
	source := config.NewDirSource(a.Settings.ConfigRoot)
	report := &domain.Report{}

	for _, label := range labels {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		run, err := source.Load(ctx, label)
		if err == nil {
			_, err = runtime.Provenance(run)
		}
		if err != nil {
			a.Logger.Debug("configuration rejected", "run", label, "error", err)
			report.Failed(label, 0, err)
			continue
		}
		report.Succeeded(label, 0, source.Dir(label))
	}

	if err := a.print(tui.ReportMarkdown("Validation", report)); err != nil {
		a.Logger.Warn("failed to print report", "error", err)
	}
	return report, failures(report)
}
