package ports

import "github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"

// RunRecorder observes run outcomes as they happen, e.g. to export metrics.
type RunRecorder interface {
	ObserveRun(outcome domain.RunOutcome)
}
