package ports

import (
	"context"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// ConfigSource resolves a run label to its configuration.
// This allows the orchestrator to be decoupled from where configuration lives
// (a directory tree, an in-memory fixture).
type ConfigSource interface {
	// Load returns the validated configuration of label.
	// Errors wrap domain.ErrConfigLoad or domain.ErrConfigValidation.
	Load(ctx context.Context, label string) (config.Run, error)
}

// Executor turns one configuration into a stamped result.
type Executor interface {
	Execute(ctx context.Context, run config.Run) (*domain.RunResult, error)
}
