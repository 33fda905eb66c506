package ports

import (
	"context"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// ResultReader loads persisted run results.
type ResultReader interface {
	// Load retrieves the result persisted under label.
	// Returns domain.ErrRunNotFound if the label has no artifact.
	Load(ctx context.Context, label string) (*domain.RunResult, error)

	// List returns the labels of every persisted run.
	List(ctx context.Context) ([]string, error)
}

// ResultStore persists run results keyed by run label.
// Saving under an existing label overwrites the previous artifact, so re-running
// a label is idempotent.
type ResultStore interface {
	ResultReader

	// Save persists the result under label.
	Save(ctx context.Context, label string, result *domain.RunResult) error

	// Delete removes the artifact for label. Deleting a missing label is not an error.
	Delete(ctx context.Context, label string) error
}

// Locator is implemented by stores that can name where an artifact lives
// (file path, redis key, database row).
type Locator interface {
	Location(label string) string
}

// AttributeFinder is implemented by stores that index provenance attributes.
type AttributeFinder interface {
	// FindByAttribute returns the labels whose provenance has key set to value.
	FindByAttribute(ctx context.Context, key, value string) ([]string, error)
}
