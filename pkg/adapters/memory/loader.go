package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Source implements ports.ConfigSource using an in-memory map.
// Useful for tests and for embedding the orchestrator without configuration files.
type Source struct {
	runs map[string]config.Run
}

// NewSource creates a Source serving the given configurations by label.
// Every configuration is validated up front.
func NewSource(runs map[string]config.Run) (*Source, error) {
	copied := make(map[string]config.Run, len(runs))
	for label, run := range runs {
		if label == "" {
			return nil, fmt.Errorf("%w: run label cannot be empty", domain.ErrConfigLoad)
		}
		if err := run.Constants.Validate(); err != nil {
			return nil, fmt.Errorf("run %q: %w", label, err)
		}
		if err := run.Parameters.Validate(); err != nil {
			return nil, fmt.Errorf("run %q: %w", label, err)
		}
		copied[label] = run
	}
	return &Source{runs: copied}, nil
}

// Load returns the configuration registered under label.
func (s *Source) Load(ctx context.Context, label string) (config.Run, error) {
	if err := ctx.Err(); err != nil {
		return config.Run{}, err
	}
	run, ok := s.runs[label]
	if !ok {
		return config.Run{}, fmt.Errorf("%w: no configuration for run %q", domain.ErrConfigLoad, label)
	}
	run.Label = label
	return run, nil
}

// Labels returns the registered labels in lexical order.
func (s *Source) Labels() []string {
	labels := make([]string, 0, len(s.runs))
	for label := range s.runs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
