package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use. Results are immutable, so they are shared rather than copied.
type Store struct {
	data map[string]*domain.RunResult
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RunResult),
	}
}

// Save keeps the result in memory, replacing any previous one.
func (s *Store) Save(ctx context.Context, label string, result *domain.RunResult) error {
	if label == "" {
		return fmt.Errorf("%w: run label cannot be empty", domain.ErrArtifactIO)
	}
	if result == nil {
		return fmt.Errorf("%w: result cannot be nil", domain.ErrArtifactIO)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[label] = result
	return nil
}

// Load retrieves the result from memory.
func (s *Store) Load(ctx context.Context, label string) (*domain.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrRunNotFound, label)
	}
	return result, nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, label)
	return nil
}

// List returns the stored labels in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	labels := make([]string, 0, len(s.data))
	for label := range s.data {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// Location names the in-memory slot of label.
func (s *Store) Location(label string) string {
	return "memory://" + label
}
