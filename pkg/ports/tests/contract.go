package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
)

// ConfigSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.ConfigSource.
// known must list labels the source can resolve to valid configurations.
func ConfigSourceContractTest(t *testing.T, source ports.ConfigSource, known []string) {
	t.Helper()
	ctx := context.Background()

	// 1. Load (Success)
	t.Run("Load_Success", func(t *testing.T) {
		for _, label := range known {
			run, err := source.Load(ctx, label)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", label, err)
			}
			if run.Label != label {
				t.Errorf("label mismatch: got %q, want %q", run.Label, label)
			}
			if err := run.Constants.Validate(); err != nil {
				t.Errorf("constants of %s do not validate: %v", label, err)
			}
			if err := run.Parameters.Validate(); err != nil {
				t.Errorf("parameters of %s do not validate: %v", label, err)
			}
		}
	})

	// 2. Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := source.Load(ctx, "non-existent-run")
		if !errors.Is(err, domain.ErrConfigLoad) {
			t.Errorf("expected ErrConfigLoad for unknown label, got %v", err)
		}
	})

	// 3. Load (Canceled)
	t.Run("Load_Canceled", func(t *testing.T) {
		if len(known) == 0 {
			t.Skip("no known labels")
		}
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := source.Load(canceled, known[0]); err == nil {
			t.Error("expected error for canceled context, got nil")
		}
	})
}
