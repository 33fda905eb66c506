package ports

import (
	"context"
	"math"
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore
// implementation adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()

	sample := func(t *testing.T, label string, scale float64) *domain.RunResult {
		t.Helper()
		r, err := domain.NewRunResult(
			[]float64{100000, 99990, 99980},
			map[string][]float64{
				domain.FieldPlumeTemp: {280 * scale, 279.99, 279.98},
				domain.FieldEnvTemp:   {279.5, 279.4, 279.3},
				domain.FieldFlashRate: {0, math.NaN(), math.Inf(1)},
			},
			map[string]string{
				domain.KeyRunLabel: label,
				"start_pressure":   "100000.0",
				"vacuum_perm":      "8.854e-12",
			},
		)
		require.NoError(t, err)
		return r
	}

	t.Run("Save and Load", func(t *testing.T) {
		original := sample(t, "default", 1)
		require.NoError(t, store.Save(ctx, "default", original), "Save should not return error")

		loaded, err := store.Load(ctx, "default")
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, original.FieldNames(), loaded.FieldNames())
		assert.Equal(t, original.Pressure(), loaded.Pressure())
		assert.Equal(t, original.Attributes(), loaded.Attributes())

		temp, err := loaded.Profile(domain.FieldPlumeTemp)
		require.NoError(t, err)
		assert.Equal(t, []float64{280, 279.99, 279.98}, temp)

		flash, err := loaded.Profile(domain.FieldFlashRate)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(flash[1]), "NaN should survive persistence")
		assert.True(t, math.IsInf(flash[2], 1), "+Inf should survive persistence")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "overwrite", sample(t, "overwrite", 1)))
		require.NoError(t, store.Save(ctx, "overwrite", sample(t, "overwrite", 2)))

		loaded, err := store.Load(ctx, "overwrite")
		require.NoError(t, err)
		temp, _ := loaded.Profile(domain.FieldPlumeTemp)
		assert.Equal(t, 560.0, temp[0])
		require.NoError(t, store.Delete(ctx, "overwrite"))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent")
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "doomed", sample(t, "doomed", 1)))
		require.NoError(t, store.Delete(ctx, "doomed"), "Delete should not return error")

		_, err := store.Load(ctx, "doomed")
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
		assert.NoError(t, store.Delete(ctx, "doomed"), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		_ = store.Save(ctx, "run01", sample(t, "run01", 1))
		_ = store.Save(ctx, "run02", sample(t, "run02", 1))
		defer func() {
			_ = store.Delete(ctx, "run01")
			_ = store.Delete(ctx, "run02")
		}()

		labels, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, labels, "run01")
		assert.Contains(t, labels, "run02")
	})
}
