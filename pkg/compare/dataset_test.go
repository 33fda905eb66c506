package compare_test

import (
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/compare"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDataset(t *testing.T, results map[string]*domain.RunResult, order ...string) *compare.Dataset {
	t.Helper()
	batch := domain.NewBatch()
	for _, label := range order {
		require.NoError(t, batch.Add(label, results[label]))
	}
	return compare.NewAssembler().FromBatch(batch)
}

func TestDataset_TempDiffIsPointwise(t *testing.T) {
	r := testutils.NewResult(t, "default", 50)
	ds := newDataset(t, map[string]*domain.RunResult{"default": r}, "default")

	pressure, diff, err := ds.Field("default", domain.FieldTempDiff)
	require.NoError(t, err)

	plume, _ := r.Profile(domain.FieldPlumeTemp)
	env, _ := r.Profile(domain.FieldEnvTemp)
	assert.Equal(t, r.Pressure(), pressure)
	require.Len(t, diff, 50)
	for i := range diff {
		assert.Equal(t, plume[i]-env[i], diff[i], "level %d", i)
	}

	// Derived fields are never written back into the result.
	assert.False(t, r.Has(domain.FieldTempDiff))
}

func TestDataset_StoredField(t *testing.T) {
	r := testutils.NewResult(t, "default", 5)
	ds := newDataset(t, map[string]*domain.RunResult{"default": r}, "default")

	_, velocity, err := ds.Field("default", domain.FieldVelocity)
	require.NoError(t, err)
	want, _ := r.Profile(domain.FieldVelocity)
	assert.Equal(t, want, velocity)
}

func TestDataset_MissingFields(t *testing.T) {
	bare, err := domain.NewRunResult([]float64{3, 2, 1}, map[string][]float64{
		domain.FieldPlumeTemp: {280, 279, 278},
	}, map[string]string{domain.KeyRunLabel: "bare"})
	require.NoError(t, err)
	full := testutils.NewResult(t, "full", 3)

	ds := newDataset(t, map[string]*domain.RunResult{"bare": bare, "full": full}, "bare", "full")

	_, _, err = ds.Field("bare", domain.FieldTempDiff)
	assert.ErrorIs(t, err, domain.ErrFieldNotFound, "missing base field")

	_, _, err = ds.Field("bare", "charge_density")
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)

	_, _, err = ds.Field("nobody", domain.FieldVelocity)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	assert.False(t, ds.Has("bare", domain.FieldTempDiff))
	assert.True(t, ds.Has("full", domain.FieldTempDiff))
	assert.True(t, ds.Provides(domain.FieldTempDiff), "one run is enough")
	assert.False(t, ds.Provides("charge_density"))
	assert.True(t, ds.Derived(domain.FieldTempDiff))
}

func TestDataset_CustomDerivation(t *testing.T) {
	double := compare.Derivation{
		Name:   "double_velocity",
		Inputs: []string{domain.FieldVelocity},
		Compute: func(in [][]float64) []float64 {
			out := make([]float64, len(in[0]))
			for i, v := range in[0] {
				out[i] = 2 * v
			}
			return out
		},
	}
	batch := domain.NewBatch()
	r := testutils.NewResult(t, "default", 4)
	require.NoError(t, batch.Add("default", r))

	ds := compare.NewDataset(batch, double)
	_, values, err := ds.Field("default", "double_velocity")
	require.NoError(t, err)
	v, _ := r.Profile(domain.FieldVelocity)
	assert.Equal(t, 2*v[3], values[3])
	assert.False(t, ds.Derived(domain.FieldTempDiff), "custom set replaces defaults")
}

func TestDataset_WithoutDerivations(t *testing.T) {
	batch := domain.NewBatch()
	r := testutils.NewResult(t, "default", 5)
	require.NoError(t, batch.Add("default", r))

	ds := compare.NewAssembler(compare.WithDerivations()).FromBatch(batch)
	assert.False(t, ds.Derived(domain.FieldTempDiff))
	_, _, err := ds.Field("default", domain.FieldTempDiff)
	assert.ErrorIs(t, err, domain.ErrFieldNotFound)

	_, _, err = ds.Field("default", domain.FieldPlumeTemp)
	assert.NoError(t, err)

	assert.True(t, compare.NewAssembler().FromBatch(batch).Derived(domain.FieldTempDiff))
}
