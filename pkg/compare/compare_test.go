package compare_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/file"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/memory"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/compare"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveAll(t *testing.T, store *file.Store, labels ...string) {
	t.Helper()
	for _, l := range labels {
		require.NoError(t, store.Save(context.Background(), l, testutils.NewResult(t, l, 50)))
	}
}

func TestAssembleFiles_ExcludesBrokenEntries(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	saveAll(t, store, "default", "run02")
	testutils.WriteFile(t, dir, "run03.json", "{corrupt")

	rec := &recorder{}
	ds, report := compare.NewAssembler(compare.WithRecorder(rec)).AssembleFiles(context.Background(), []compare.Location{
		{Label: "default", Path: store.Location("default")},
		{Label: "run01", Path: filepath.Join(dir, "run01.json")},
		{Label: "run02", Path: store.Location("run02")},
		{Label: "run03", Path: filepath.Join(dir, "run03.json")},
	})

	assert.Equal(t, []string{"default", "run02"}, ds.Labels())

	failures := report.Failures()
	require.Len(t, failures, 2)
	assert.Equal(t, "run01", failures[0].Label)
	assert.Equal(t, domain.KindArtifactIO, failures[0].Kind)
	assert.Equal(t, "run03", failures[1].Label)
	assert.Equal(t, domain.KindArtifactIO, failures[1].Kind)
	assert.Len(t, rec.outcomes, 4)
}

func TestAssembleFiles_DuplicateLabel(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	saveAll(t, store, "default")

	ds, report := compare.NewAssembler().AssembleFiles(context.Background(), []compare.Location{
		{Label: "default", Path: store.Location("default")},
		{Label: "default", Path: store.Location("default")},
	})

	assert.Equal(t, []string{"default"}, ds.Labels())
	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, domain.ErrDuplicateRun)
	assert.Equal(t, domain.KindConfigValidation, failures[0].Kind)
}

func TestAssemble_FromStore(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "default", testutils.NewResult(t, "default", 5)))

	ds, report := compare.NewAssembler().Assemble(ctx, store, []string{"default", "absent"})
	assert.Equal(t, []string{"default"}, ds.Labels())

	o, ok := report.Outcome("default")
	require.True(t, ok)
	assert.Equal(t, "memory://default", o.Location)

	o, _ = report.Outcome("absent")
	assert.Equal(t, domain.StatusFailed, o.Status)
	assert.ErrorIs(t, o.Err, domain.ErrRunNotFound)
}

func TestAssemble_Canceled(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds, report := compare.NewAssembler().Assemble(ctx, store, []string{"a", "b"})
	assert.Zero(t, ds.Len())
	require.Len(t, report.Failures(), 2)
	assert.Equal(t, domain.KindCanceled, report.Failures()[0].Kind)
}

func TestLocations_SortsByLabel(t *testing.T) {
	locs := compare.Locations(map[string]string{"run02": "b", "default": "a"})
	assert.Equal(t, []compare.Location{{Label: "default", Path: "a"}, {Label: "run02", Path: "b"}}, locs)
}

type recorder struct {
	outcomes []domain.RunOutcome
}

func (r *recorder) ObserveRun(o domain.RunOutcome) {
	r.outcomes = append(r.outcomes, o)
}
