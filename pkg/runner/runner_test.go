package runner_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/file"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/memory"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/artifact"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	outcomes []domain.RunOutcome
}

func (r *recorder) ObserveRun(o domain.RunOutcome) {
	r.outcomes = append(r.outcomes, o)
}

type failingStore struct {
	*memory.Store
}

func (failingStore) Save(ctx context.Context, label string, result *domain.RunResult) error {
	return errors.New("disk full")
}

func TestRunBatch_PersistsEveryRun(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	labels := []string{"default", "run01", "run02"}
	for _, l := range labels {
		testutils.WriteRunConfig(t, root, l)
	}

	calls := 0
	r := runner.NewRunner(testutils.StubIntegrator(50, &calls), runner.WithStore(file.New(out)))

	batch, report, err := r.RunBatch(context.Background(), root, labels)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 3, calls)
	assert.Equal(t, labels, batch.Labels())

	for _, l := range labels {
		loaded, err := artifact.ReadFile(filepath.Join(out, l+".json"))
		require.NoError(t, err, l)
		assert.Equal(t, l, loaded.Label())

		o, ok := report.Outcome(l)
		require.True(t, ok)
		assert.Equal(t, domain.StatusSucceeded, o.Status)
		assert.Equal(t, filepath.Join(out, l+".json"), o.Location)
	}
}

func TestRunBatch_Scenario_DefaultRoundTrip(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	store := file.New(t.TempDir())

	r := runner.NewRunner(testutils.StubIntegrator(10, nil), runner.WithStore(store))
	_, report, err := r.RunBatch(context.Background(), root, []string{"default"})
	require.NoError(t, err)
	require.True(t, report.OK())

	loaded, err := store.Load(context.Background(), "default")
	require.NoError(t, err)
	label, _ := loaded.Attribute(domain.KeyRunLabel)
	start, _ := loaded.Attribute("start_pressure")
	step, _ := loaded.Attribute("pressure_step")
	assert.Equal(t, "default", label)
	assert.Equal(t, "100000.0", start)
	assert.Equal(t, "10.0", step)
}

func TestRunBatch_Scenario_MissingConfigIsIsolated(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	testutils.WriteRunConfig(t, root, "run02")

	rec := &recorder{}
	r := runner.NewRunner(testutils.StubIntegrator(5, nil),
		runner.WithStore(file.New(out)),
		runner.WithRecorder(rec),
	)

	batch, report, err := r.RunBatch(context.Background(), root, []string{"default", "run01", "run02"})
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "run02"}, batch.Labels())

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "run01", failures[0].Label)
	assert.Equal(t, domain.KindConfigLoad, failures[0].Kind)

	assert.FileExists(t, filepath.Join(out, "default.json"))
	assert.NoFileExists(t, filepath.Join(out, "run01.json"))
	assert.FileExists(t, filepath.Join(out, "run02.json"))

	require.Len(t, rec.outcomes, 3)
	assert.Equal(t, domain.StatusFailed, rec.outcomes[1].Status)
}

func TestRunBatch_InvalidConfigIsIsolated(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	testutils.WriteRunConfigWith(t, root, "run01", "base_humidity_fraction", "1.7")

	r := runner.NewRunner(testutils.StubIntegrator(5, nil))
	batch, report, err := r.RunBatch(context.Background(), root, []string{"default", "run01"})
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, batch.Labels())

	o, _ := report.Outcome("run01")
	assert.Equal(t, domain.KindConfigValidation, o.Kind)
}

func TestRunBatch_IntegratorFailureIsIsolated(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	testutils.WriteRunConfig(t, root, "run01")

	calls := 0
	stub := testutils.StubIntegrator(3, nil)
	integ := ports.IntegratorFunc(func(ctx context.Context, c config.PhysicalConstants, p config.SimulationParameters) (domain.IntegratorOutput, error) {
		calls++
		if p.ProjectName == "default" {
			return domain.IntegratorOutput{}, errors.New("negative buoyancy at base")
		}
		return stub(ctx, c, p)
	})

	batch, report, err := runner.NewRunner(integ).RunBatch(context.Background(), root, []string{"default", "run01"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "failures are not retried")
	assert.Equal(t, []string{"run01"}, batch.Labels())

	o, _ := report.Outcome("default")
	assert.Equal(t, domain.KindIntegratorFailure, o.Kind)
}

func TestRunBatch_StoreFailureIsIsolated(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")

	r := runner.NewRunner(testutils.StubIntegrator(3, nil), runner.WithStore(failingStore{memory.NewStore()}))
	batch, report, err := r.RunBatch(context.Background(), root, []string{"default"})
	require.NoError(t, err)
	assert.Zero(t, batch.Len())

	o, _ := report.Outcome("default")
	assert.Equal(t, domain.KindArtifactIO, o.Kind)
}

func TestRunBatch_DuplicateLabels(t *testing.T) {
	calls := 0
	r := runner.NewRunner(testutils.StubIntegrator(3, &calls))

	_, _, err := r.RunBatch(context.Background(), t.TempDir(), []string{"default", "run01", "default"})
	assert.ErrorIs(t, err, domain.ErrDuplicateRun)
	assert.Zero(t, calls)
}

func TestRunBatch_EmptyLabel(t *testing.T) {
	calls := 0
	r := runner.NewRunner(testutils.StubIntegrator(3, &calls))

	batch, report, err := r.RunBatch(context.Background(), t.TempDir(), []string{"default", ""})
	assert.ErrorIs(t, err, domain.ErrConfigValidation)
	assert.Equal(t, domain.KindConfigValidation, domain.KindOf(err))
	assert.Nil(t, batch)
	assert.Nil(t, report)
	assert.Zero(t, calls)
}

func TestRunBatch_Overwrites(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")

	r := runner.NewRunner(testutils.StubIntegrator(3, nil), runner.WithStore(file.New(out)))
	_, _, err := r.RunBatch(context.Background(), root, []string{"default"})
	require.NoError(t, err)

	r = runner.NewRunner(testutils.StubIntegrator(7, nil), runner.WithStore(file.New(out)))
	_, _, err = r.RunBatch(context.Background(), root, []string{"default"})
	require.NoError(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	loaded, err := artifact.ReadFile(filepath.Join(out, "default.json"))
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Len())
}

func TestRunBatch_SkipExisting(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	testutils.WriteRunConfig(t, root, "run01")

	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), "default", testutils.NewResult(t, "default", 4)))

	calls := 0
	r := runner.NewRunner(testutils.StubIntegrator(3, &calls),
		runner.WithStore(store),
		runner.WithSkipExisting(true),
	)
	batch, report, err := r.RunBatch(context.Background(), root, []string{"default", "run01"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, batch.Len())

	o, _ := report.Outcome("default")
	assert.Equal(t, domain.StatusSkipped, o.Status)
	assert.Equal(t, "memory://default", o.Location)
}

func TestRunBatch_Canceled(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	testutils.WriteRunConfig(t, root, "run01")

	ctx, cancel := context.WithCancel(context.Background())
	stub := testutils.StubIntegrator(3, nil)
	calls := 0
	integ := ports.IntegratorFunc(func(ctx context.Context, c config.PhysicalConstants, p config.SimulationParameters) (domain.IntegratorOutput, error) {
		calls++
		cancel()
		return stub(ctx, c, p)
	})

	batch, report, err := runner.NewRunner(integ).RunBatch(ctx, root, []string{"default", "run01"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no run starts after cancellation")
	assert.Equal(t, 1, batch.Len())
	assert.Len(t, report.Outcomes, 1)
}

func TestRunBatch_Source(t *testing.T) {
	run, err := config.LoadRun(testutils.WriteRunConfig(t, t.TempDir(), "anything"))
	require.NoError(t, err)
	source, err := memory.NewSource(map[string]config.Run{"alpha": run})
	require.NoError(t, err)

	r := runner.NewRunner(testutils.StubIntegrator(3, nil), runner.WithSource(source))
	batch, report, err := r.RunBatch(context.Background(), "", []string{"alpha"})
	require.NoError(t, err)
	require.True(t, report.OK())

	result, ok := batch.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", result.Label())
}

func TestRunBatch_LogsProgress(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := runner.NewRunner(testutils.StubIntegrator(3, nil), runner.WithLogger(logger))
	_, _, err := r.RunBatch(context.Background(), root, []string{"default", "missing"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="running simulation" run=default`)
	assert.Contains(t, out, `msg="calculation time" run=default seconds=`)
	assert.Contains(t, out, `msg="simulation failed" run=missing kind=ConfigLoadError`)
}

func TestRunBatch_Empty(t *testing.T) {
	batch, report, err := runner.NewRunner(testutils.StubIntegrator(3, nil)).RunBatch(context.Background(), t.TempDir(), nil)
	require.NoError(t, err)
	assert.Zero(t, batch.Len())
	assert.True(t, report.OK())
}
