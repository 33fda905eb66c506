package plume_test

import (
	"context"
	"path/filepath"
	"testing"

	plume "github.com/dennissergeev/exo-lightning-msci-project"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/file"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperiment_RunDrawsSuccessfulRuns(t *testing.T) {
	root := t.TempDir()
	configRoot := filepath.Join(root, "config")
	testutils.WriteRunConfig(t, configRoot, "default")
	testutils.WriteRunConfig(t, configRoot, "run01")
	testutils.WriteRunConfigWith(t, configRoot, "run02", "start_pressure", "-5.0")

	exp := plume.New(testutils.StubIntegrator(50, nil),
		plume.WithConfigRoot(configRoot),
		plume.WithStore(file.New(filepath.Join(root, "output"))),
		plume.WithFigureDir(filepath.Join(root, "figures")),
	)

	res, err := exp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"default", "run01"}, res.Batch.Labels())
	require.Len(t, res.Report.Failures(), 1)
	assert.Equal(t, "run02", res.Report.Failures()[0].Label)
	assert.Equal(t, domain.KindConfigValidation, res.Report.Failures()[0].Kind)

	require.NotNil(t, res.Figure)
	assert.Equal(t, filepath.Join(root, "figures", "default_comparison.png"), res.Figure.Path)
	assert.Equal(t, []string{"default", "run01"}, res.Figure.LegendEntries)
	assert.FileExists(t, res.Figure.Path)
}

func TestExperiment_NoSuccessfulRunSkipsFigure(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")

	exp := plume.New(testutils.FailingIntegrator(),
		plume.WithConfigRoot(root),
		plume.WithFigureDir(filepath.Join(root, "figures")),
	)
	res, err := exp.Run(context.Background(), "default")
	require.NoError(t, err)
	assert.Nil(t, res.Figure)
	assert.False(t, res.Report.OK())
	assert.NoFileExists(t, filepath.Join(root, "figures", "default_comparison.png"))
}

func TestExperiment_SkipExistingReusesStore(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	store := file.New(filepath.Join(root, "output"))

	calls := 0
	opts := []plume.Option{
		plume.WithConfigRoot(root),
		plume.WithStore(store),
		plume.WithFigureDir(filepath.Join(root, "figures")),
		plume.WithSkipExisting(true),
	}
	_, err := plume.New(testutils.StubIntegrator(10, &calls), opts...).Run(context.Background(), "default")
	require.NoError(t, err)
	res, err := plume.New(testutils.StubIntegrator(10, &calls), opts...).Run(context.Background(), "default")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	outcome, ok := res.Report.Outcome("default")
	require.True(t, ok)
	assert.Equal(t, domain.StatusSkipped, outcome.Status)
}
