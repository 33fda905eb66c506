package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/cli"
	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "plume version")
}

func TestValidate_FlagsOverrideEnvironment(t *testing.T) {
	root := t.TempDir()
	testutils.WriteRunConfig(t, root, "default")
	t.Setenv("PLUME_CONFIG_ROOT", filepath.Join(root, "elsewhere"))

	out, err := execute(t, "validate", "--config-root", root, "default")
	require.NoError(t, err)
	assert.Contains(t, out, "| default | succeeded |")

	_, err = execute(t, "validate", "--config-root", root, "default", "missing")
	assert.ErrorIs(t, err, cli.ErrRunsFailed)
}

func TestInspect_RequiresLabel(t *testing.T) {
	_, err := execute(t, "inspect")
	assert.Error(t, err)
}
