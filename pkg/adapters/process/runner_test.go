package process_test

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/dennissergeev/exo-lightning-msci-project/internal/testutils"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/adapters/process"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const response = `{"pressure": [100000, 99990, 99980],
 "profiles": {"velocity": [0.001, 0.5, 1.0], "flash_rate": [0, null, "+Inf"]}}`

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integrator fixtures are POSIX shell scripts")
	}
}

func loadRun(t *testing.T) config.Run {
	t.Helper()
	run, err := config.LoadRun(testutils.WriteRunConfig(t, t.TempDir(), "default"))
	require.NoError(t, err)
	return run
}

func TestIntegrator_Success(t *testing.T) {
	requireShell(t)
	run := loadRun(t)
	dir := t.TempDir()
	captured := filepath.Join(dir, "request.json")

	integ := process.New(process.Config{
		Command: "sh",
		Args:    []string{"-c", `cat > "$CAPTURE"; printf '%s' "$RESPONSE"`},
		Environment: map[string]string{
			"CAPTURE":  captured,
			"RESPONSE": response,
		},
	})

	out, err := integ.Integrate(context.Background(), run.Constants, run.Parameters)
	require.NoError(t, err)
	assert.Equal(t, []float64{100000, 99990, 99980}, out.Pressure)
	assert.Equal(t, []float64{0.001, 0.5, 1.0}, out.Profiles[domain.FieldVelocity])
	assert.True(t, math.IsNaN(out.Profiles[domain.FieldFlashRate][1]))
	assert.True(t, math.IsInf(out.Profiles[domain.FieldFlashRate][2], 1))

	// The request carries both records.
	data, err := os.ReadFile(captured)
	require.NoError(t, err)
	var req process.Request
	require.NoError(t, json.Unmarshal(data, &req))
	assert.Equal(t, run.Constants, req.Constants)
	assert.Equal(t, run.Parameters, req.Parameters)
}

func TestIntegrator_Failures(t *testing.T) {
	requireShell(t)
	run := loadRun(t)

	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{"non-zero exit", `echo "plume collapsed" >&2; exit 3`, "plume collapsed"},
		{"invalid output", `echo "not json"`, "invalid output"},
		{"missing executable", "", "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := process.Config{Command: "sh", Args: []string{"-c", tt.script}}
			if tt.script == "" {
				cfg = process.Config{Command: filepath.Join(t.TempDir(), "no-such-integrator")}
			}
			_, err := process.New(cfg).Integrate(context.Background(), run.Constants, run.Parameters)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIntegrator_Timeout(t *testing.T) {
	requireShell(t)
	run := loadRun(t)

	integ := process.New(process.Config{
		Command: "sh",
		Args:    []string{"-c", "sleep 10"},
		Timeout: 200 * time.Millisecond,
	}, process.WithGracePeriod(500*time.Millisecond))

	start := time.Now()
	_, err := integ.Integrate(context.Background(), run.Constants, run.Parameters)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutils.WriteFile(t, dir, process.DefaultConfigFile, `command: python3
args: [-m, plume_model]
env:
  OMP_NUM_THREADS: "1"
dir: model
timeout: 30s
`)

	cfg, err := process.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "python3", cfg.Command)
	assert.Equal(t, []string{"-m", "plume_model"}, cfg.Args)
	assert.Equal(t, "1", cfg.Environment["OMP_NUM_THREADS"])
	assert.Equal(t, filepath.Join(dir, "model"), cfg.Dir)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "integrator.json", `{"command": "/opt/plume/bin/integrate"}`)

	cfg, err := process.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/plume/bin/integrate", cfg.Command)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := process.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := testutils.WriteFile(t, t.TempDir(), process.DefaultConfigFile, "args: [x]\n")
	_, err = process.LoadConfig(path)
	assert.ErrorContains(t, err, "command is required")
}
