package testutils

import (
	"context"
	"fmt"
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/ports"
	"github.com/stretchr/testify/require"
)

// StubIntegrator returns a deterministic integrator that produces levels
// pressure levels starting at start_pressure and descending by pressure_step.
// It counts its invocations in *calls when calls is non-nil.
func StubIntegrator(levels int, calls *int) ports.IntegratorFunc {
	return func(ctx context.Context, c config.PhysicalConstants, p config.SimulationParameters) (domain.IntegratorOutput, error) {
		if calls != nil {
			*calls++
		}
		return Profiles(levels, p.StartPressure, p.PressureStep, p.PlumeBaseTemp), nil
	}
}

// FailingIntegrator always fails.
func FailingIntegrator() ports.IntegratorFunc {
	return func(ctx context.Context, c config.PhysicalConstants, p config.SimulationParameters) (domain.IntegratorOutput, error) {
		return domain.IntegratorOutput{}, fmt.Errorf("plume collapsed at base")
	}
}

// Profiles builds a plausible plume output of n levels.
func Profiles(n int, start, step, baseTemp float64) domain.IntegratorOutput {
	out := domain.IntegratorOutput{
		Pressure: make([]float64, n),
		Profiles: map[string][]float64{
			domain.FieldVelocity:    make([]float64, n),
			domain.FieldPlumeTemp:   make([]float64, n),
			domain.FieldEnvTemp:     make([]float64, n),
			domain.FieldPlumeRadius: make([]float64, n),
			domain.FieldFlashRate:   make([]float64, n),
		},
	}
	for i := 0; i < n; i++ {
		h := float64(i)
		out.Pressure[i] = start - h*step
		out.Profiles[domain.FieldVelocity][i] = 0.001 + 0.05*h
		out.Profiles[domain.FieldPlumeTemp][i] = baseTemp - 0.006*h
		out.Profiles[domain.FieldEnvTemp][i] = baseTemp - 0.0065*h
		out.Profiles[domain.FieldPlumeRadius][i] = 1000 + h
		out.Profiles[domain.FieldFlashRate][i] = 0.001 * h
	}
	return out
}

// NewResult builds a stamped RunResult of n levels for label.
func NewResult(t *testing.T, label string, n int) *domain.RunResult {
	t.Helper()
	out := Profiles(n, 100000, 10, 280)
	r, err := domain.NewRunResult(out.Pressure, out.Profiles, map[string]string{
		domain.KeyRunLabel: label,
		"start_pressure":   "100000.0",
		"pa_to_bar":        "1e-05",
	})
	require.NoError(t, err)
	return r
}
