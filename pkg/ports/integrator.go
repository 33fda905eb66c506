package ports

import (
	"context"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/config"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Integrator is the numerical plume model.
// Given the same inputs it must return the same output, and it must signal
// failure through the error rather than returning partial profiles.
type Integrator interface {
	Integrate(ctx context.Context, constants config.PhysicalConstants, params config.SimulationParameters) (domain.IntegratorOutput, error)
}

// IntegratorFunc adapts a function to the Integrator interface.
type IntegratorFunc func(ctx context.Context, constants config.PhysicalConstants, params config.SimulationParameters) (domain.IntegratorOutput, error)

// Integrate calls f.
func (f IntegratorFunc) Integrate(ctx context.Context, constants config.PhysicalConstants, params config.SimulationParameters) (domain.IntegratorOutput, error) {
	return f(ctx, constants, params)
}
