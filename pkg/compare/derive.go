package compare

import (
	"fmt"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Derivation computes a field point-by-point from stored profiles of the same run.
type Derivation struct {
	Name   string
	Inputs []string

	// Compute receives the input profiles in Inputs order, all aligned with the
	// run's pressure coordinate, and returns one value per level.
	Compute func(inputs [][]float64) []float64
}

// TempDiff is plume_temp minus env_temp.
var TempDiff = Derivation{
	Name:   domain.FieldTempDiff,
	Inputs: []string{domain.FieldPlumeTemp, domain.FieldEnvTemp},
	Compute: func(in [][]float64) []float64 {
		plume, env := in[0], in[1]
		out := make([]float64, len(plume))
		for i := range plume {
			out[i] = plume[i] - env[i]
		}
		return out
	},
}

// DefaultDerivations returns the derived fields every dataset knows about.
func DefaultDerivations() []Derivation {
	return []Derivation{TempDiff}
}

func (d Derivation) apply(r *domain.RunResult) ([]float64, error) {
	inputs := make([][]float64, len(d.Inputs))
	for i, name := range d.Inputs {
		values, err := r.Profile(name)
		if err != nil {
			return nil, fmt.Errorf("cannot derive %s: %w", d.Name, err)
		}
		inputs[i] = values
	}
	out := d.Compute(inputs)
	if len(out) != r.Len() {
		return nil, fmt.Errorf("derivation %s returned %d values for %d levels", d.Name, len(out), r.Len())
	}
	return out, nil
}
