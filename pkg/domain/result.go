package domain

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// IntegratorOutput is what the integrator hands back for one configuration:
// named profiles and the pressure coordinate (Pa) they are indexed by.
type IntegratorOutput struct {
	Pressure []float64            `json:"pressure"`
	Profiles map[string][]float64 `json:"profiles"`
}

// RunResult is the output of one simulation run.
// It is immutable once constructed: inputs are copied and accessors return copies.
type RunResult struct {
	pressure   []float64
	profiles   map[string][]float64
	attributes map[string]string
}

// NewRunResult validates and builds a RunResult.
// The pressure coordinate must be non-empty, finite and strictly monotonic, and
// every profile must have one value per pressure level.
func NewRunResult(pressure []float64, profiles map[string][]float64, attributes map[string]string) (*RunResult, error) {
	if err := validateCoordinate(pressure); err != nil {
		return nil, err
	}

	copied := make(map[string][]float64, len(profiles))
	for name, values := range profiles {
		if name == "" {
			return nil, fmt.Errorf("profile name cannot be empty")
		}
		if name == CoordPressure {
			return nil, fmt.Errorf("profile %q shadows the pressure coordinate", name)
		}
		if len(values) != len(pressure) {
			return nil, fmt.Errorf("profile %q has %d values, pressure coordinate has %d", name, len(values), len(pressure))
		}
		copied[name] = slices.Clone(values)
	}

	attrs := make(map[string]string, len(attributes))
	maps.Copy(attrs, attributes)

	return &RunResult{
		pressure:   slices.Clone(pressure),
		profiles:   copied,
		attributes: attrs,
	}, nil
}

func validateCoordinate(pressure []float64) error {
	if len(pressure) == 0 {
		return fmt.Errorf("pressure coordinate is empty")
	}
	for i, p := range pressure {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("pressure coordinate has non-finite value at index %d", i)
		}
	}
	if len(pressure) < 2 {
		return nil
	}
	increasing := pressure[1] > pressure[0]
	for i := 1; i < len(pressure); i++ {
		if increasing && pressure[i] <= pressure[i-1] || !increasing && pressure[i] >= pressure[i-1] {
			return fmt.Errorf("pressure coordinate is not strictly monotonic at index %d", i)
		}
	}
	return nil
}

// Len returns the number of pressure levels.
func (r *RunResult) Len() int {
	return len(r.pressure)
}

// Pressure returns a copy of the pressure coordinate in Pa.
func (r *RunResult) Pressure() []float64 {
	return slices.Clone(r.pressure)
}

// Has reports whether the result stores a profile with the given name.
func (r *RunResult) Has(name string) bool {
	_, ok := r.profiles[name]
	return ok
}

// Profile returns a copy of the named profile.
// Returns ErrFieldNotFound if the result does not store it.
func (r *RunResult) Profile(name string) ([]float64, error) {
	values, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return slices.Clone(values), nil
}

// FieldNames returns the stored profile names in lexical order.
func (r *RunResult) FieldNames() []string {
	return slices.Sorted(maps.Keys(r.profiles))
}

// Attributes returns a copy of the provenance map.
func (r *RunResult) Attributes() map[string]string {
	return maps.Clone(r.attributes)
}

// Attribute returns a single provenance entry.
func (r *RunResult) Attribute(key string) (string, bool) {
	v, ok := r.attributes[key]
	return v, ok
}

// Label returns the run label the result was stamped with, or "" if unstamped.
func (r *RunResult) Label() string {
	return r.attributes[KeyRunLabel]
}
