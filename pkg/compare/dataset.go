package compare

import (
	"fmt"
	"slices"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Dataset is an ordered set of run results plus the derivations available on them.
type Dataset struct {
	batch       *domain.Batch
	derivations map[string]Derivation
}

// NewDataset wraps batch. When derivations is nil, DefaultDerivations is used;
// an empty non-nil slice disables derived fields.
func NewDataset(batch *domain.Batch, derivations ...Derivation) *Dataset {
	if derivations == nil {
		derivations = DefaultDerivations()
	}
	byName := make(map[string]Derivation, len(derivations))
	for _, d := range derivations {
		byName[d.Name] = d
	}
	if batch == nil {
		batch = domain.NewBatch()
	}
	return &Dataset{batch: batch, derivations: byName}
}

// Labels returns the run labels in assembly order.
func (d *Dataset) Labels() []string {
	return d.batch.Labels()
}

// Len returns the number of runs.
func (d *Dataset) Len() int {
	return d.batch.Len()
}

// Result returns the stored result of label.
func (d *Dataset) Result(label string) (*domain.RunResult, bool) {
	return d.batch.Get(label)
}

// Field returns the pressure coordinate (Pa) of label and the named field on it.
// Stored fields win over derivations of the same name. Derived fields are
// recomputed on every call and never stored.
func (d *Dataset) Field(label, name string) (pressure, values []float64, err error) {
	r, ok := d.batch.Get(label)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrRunNotFound, label)
	}

	if r.Has(name) {
		values, err = r.Profile(name)
		return r.Pressure(), values, err
	}

	deriv, ok := d.derivations[name]
	if !ok {
		return nil, nil, fmt.Errorf("run %q: %w: %q", label, domain.ErrFieldNotFound, name)
	}
	values, err = deriv.apply(r)
	if err != nil {
		return nil, nil, fmt.Errorf("run %q: %w", label, err)
	}
	return r.Pressure(), values, nil
}

// Has reports whether label can supply the named field, stored or derived.
func (d *Dataset) Has(label, name string) bool {
	r, ok := d.batch.Get(label)
	if !ok {
		return false
	}
	if r.Has(name) {
		return true
	}
	deriv, ok := d.derivations[name]
	if !ok {
		return false
	}
	return !slices.ContainsFunc(deriv.Inputs, func(in string) bool { return !r.Has(in) })
}

// Provides reports whether at least one run can supply the named field.
func (d *Dataset) Provides(name string) bool {
	for _, label := range d.batch.Labels() {
		if d.Has(label, name) {
			return true
		}
	}
	return false
}

// Derived reports whether name is a registered derivation.
func (d *Dataset) Derived(name string) bool {
	_, ok := d.derivations[name]
	return ok
}
