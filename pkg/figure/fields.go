package figure

import (
	"fmt"
	"strconv"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// FieldSpec describes one panel.
type FieldSpec struct {
	Name      string
	AxisLabel string
	Title     string
	Units     string
}

// XLabel renders the value axis label, e.g. "Temperature [K]".
func (f FieldSpec) XLabel() string {
	if f.Units == "" {
		return f.AxisLabel
	}
	return fmt.Sprintf("%s [%s]", f.AxisLabel, f.Units)
}

// DefaultFields returns the six panels of the standard comparison figure.
func DefaultFields() []FieldSpec {
	return []FieldSpec{
		{Name: domain.FieldVelocity, AxisLabel: "Vertical velocity", Title: "Vertical Plume Velocity", Units: "m s-1"},
		{Name: domain.FieldPlumeTemp, AxisLabel: "Temperature", Title: "Plume Temperature", Units: "K"},
		{Name: domain.FieldEnvTemp, AxisLabel: "Temperature", Title: "Environment Temperature", Units: "K"},
		{Name: domain.FieldTempDiff, AxisLabel: "Temperature difference", Title: "Plume-Environment Temperature Difference", Units: "K"},
		{Name: domain.FieldPlumeRadius, AxisLabel: "Radius", Title: "Plume Radius", Units: "m"},
		{Name: domain.FieldFlashRate, AxisLabel: "Flash rate", Title: "Lightning Flash Rate", Units: "flashes s-1 km-2"},
	}
}

// Axis fixes the vertical axis: pressure is multiplied by Scale for display and
// the axis spans [0, Start*Scale].
type Axis struct {
	Scale float64
	Start float64
	Label string
}

// DefaultAxisLabel is used when Axis.Label is empty.
const DefaultAxisLabel = "Pressure [bar]"

// Provenance keys AxisFromProvenance reads.
const (
	KeyPaToBar       = "pa_to_bar"
	KeyStartPressure = "start_pressure"
)

// AxisFromProvenance builds the axis from a run's pa_to_bar and start_pressure attributes.
func AxisFromProvenance(attrs map[string]string) (Axis, error) {
	scale, err := attrFloat(attrs, KeyPaToBar)
	if err != nil {
		return Axis{}, err
	}
	start, err := attrFloat(attrs, KeyStartPressure)
	if err != nil {
		return Axis{}, err
	}
	return Axis{Scale: scale, Start: start, Label: DefaultAxisLabel}, nil
}

func attrFloat(attrs map[string]string, key string) (float64, error) {
	raw, ok := attrs[key]
	if !ok {
		return 0, fmt.Errorf("%w: provenance has no %s", domain.ErrRender, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: provenance %s=%q is not a number", domain.ErrRender, key, raw)
	}
	return v, nil
}

// FileName returns the image name for a figure named after a run or batch.
func FileName(name string) string {
	return name + "_comparison.png"
}
