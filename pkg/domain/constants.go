package domain

// Attribute and coordinate names shared by the executor, the artifact codec and
// the comparison pipeline.
const (
	// KeyRunLabel is the attribute holding the label a result was produced under.
	KeyRunLabel = "run_label"

	// CoordPressure is the name of the shared vertical coordinate.
	CoordPressure = "air_pressure"

	// CoordPressureUnits are the units of the pressure coordinate.
	CoordPressureUnits = "Pa"
)

// Profile names produced by the plume integrator.
const (
	FieldVelocity    = "velocity"
	FieldPlumeTemp   = "plume_temp"
	FieldEnvTemp     = "env_temp"
	FieldPlumeRadius = "plume_radius"
	FieldFlashRate   = "flash_rate"

	// FieldTempDiff is derived (plume_temp - env_temp) and never stored.
	FieldTempDiff = "temp_diff"
)
