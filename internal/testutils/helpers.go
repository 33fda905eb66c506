package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConstantsYAML is a complete physical_constants.yaml in the entry format used by
// the model's configuration files.
const ConstantsYAML = `physical_constants:
  gravity: {value: 9.81, units: m s-2}
  universal_gas_constant: {value: 8.31446, units: J mol-1 K-1}
  molar_mass_dry_air: {value: 0.02896, units: kg mol-1}
  epsilon: {value: 0.6222}
  c_p: {value: 14500.0, units: J kg-1 K-1}
  latent_heat_v: {value: 2257000.0, units: J kg-1}
  vacuum_perm: {value: 8.854e-12, units: F m-1}
  e_charge: {value: 1.602e-19, units: C}
  rho_water: {value: 1000.0, units: kg m-3}
  rhoro: {value: 2.5}
  drag_coef: {value: 0.5}
  energy_per_flash: {value: 1.5e9, units: J}
  mean_free_path_ion_coll: {value: 4.0e-11, units: s}
  temp_freeze: {value: 273.15, units: K}
  pa_to_bar: {value: 1.0e-5}
  surface_ten: {value: 0.00072, units: N m-1}
  rho_air: {value: 1.293, units: kg m-3}
`

// ParametersYAML returns a complete simulation_parameters.yaml for project name.
func ParametersYAML(name string) string {
	return fmt.Sprintf(`project:
  name: %s
simulation_parameters:
  plume_base_temp: {value: 280.0, units: K}
  base_humidity_fraction: {value: 0.9}
  plume_base_radius: {value: 1000.0, units: m}
  temp_supercool: {value: 20.0, units: K}
  water_collision_efficiency: {value: 0.8}
  ice_collision_efficiency: {value: 0.0}
  start_pressure: {value: 100000.0, units: Pa}
  start_upward_velocity: {value: 0.001, units: m s-1}
  pressure_step: {value: 10.0, units: Pa}
  growth_time_step: {value: 0.01, units: s}
  n_bins: {value: 31}
  min_radius: {value: 1.0e-5, units: m}
  max_radius: {value: 0.46340950011842, units: m}
  flash_rate_sampling: {value: 10}
  dt: {value: 0.01, units: s}
`, name)
}

// WriteFile writes content to dir/name, creating dir, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteRunConfig writes both configuration files for label under root and
// returns the run directory.
func WriteRunConfig(t *testing.T, root, label string) string {
	t.Helper()
	dir := filepath.Join(root, label)
	WriteFile(t, dir, "physical_constants.yaml", ConstantsYAML)
	WriteFile(t, dir, "simulation_parameters.yaml", ParametersYAML(label))
	return dir
}

// WriteRunConfigWith writes a run whose parameters file has one entry replaced,
// e.g. WriteRunConfigWith(t, root, "run01", "start_pressure", "-5.0").
func WriteRunConfigWith(t *testing.T, root, label, key, value string) string {
	t.Helper()
	params := ParametersYAML(label)
	lines := strings.Split(params, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), key+":") {
			lines[i] = fmt.Sprintf("  %s: {value: %s}", key, value)
		}
	}
	dir := filepath.Join(root, label)
	WriteFile(t, dir, "physical_constants.yaml", ConstantsYAML)
	WriteFile(t, dir, "simulation_parameters.yaml", strings.Join(lines, "\n"))
	return dir
}
