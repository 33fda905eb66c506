package config

import "fmt"

// SectionConstants is the top-level YAML section holding PhysicalConstants.
const SectionConstants = "physical_constants"

// PhysicalConstants are the physical constants used by the plume integrator.
// Units follow the integrator's SI conventions (m s-2, J mol-1 K-1, kg mol-1, ...).
type PhysicalConstants struct {
	Gravity              float64 `mapstructure:"gravity" json:"gravity" yaml:"gravity"`
	UniversalGasConstant float64 `mapstructure:"universal_gas_constant" json:"universal_gas_constant" yaml:"universal_gas_constant"`
	MolarMassDryAir      float64 `mapstructure:"molar_mass_dry_air" json:"molar_mass_dry_air" yaml:"molar_mass_dry_air"`
	Epsilon              float64 `mapstructure:"epsilon" json:"epsilon" yaml:"epsilon"`
	Cp                   float64 `mapstructure:"c_p" json:"c_p" yaml:"c_p"`
	LatentHeatV          float64 `mapstructure:"latent_heat_v" json:"latent_heat_v" yaml:"latent_heat_v"`
	VacuumPerm           float64 `mapstructure:"vacuum_perm" json:"vacuum_perm" yaml:"vacuum_perm"`
	ECharge              float64 `mapstructure:"e_charge" json:"e_charge" yaml:"e_charge"`
	RhoWater             float64 `mapstructure:"rho_water" json:"rho_water" yaml:"rho_water"`
	Rhoro                float64 `mapstructure:"rhoro" json:"rhoro" yaml:"rhoro"` // ice to liquid water density ratio
	DragCoef             float64 `mapstructure:"drag_coef" json:"drag_coef" yaml:"drag_coef"`
	EnergyPerFlash       float64 `mapstructure:"energy_per_flash" json:"energy_per_flash" yaml:"energy_per_flash"`
	MeanFreePathIonColl  float64 `mapstructure:"mean_free_path_ion_coll" json:"mean_free_path_ion_coll" yaml:"mean_free_path_ion_coll"`
	TempFreeze           float64 `mapstructure:"temp_freeze" json:"temp_freeze" yaml:"temp_freeze"`
	PaToBar              float64 `mapstructure:"pa_to_bar" json:"pa_to_bar" yaml:"pa_to_bar"` // Pa to bar conversion factor
	SurfaceTen           float64 `mapstructure:"surface_ten" json:"surface_ten" yaml:"surface_ten"`
	RhoAir               float64 `mapstructure:"rho_air" json:"rho_air" yaml:"rho_air"`
}

// LoadConstants reads PhysicalConstants from the physical_constants section of a YAML file.
// It returns an error wrapping domain.ErrConfigLoad when the file cannot be read or
// a field is missing, and domain.ErrConfigValidation when a value is out of range.
func LoadConstants(path string) (PhysicalConstants, error) {
	doc, err := readDocument(path)
	if err != nil {
		return PhysicalConstants{}, err
	}

	values, err := sectionValues(doc, SectionConstants)
	if err != nil {
		return PhysicalConstants{}, fmt.Errorf("%s: %w", path, err)
	}

	var c PhysicalConstants
	if err := decodeStrict(values, &c); err != nil {
		return PhysicalConstants{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return PhysicalConstants{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks that every constant is finite and strictly positive.
func (c PhysicalConstants) Validate() error {
	var errs []error
	for _, f := range fieldsOf(c) {
		if err := positive(f.name, f.value.Float()); err != nil {
			errs = append(errs, err)
		}
	}
	return aggregate(errs)
}

// Provenance returns every constant keyed by its field name, formatted as a decimal string.
func (c PhysicalConstants) Provenance() map[string]string {
	return provenance(c)
}
