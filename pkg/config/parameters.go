package config

import (
	"fmt"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Top-level YAML sections read by LoadParameters.
const (
	SectionParameters = "simulation_parameters"
	SectionProject    = "project"
)

const keyProjectName = "project_name"

// SimulationParameters fully describe one run's initial and boundary conditions
// and its discretisation.
type SimulationParameters struct {
	PlumeBaseTemp            float64 `mapstructure:"plume_base_temp" json:"plume_base_temp" yaml:"plume_base_temp"`
	BaseHumidityFraction     float64 `mapstructure:"base_humidity_fraction" json:"base_humidity_fraction" yaml:"base_humidity_fraction"`
	PlumeBaseRadius          float64 `mapstructure:"plume_base_radius" json:"plume_base_radius" yaml:"plume_base_radius"`
	TempSupercool            float64 `mapstructure:"temp_supercool" json:"temp_supercool" yaml:"temp_supercool"`
	WaterCollisionEfficiency float64 `mapstructure:"water_collision_efficiency" json:"water_collision_efficiency" yaml:"water_collision_efficiency"`
	IceCollisionEfficiency   float64 `mapstructure:"ice_collision_efficiency" json:"ice_collision_efficiency" yaml:"ice_collision_efficiency"`
	StartPressure            float64 `mapstructure:"start_pressure" json:"start_pressure" yaml:"start_pressure"`
	StartUpwardVelocity      float64 `mapstructure:"start_upward_velocity" json:"start_upward_velocity" yaml:"start_upward_velocity"`
	PressureStep             float64 `mapstructure:"pressure_step" json:"pressure_step" yaml:"pressure_step"`
	GrowthTimeStep           float64 `mapstructure:"growth_time_step" json:"growth_time_step" yaml:"growth_time_step"`
	NBins                    int     `mapstructure:"n_bins" json:"n_bins" yaml:"n_bins"`
	MinRadius                float64 `mapstructure:"min_radius" json:"min_radius" yaml:"min_radius"`
	MaxRadius                float64 `mapstructure:"max_radius" json:"max_radius" yaml:"max_radius"`
	FlashRateSampling        int     `mapstructure:"flash_rate_sampling" json:"flash_rate_sampling" yaml:"flash_rate_sampling"`
	Dt                       float64 `mapstructure:"dt" json:"dt" yaml:"dt"`

	// ProjectName is read from the project.name entry, not from simulation_parameters.
	ProjectName string `mapstructure:"project_name" json:"project_name" yaml:"project_name"`
}

// LoadParameters reads SimulationParameters from a YAML file holding the
// simulation_parameters and project sections.
// Errors wrap domain.ErrConfigLoad or domain.ErrConfigValidation, as for LoadConstants.
func LoadParameters(path string) (SimulationParameters, error) {
	doc, err := readDocument(path)
	if err != nil {
		return SimulationParameters{}, err
	}

	values, err := sectionValues(doc, SectionParameters)
	if err != nil {
		return SimulationParameters{}, fmt.Errorf("%s: %w", path, err)
	}
	if _, declared := values[keyProjectName]; declared {
		return SimulationParameters{}, fmt.Errorf("%s: %w: %s must be set under %s.name", path, domain.ErrConfigLoad, keyProjectName, SectionProject)
	}

	name, err := projectName(doc)
	if err != nil {
		return SimulationParameters{}, fmt.Errorf("%s: %w", path, err)
	}
	values[keyProjectName] = name

	var p SimulationParameters
	if err := decodeStrict(values, &p); err != nil {
		return SimulationParameters{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return SimulationParameters{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func projectName(doc map[string]any) (string, error) {
	raw, ok := doc[SectionProject]
	if !ok {
		return "", fmt.Errorf("%w: missing section %q", domain.ErrConfigLoad, SectionProject)
	}
	project, ok := raw.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: section %q is not a mapping", domain.ErrConfigLoad, SectionProject)
	}
	name, ok := project["name"].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s.name must be a string", domain.ErrConfigLoad, SectionProject)
	}
	return name, nil
}

// Validate range-checks every parameter.
func (p SimulationParameters) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	check(positive("plume_base_temp", p.PlumeBaseTemp))
	check(within("base_humidity_fraction", p.BaseHumidityFraction, 0, 1))
	check(positive("plume_base_radius", p.PlumeBaseRadius))
	check(nonNegative("temp_supercool", p.TempSupercool))
	check(within("water_collision_efficiency", p.WaterCollisionEfficiency, 0, 1))
	check(within("ice_collision_efficiency", p.IceCollisionEfficiency, 0, 1))
	check(positive("start_pressure", p.StartPressure))
	check(nonNegative("start_upward_velocity", p.StartUpwardVelocity))
	check(positive("pressure_step", p.PressureStep))
	if p.PressureStep > 0 && p.StartPressure > 0 && p.PressureStep >= p.StartPressure {
		check(&ValidationError{Key: "pressure_step", Reason: "must be smaller than start_pressure", Value: p.PressureStep})
	}
	check(positive("growth_time_step", p.GrowthTimeStep))
	if p.NBins < 1 {
		check(&ValidationError{Key: "n_bins", Reason: "must be at least 1", Value: p.NBins})
	}
	check(positive("min_radius", p.MinRadius))
	check(positive("max_radius", p.MaxRadius))
	if p.MinRadius > 0 && p.MaxRadius > 0 && p.MaxRadius <= p.MinRadius {
		check(&ValidationError{Key: "max_radius", Reason: "must be greater than min_radius", Value: p.MaxRadius})
	}
	if p.FlashRateSampling < 1 {
		check(&ValidationError{Key: "flash_rate_sampling", Reason: "must be at least 1", Value: p.FlashRateSampling})
	}
	check(positive("dt", p.Dt))
	if p.ProjectName == "" {
		check(&ValidationError{Key: keyProjectName, Reason: "cannot be empty"})
	}

	return aggregate(errs)
}

// Provenance returns every parameter, including project_name, keyed by its field name.
func (p SimulationParameters) Provenance() map[string]string {
	return provenance(p)
}
