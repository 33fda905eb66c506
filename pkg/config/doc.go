/*
Package config defines the immutable configuration records of a plume run and
loads them from YAML files.

A run is described by two records, each loaded from its own file:

  - PhysicalConstants (physical_constants.yaml): 17 physical constants.
  - SimulationParameters (simulation_parameters.yaml): 15 run parameters plus the
    project name.

Loading is strict. Every declared field must be present under its exact name, a
field entry may be a bare scalar or a mapping with a "value" key, and unknown
top-level sections are ignored:

	physical_constants:
	  gravity:
	    value: 9.81
	    units: m s-2

Values are range-checked when the record is loaded, never when it is used. Each
record exposes Provenance, a string map holding every field for embedding into
run outputs.
*/
package config
