package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// File names of the two records inside a run's configuration directory.
const (
	ConstantsFile  = "physical_constants.yaml"
	ParametersFile = "simulation_parameters.yaml"
)

// Run is the complete configuration of one simulation run.
type Run struct {
	// Label is the batch label the run executes under. When empty, the
	// project name is used.
	Label      string
	Constants  PhysicalConstants
	Parameters SimulationParameters
}

// RunLabel returns the label results of this run are stamped with.
func (r Run) RunLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Parameters.ProjectName
}

// LoadRun loads both records from a run configuration directory.
func LoadRun(dir string) (Run, error) {
	constants, err := LoadConstants(filepath.Join(dir, ConstantsFile))
	if err != nil {
		return Run{}, err
	}
	params, err := LoadParameters(filepath.Join(dir, ParametersFile))
	if err != nil {
		return Run{}, err
	}
	return Run{Constants: constants, Parameters: params}, nil
}

// DirSource resolves run labels to sub-directories of Root.
type DirSource struct {
	Root string
}

// NewDirSource creates a DirSource rooted at root.
func NewDirSource(root string) DirSource {
	return DirSource{Root: root}
}

// Dir returns the configuration directory of a label.
func (s DirSource) Dir(label string) string {
	return filepath.Join(s.Root, label)
}

// Load reads <Root>/<label>/physical_constants.yaml and simulation_parameters.yaml.
func (s DirSource) Load(ctx context.Context, label string) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	if err := checkLabel(label); err != nil {
		return Run{}, err
	}

	run, err := LoadRun(s.Dir(label))
	if err != nil {
		return Run{}, err
	}
	run.Label = label
	return run, nil
}

func checkLabel(label string) error {
	if label == "" || label == "." || label == ".." || strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("%w: invalid run label %q", domain.ErrConfigLoad, label)
	}
	return nil
}
