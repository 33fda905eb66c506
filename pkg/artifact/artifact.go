package artifact

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// Format identifies the document layout written by this package.
const Format = "plume-run/v1"

// Extension is the file extension of artifacts on disk.
const Extension = ".json"

// Document is the on-disk form of a domain.RunResult.
type Document struct {
	Format     string             `json:"format"`
	Coordinate Coordinate         `json:"coordinate"`
	Profiles   map[string][]Value `json:"profiles"`
	Attributes map[string]string  `json:"attributes"`
}

// Coordinate describes the index every profile is aligned with.
type Coordinate struct {
	Name   string  `json:"name"`
	Units  string  `json:"units"`
	Values []Value `json:"values"`
}

// NewDocument converts a result into its document form.
func NewDocument(result *domain.RunResult) Document {
	names := result.FieldNames()
	profiles := make(map[string][]Value, len(names))
	for _, name := range names {
		values, _ := result.Profile(name)
		profiles[name] = toValues(values)
	}
	return Document{
		Format: Format,
		Coordinate: Coordinate{
			Name:   domain.CoordPressure,
			Units:  domain.CoordPressureUnits,
			Values: toValues(result.Pressure()),
		},
		Profiles:   profiles,
		Attributes: result.Attributes(),
	}
}

// Result validates the document and rebuilds the run result.
func (d Document) Result() (*domain.RunResult, error) {
	if d.Format != Format {
		return nil, fmt.Errorf("%w: unsupported format %q", domain.ErrArtifactIO, d.Format)
	}
	if d.Coordinate.Name != domain.CoordPressure {
		return nil, fmt.Errorf("%w: unexpected coordinate %q", domain.ErrArtifactIO, d.Coordinate.Name)
	}
	if d.Coordinate.Units != domain.CoordPressureUnits {
		return nil, fmt.Errorf("%w: unexpected coordinate units %q", domain.ErrArtifactIO, d.Coordinate.Units)
	}

	profiles := make(map[string][]float64, len(d.Profiles))
	for name, values := range d.Profiles {
		profiles[name] = fromValues(values)
	}
	result, err := domain.NewRunResult(fromValues(d.Coordinate.Values), profiles, d.Attributes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
	}
	return result, nil
}

// Encode renders result as an indented document.
func Encode(result *domain.RunResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: result cannot be nil", domain.ErrArtifactIO)
	}
	data, err := json.MarshalIndent(NewDocument(result), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal result: %w", domain.ErrArtifactIO, err)
	}
	return data, nil
}

// Decode parses a document produced by Encode.
func Decode(data []byte) (*domain.RunResult, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal artifact: %w", domain.ErrArtifactIO, err)
	}
	return doc.Result()
}

// Write encodes result to w.
func Write(w io.Writer, result *domain.RunResult) error {
	data, err := Encode(result)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
	}
	return nil
}

// ReadFile loads the artifact at path.
// A missing file is reported as domain.ErrArtifactIO wrapping the fs error, so
// callers can still test for fs.ErrNotExist.
func ReadFile(path string) (*domain.RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrArtifactIO, err)
	}
	result, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
