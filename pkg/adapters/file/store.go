package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/artifact"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
)

// DefaultBasePath is used when New is given an empty base path.
const DefaultBasePath = "output"

// Store implements ports.ResultStore using the local filesystem.
// Each run is stored as one artifact document named <prefix><label>.json.
type Store struct {
	BasePath string
	prefix   string
}

type Option func(*Store)

// WithPrefix sets the file name prefix of artifacts, e.g. "plume_model_output_".
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to DefaultBasePath.
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	s := &Store{BasePath: basePath}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const tempExtension = ".tmp"

// Location returns the path the artifact of label is written to.
func (s *Store) Location(label string) string {
	return filepath.Join(s.BasePath, s.prefix+label+artifact.Extension)
}

// Save persists the result atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, label string, result *domain.RunResult) error {
	if err := checkLabel(label); err != nil {
		return err
	}

	data, err := artifact.Encode(result)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("%w: failed to ensure output directory: %w", domain.ErrArtifactIO, err)
	}

	// the temp file lives in the same directory so the rename stays on one filesystem;
	// its extension keeps it out of List whatever the label is
	tmpFile, err := os.CreateTemp(s.BasePath, "."+label+"-*"+tempExtension)
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", domain.ErrArtifactIO, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write to temp file: %w", domain.ErrArtifactIO, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: failed to fsync temp file: %w", domain.ErrArtifactIO, err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %w", domain.ErrArtifactIO, err)
	}

	destPath := s.Location(label)
	// os.Rename does not replace an existing destination on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("%w: failed to remove existing artifact for overwrite: %w", domain.ErrArtifactIO, err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("%w: failed to rename temp file to artifact: %w", domain.ErrArtifactIO, err)
	}
	return nil
}

// Load reads the artifact of label.
func (s *Store) Load(ctx context.Context, label string) (*domain.RunResult, error) {
	if err := checkLabel(label); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Location(label))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", domain.ErrRunNotFound, label)
		}
		return nil, fmt.Errorf("%w: failed to read artifact: %w", domain.ErrArtifactIO, err)
	}

	result, err := artifact.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Location(label), err)
	}
	return result, nil
}

// Delete removes the artifact file.
func (s *Store) Delete(ctx context.Context, label string) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	err := os.Remove(s.Location(label))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to delete artifact: %w", domain.ErrArtifactIO, err)
	}
	return nil
}

// List returns the labels of all artifacts carrying the store's prefix.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: failed to list artifacts: %w", domain.ErrArtifactIO, err)
	}

	labels := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != artifact.Extension {
			continue
		}
		if !strings.HasPrefix(name, s.prefix) {
			continue
		}
		labels = append(labels, strings.TrimSuffix(strings.TrimPrefix(name, s.prefix), artifact.Extension))
	}
	return labels, nil
}

func checkLabel(label string) error {
	if label == "" || strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("%w: invalid run label %q", domain.ErrArtifactIO, label)
	}
	return nil
}
