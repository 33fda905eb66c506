// Package sqlite provides a SQLite-backed result store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/artifact"
	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	label      TEXT PRIMARY KEY,
	document   BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_attributes (
	label TEXT NOT NULL REFERENCES runs(label) ON DELETE CASCADE,
	key   TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (label, key)
);
CREATE INDEX IF NOT EXISTS run_attributes_key_value ON run_attributes (key, value);
`

// Store persists run artifacts in SQLite.
// The full document is kept in runs; provenance is also exploded into
// run_attributes so runs can be looked up by parameter value.
type Store struct {
	path  string
	sqlDB *sql.DB
}

// Open opens a SQLite result store and creates its tables.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{path: cleanPath, sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Location names the row holding the artifact of label.
func (s *Store) Location(label string) string {
	return "sqlite://" + s.path + "#" + label
}

// Save upserts the artifact and replaces its attribute rows.
func (s *Store) Save(ctx context.Context, label string, result *domain.RunResult) error {
	if label == "" {
		return fmt.Errorf("%w: run label cannot be empty", domain.ErrArtifactIO)
	}
	data, err := artifact.Encode(result)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", domain.ErrArtifactIO, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (label, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(label) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		label, data, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("%w: upsert run: %w", domain.ErrArtifactIO, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_attributes WHERE label = ?`, label); err != nil {
		return fmt.Errorf("%w: clear attributes: %w", domain.ErrArtifactIO, err)
	}
	for key, value := range result.Attributes() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_attributes (label, key, value) VALUES (?, ?, ?)`,
			label, key, value,
		); err != nil {
			return fmt.Errorf("%w: insert attribute %s: %w", domain.ErrArtifactIO, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrArtifactIO, err)
	}
	return nil
}

// Load reads the artifact of label.
func (s *Store) Load(ctx context.Context, label string) (*domain.RunResult, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT document FROM runs WHERE label = ?`, label).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", domain.ErrRunNotFound, label)
		}
		return nil, fmt.Errorf("%w: get run: %w", domain.ErrArtifactIO, err)
	}

	result, err := artifact.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Location(label), err)
	}
	return result, nil
}

// Delete removes the run and, by cascade, its attributes.
func (s *Store) Delete(ctx context.Context, label string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM runs WHERE label = ?`, label); err != nil {
		return fmt.Errorf("%w: delete run: %w", domain.ErrArtifactIO, err)
	}
	return nil
}

// List returns every stored label in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.queryLabels(ctx, `SELECT label FROM runs ORDER BY label`)
}

// FindByAttribute returns the labels whose provenance has key set to value,
// e.g. FindByAttribute(ctx, "start_pressure", "100000.0").
func (s *Store) FindByAttribute(ctx context.Context, key, value string) ([]string, error) {
	return s.queryLabels(ctx, `SELECT label FROM run_attributes WHERE key = ? AND value = ? ORDER BY label`, key, value)
}

func (s *Store) queryLabels(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list runs: %w", domain.ErrArtifactIO, err)
	}
	defer rows.Close()

	labels := []string{}
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("%w: scan label: %w", domain.ErrArtifactIO, err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate labels: %w", domain.ErrArtifactIO, err)
	}
	return labels, nil
}
