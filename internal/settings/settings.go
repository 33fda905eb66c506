// Package settings reads the tool's own configuration from PLUME_* environment variables.
package settings

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Store backends accepted by PLUME_STORE.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Stores lists the accepted store backends.
var Stores = []string{StoreFile, StoreMemory, StoreRedis, StoreSQLite}

// Settings are the defaults of the command line tool. Flags override them.
type Settings struct {
	ConfigRoot       string   `env:"PLUME_CONFIG_ROOT" envDefault:"config"`
	OutputDir        string   `env:"PLUME_OUTPUT_DIR" envDefault:"output"`
	OutputPrefix     string   `env:"PLUME_OUTPUT_PREFIX" envDefault:"plume_model_output_"`
	FigureDir        string   `env:"PLUME_FIGURE_DIR" envDefault:"figures"`
	Store            string   `env:"PLUME_STORE" envDefault:"file"`
	RedisURL         string   `env:"PLUME_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SQLitePath       string   `env:"PLUME_SQLITE_PATH"`
	IntegratorConfig string   `env:"PLUME_INTEGRATOR_CONFIG" envDefault:"integrator.yaml"`
	LogLevel         string   `env:"PLUME_LOG_LEVEL" envDefault:"info"`
	Listen           string   `env:"PLUME_LISTEN" envDefault:":8080"`
	Runs             []string `env:"PLUME_RUNS" envSeparator:"," envDefault:"default,run01,run02"`
}

// Load parses the process environment.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, s.Validate()
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, s.Validate()
}

// Validate checks the store backend.
func (s Settings) Validate() error {
	if !slices.Contains(Stores, s.Store) {
		return fmt.Errorf("unknown store %q (want one of %v)", s.Store, Stores)
	}
	return nil
}

// SQLiteFile returns the database path, defaulting to plume.db in the output directory.
func (s Settings) SQLiteFile() string {
	if s.SQLitePath != "" {
		return s.SQLitePath
	}
	return filepath.Join(s.OutputDir, "plume.db")
}
