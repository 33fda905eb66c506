package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the conventional name of the integrator configuration.
const DefaultConfigFile = "integrator.yaml"

// Config describes how to launch the external integrator.
type Config struct {
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Dir         string            `yaml:"dir" json:"dir"`

	// Timeout bounds a single integration. Zero means no limit.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// LoadConfig reads an integrator configuration file (YAML, or JSON by extension).
// A relative dir is resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read integrator config: %w", err)
	}

	var cfg Config
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if strings.TrimSpace(cfg.Command) == "" {
		return Config{}, fmt.Errorf("%s: command is required", path)
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("%s: timeout cannot be negative", path)
	}
	if cfg.Dir != "" && !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(filepath.Dir(path), cfg.Dir)
	}
	return cfg, nil
}
