// Package config loads the optional tool configuration (ursulacheck.yaml).
// The checker manifest and task files keep their own textual formats; this
// file only locates them and configures the run-history store.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for the tool configuration.
const DefaultPath = "ursulacheck.yaml"

type ToolConfig struct {
	Version  int            `yaml:"version"`
	Manifest string         `yaml:"manifest"`
	Database DatabaseConfig `yaml:"database"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads and validates the tool configuration at path.
func Load(path string) (*ToolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading tool config: %w", err)
	}

	var cfg ToolConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading tool config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("loading tool config: %w", err)
	}

	return &cfg, nil
}

func validate(cfg *ToolConfig) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Manifest) == "" {
		return fmt.Errorf("manifest path is required")
	}
	return nil
}
