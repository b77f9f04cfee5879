package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration. Every field is optional; values
// given on the command line take precedence.
type FileConfig struct {
	Keys           []string  `toml:"keys" yaml:"keys"`
	CancelKeys     []string  `toml:"cancel_keys" yaml:"cancel_keys"`
	File           string    `toml:"file" yaml:"file"`
	Delay          *Duration `toml:"delay" yaml:"delay"`
	IgnoreDuration *Duration `toml:"ignore_duration" yaml:"ignore_duration"`
	PollInterval   *Duration `toml:"poll_interval" yaml:"poll_interval"`
	Volume         *int      `toml:"volume" yaml:"volume"` // 0-100
	Notify         bool      `toml:"notify" yaml:"notify"`
}

// DefaultPath returns the conventional config file location.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taliesin", "config.toml")
}

// LoadFile reads a config file. Files ending in .yaml or .yml are parsed as
// YAML, everything else as TOML.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	return &fc, nil
}
