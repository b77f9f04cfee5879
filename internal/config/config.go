// Package config loads and validates taliesin's configuration from
// command-line values and an optional TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/taliesin/internal/keys"
)

// Default configuration values.
const (
	DefaultVolume         = 50
	DefaultIgnoreDuration = 0
)

var (
	// ErrMissingKeys is returned when no trigger key was given.
	ErrMissingKeys = errors.New("at least one trigger key is required")
	// ErrMissingFile is returned when no sound file was given.
	ErrMissingFile = errors.New("a sound file is required")
	// ErrInvalidNumber is returned for unparseable or negative numeric values.
	ErrInvalidNumber = errors.New("invalid number")
)

// Config is the validated, immutable configuration.
type Config struct {
	Keys           keys.Set
	File           string
	Delay          time.Duration
	IgnoreDuration time.Duration
	CancelKeys     keys.Set

	// Volume is the playback volume from 0.0 to 1.0.
	Volume float64
	// PollInterval is slept between loop iterations; 0 only yields.
	PollInterval  time.Duration
	DesktopNotify bool
}

// Raw holds unparsed command-line values. Empty strings and nil slices mean
// the value was not given on the command line.
type Raw struct {
	ConfigPath     string
	Keys           []string
	File           string
	Delay          string
	IgnoreDuration string
	CancelKeys     []string
	Volume         string
	PollInterval   string
	DesktopNotify  bool
}

// Load parses and validates raw values. When raw.ConfigPath is set, the file
// is read first and command-line values override it.
func Load(raw Raw) (*Config, error) {
	var fc FileConfig
	if raw.ConfigPath != "" {
		loaded, err := LoadFile(raw.ConfigPath)
		if err != nil {
			return nil, err
		}
		fc = *loaded
	}

	cfg := &Config{
		Volume:        float64(DefaultVolume) / 100.0,
		DesktopNotify: raw.DesktopNotify || fc.Notify,
	}

	// Trigger keys
	keyTokens := raw.Keys
	if len(keyTokens) == 0 {
		keyTokens = fc.Keys
	}
	triggers, err := keys.ParseList(keyTokens)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	if triggers.Len() == 0 {
		return nil, ErrMissingKeys
	}
	cfg.Keys = triggers

	// Cancel keys
	cancelTokens := raw.CancelKeys
	if len(cancelTokens) == 0 {
		cancelTokens = fc.CancelKeys
	}
	cancels, err := keys.ParseList(cancelTokens)
	if err != nil {
		return nil, fmt.Errorf("cancel keys: %w", err)
	}
	cfg.CancelKeys = cancels

	// Sound file
	file := raw.File
	if file == "" {
		file = fc.File
	}
	if strings.TrimSpace(file) == "" {
		return nil, ErrMissingFile
	}
	cfg.File = expandPath(file)

	// Durations
	if cfg.Delay, err = durationValue("delay", raw.Delay, fc.Delay); err != nil {
		return nil, err
	}
	if cfg.IgnoreDuration, err = durationValue("ignore duration", raw.IgnoreDuration, fc.IgnoreDuration); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = durationValue("poll interval", raw.PollInterval, fc.PollInterval); err != nil {
		return nil, err
	}

	// Volume
	volume := DefaultVolume
	if fc.Volume != nil {
		volume = *fc.Volume
	}
	if raw.Volume != "" {
		volume, err = strconv.Atoi(strings.TrimSpace(raw.Volume))
		if err != nil {
			return nil, fmt.Errorf("volume: %w: %q", ErrInvalidNumber, raw.Volume)
		}
	}
	if volume < 0 || volume > 100 {
		return nil, fmt.Errorf("volume must be between 0 and 100, got %d", volume)
	}
	cfg.Volume = float64(volume) / 100.0

	return cfg, nil
}

// durationValue prefers the command-line string over the file value.
func durationValue(name, flagValue string, fileValue *Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := ParseMillis(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, err)
		}
		return d, nil
	}
	if fileValue != nil {
		if fileValue.Duration() < 0 {
			return 0, fmt.Errorf("%s: %w: must not be negative", name, ErrInvalidNumber)
		}
		return fileValue.Duration(), nil
	}
	return 0, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
