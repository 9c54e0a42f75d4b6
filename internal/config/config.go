// Package config manages the user configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for configuration values out of range.
var ErrInvalid = errors.New("config: invalid value")

// Turn systems and axis modes as spelled in the file.
const (
	SystemThreeKey = "three-key"
	SystemFixedKey = "fixed-key"
	AxisModeAxis   = "axis"
	AxisModeSide   = "side"
)

// Config is the persisted user configuration.
type Config struct {
	DBPath        string `yaml:"db_path"`
	LogDir        string `yaml:"log_dir"`
	Filters       string `yaml:"filters,omitempty"`
	Compact       bool   `yaml:"compact"`
	Boxes         bool   `yaml:"boxes"`
	TurnSystem    string `yaml:"turn_system"`
	AxisMode      string `yaml:"axis_mode"`
	ScrambleTurns int    `yaml:"scramble_turns"`
	Record        bool   `yaml:"record"`
	KeyLog        bool   `yaml:"key_log"`
}

// DefaultDir returns ~/.hypercube.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".hypercube"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists, with data
// files under dir.
func Default(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, "hypercube.db"),
		LogDir:        filepath.Join(dir, "logs"),
		TurnSystem:    SystemThreeKey,
		AxisMode:      AxisModeAxis,
		ScrambleTurns: 5000,
		Record:        true,
		KeyLog:        true,
	}
}

// Load reads the file at path over the defaults for its directory. A
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	switch c.TurnSystem {
	case SystemThreeKey, SystemFixedKey:
	default:
		return fmt.Errorf("%w: turn_system %q", ErrInvalid, c.TurnSystem)
	}
	switch c.AxisMode {
	case AxisModeAxis, AxisModeSide:
	default:
		return fmt.Errorf("%w: axis_mode %q", ErrInvalid, c.AxisMode)
	}
	if c.ScrambleTurns < 1 {
		return fmt.Errorf("%w: scramble_turns %d", ErrInvalid, c.ScrambleTurns)
	}
	return nil
}
