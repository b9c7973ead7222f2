package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the optional TOML configuration file. Pointer
// fields distinguish "unset" from zero values; command-line flags take
// precedence over file values.
type FileConfig struct {
	Fit    FitConfig    `toml:"fit"`
	Output OutputConfig `toml:"output"`
}

// FitConfig maps fit-related settings.
type FitConfig struct {
	Model         *string            `toml:"model"`
	WindowMin     *float64           `toml:"window-min"`
	WindowMax     *float64           `toml:"window-max"`
	MaxIterations *int               `toml:"max-iterations"`
	Workers       *int               `toml:"workers"`
	InitialParams map[string]float64 `toml:"initial-params"`
}

// OutputConfig maps output-related settings.
type OutputConfig struct {
	Directory          *string  `toml:"directory"`
	PhysicalSizeUM     *float64 `toml:"physical-size-um"`
	InteractiveDisplay *bool    `toml:"interactive-display"`
}

// loadFileConfig reads a TOML config from path. A missing file is not
// an error; an empty path skips loading entirely.
func loadFileConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}

		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}

	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}
