package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds defaults for the command line flags. Explicit flags always
// take precedence over values read from the file.
type Config struct {
	// FPS is the default frame rate for frame indexed formats.
	FPS float64 `toml:"fps"`
	// Encoding is the default source encoding; empty means detect.
	Encoding string `toml:"encoding"`
	// Quiet skips overwrite confirmations.
	Quiet bool `toml:"quiet"`
}

// Default returns the built in configuration.
func Default() Config {
	return Config{FPS: 25}
}

// DefaultPath returns the standard location of the configuration file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "subtitools", "config.toml"), nil
}

// Load reads the configuration file at path, or from the default location
// when path is empty. A missing file at the default location yields the
// defaults; an explicitly given path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return cfg, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.FPS <= 0 {
		return cfg, fmt.Errorf("config %s: fps must be positive, got %v", path, cfg.FPS)
	}
	return cfg, nil
}
