// Package config handles the ~/.taskpad/config.toml configuration file
// and resolution of the data file path.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	dirName      = ".taskpad"
	fileName     = "config.toml"
	dataFileName = "tasks.json"

	// EnvDataFile overrides the data file path from the environment.
	EnvDataFile = "TASKPAD_FILE"
)

// Config represents the config.toml file. All keys are optional.
type Config struct {
	// DataFile is the task data file path. "~" expands to the home dir.
	DataFile string `toml:"data-file"`

	// Theme selects the color theme: classic, neon or mono.
	Theme string `toml:"theme"`

	// NoColor disables ANSI colors everywhere.
	NoColor bool `toml:"no-color"`
}

// Dir returns the taskpad dotdir path (~/.taskpad).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Load reads the config file. A missing file yields a zero config.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return loadFile(filepath.Join(dir, fileName))
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.DataFile = strings.TrimSpace(cfg.DataFile)
	cfg.Theme = strings.TrimSpace(cfg.Theme)
	return &cfg, nil
}

// ResolveDataFile picks the data file path. Precedence: the -file flag,
// the TASKPAD_FILE environment variable, the config file, then the
// default ~/.taskpad/tasks.json.
func (c *Config) ResolveDataFile(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := strings.TrimSpace(os.Getenv(EnvDataFile)); env != "" {
		return env, nil
	}
	if c.DataFile != "" {
		return expandHome(c.DataFile)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	// ensure ~/.taskpad exists with 0700
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	return filepath.Join(dir, dataFileName), nil
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
