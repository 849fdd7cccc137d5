package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application settings that live outside the database:
// where the database is, which stations make up the combo grid, and how
// long a deleted entry stays restorable.
type Config struct {
	DatabasePath string   `yaml:"database_path"`
	Stations     []string `yaml:"stations"`
	UndoWindow   string   `yaml:"undo_window"` // duration string, e.g. "5s"
	Verbose      bool     `yaml:"verbose"`
}

func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DatabasePath: filepath.Join(home, ".local", "share", "daybook", "daybook.db"),
		Stations:     []string{"Sled", "SkiErg", "Row", "Burpee", "WallBall"},
		UndoWindow:   "5s",
		Verbose:      false,
	}
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "daybook", "config.yaml")
}

// LoadConfig reads the YAML config at path. A missing file yields the
// defaults; a present but unparsable file is an error. Fields left unset
// in the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Stations) == 0 {
		cfg.Stations = DefaultConfig().Stations
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultConfig().DatabasePath
	}

	return cfg, nil
}

// UndoDuration parses the configured undo window, falling back to the
// default when the value is missing or malformed.
func (c Config) UndoDuration() time.Duration {
	d, err := time.ParseDuration(c.UndoWindow)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
