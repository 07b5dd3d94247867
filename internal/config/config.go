// Package config loads the YAML configuration for coachcal, creating a
// default file on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA timezone sessions are interpreted in
	// (e.g. "Europe/Berlin"). Empty means the system local zone.
	Timezone string `yaml:"timezone"`

	// DBPath is the SQLite database location. Empty means
	// ~/.coachcal/coachcal.db.
	DBPath string `yaml:"db_path"`

	// TickSeconds is the reclassification clock interval.
	TickSeconds int `yaml:"tick_seconds"`

	// MinimumBlockMinutes keeps short sessions tall enough to fill one
	// grid row in day view.
	MinimumBlockMinutes int `yaml:"minimum_block_minutes"`

	// RefreshCron is a cron-style schedule (e.g. "@every 5m") used by
	// `coachcal agenda --watch` to re-render.
	RefreshCron string `yaml:"refresh"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:            "",
		DBPath:              "",
		TickSeconds:         60,
		MinimumBlockMinutes: 50,
		RefreshCron:         "@every 5m",
	}
}

// Normalize fills in missing/zero values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.TickSeconds <= 0 {
		c.TickSeconds = 60
	}
	if c.MinimumBlockMinutes <= 0 {
		c.MinimumBlockMinutes = 50
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "@every 5m"
	}
}

// Location resolves the configured timezone, falling back to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// TickInterval returns the clock interval as a duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

// Load loads configuration from the given YAML path. A missing file is a
// first run: the default config is written with 0600 perms and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration to the given path, creating the parent
// directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
