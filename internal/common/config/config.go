// Package config loads the archwatch configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidInterval    = errors.New("interval_secs must be greater than zero")
	ErrInvalidPeriod      = errors.New("online_check_period must be greater than zero")
	ErrInvalidTimeout     = errors.New("timeout_secs must be greater than zero")
	ErrUnknownSource      = errors.New("unknown source in exclude list")
	ErrConfigReadFailed   = errors.New("failed to read config file")
	ErrConfigInvalidShape = errors.New("failed to parse config file")
)

// knownSources are the source names accepted in the exclude list.
var knownSources = map[string]bool{
	"pacman": true,
	"aur":    true,
	"devel":  true,
}

// Config represents the application configuration.
type Config struct {
	// IntervalSecs is the seconds between scheduler ticks
	IntervalSecs int `yaml:"interval_secs"`
	// OnlineCheckPeriod is how many ticks pass between online checks
	OnlineCheckPeriod int `yaml:"online_check_period"`
	// TimeoutSecs bounds any single per-source check
	TimeoutSecs int `yaml:"timeout_secs"`
	// DevelSuffixes mark foreign packages as devel packages
	DevelSuffixes []string `yaml:"devel_suffixes"`
	// Exclude lists sources hidden from the total due count
	Exclude []string `yaml:"exclude"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IntervalSecs:      60,
		OnlineCheckPeriod: 10,
		TimeoutSecs:       120,
		DevelSuffixes:     []string{"-git"},
	}
}

// Path returns the config file path under the XDG config directory.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "archwatch", "config.yaml")
}

// Load reads the config file, falling back to defaults when it does not
// exist. Fields left unset in the file keep their default values.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigReadFailed, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalidShape, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.IntervalSecs <= 0 {
		return ErrInvalidInterval
	}
	if c.OnlineCheckPeriod <= 0 {
		return ErrInvalidPeriod
	}
	if c.TimeoutSecs <= 0 {
		return ErrInvalidTimeout
	}
	for _, src := range c.Exclude {
		if !knownSources[src] {
			return fmt.Errorf("%w: %q", ErrUnknownSource, src)
		}
	}
	return nil
}

// Interval returns the tick interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSecs) * time.Second
}

// Timeout returns the per-check timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}
