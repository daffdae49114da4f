// Package config loads settings for the complexpr command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds command settings.
type Config struct {
	// Jobs is the number of expressions evaluated concurrently.
	Jobs int `yaml:"jobs"`
	// Echo prints each expression before its result.
	Echo bool `yaml:"echo"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
	// Variables maps variable names to the expressions that define them.
	Variables map[string]string `yaml:"variables,omitempty"`
}

// EnvJobs overrides Jobs when set to a positive integer.
const EnvJobs = "COMPLEXPR_JOBS"

// DefaultConfig returns the default settings.
func DefaultConfig() *Config {
	return &Config{
		Jobs:     runtime.GOMAXPROCS(0),
		LogLevel: "warn",
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Use defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks that settings are usable.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be positive, not %d", c.Jobs)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if s := os.Getenv(EnvJobs); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		c.Jobs = n
	}
	return nil
}
