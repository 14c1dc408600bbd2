package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if one exists
// 3. Override with environment variables
// 4. Override with command line flags (applied via LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	// The config file location itself may come from the environment.
	configFile := os.Getenv("TODO_CONFIG_FILE")
	if configFile == "" {
		if _, err := os.Stat("todolist.toml"); err == nil {
			configFile = "todolist.toml"
		}
	}
	if configFile != "" {
		if err := l.config.LoadFromFile(configFile); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBDir      *string
	DBFilename *string
	Addr       *string
	Verbose    *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.Addr != nil {
		config.Server.Addr = *overrides.Addr
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// fileConfig mirrors the TOML config file layout. Durations are strings
// in Go duration syntax ("10s", "1m").
type fileConfig struct {
	Database fileDatabaseConfig `toml:"database"`
	Server   fileServerConfig   `toml:"server"`
}

type fileDatabaseConfig struct {
	Dir          string `toml:"dir"`
	Filename     string `toml:"filename"`
	QueryTimeout string `toml:"query_timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

type fileServerConfig struct {
	Addr            string `toml:"addr"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// LoadFromFile overlays configuration from a TOML file. Missing fields
// keep their current values.
func (c *Config) LoadFromFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if fc.Database.Dir != "" {
		c.Database.Dir = fc.Database.Dir
	}
	if fc.Database.Filename != "" {
		c.Database.Filename = fc.Database.Filename
	}
	c.Database.QueryTimeout = ParseDurationWithFallback(fc.Database.QueryTimeout, c.Database.QueryTimeout)
	c.Database.WriteTimeout = ParseDurationWithFallback(fc.Database.WriteTimeout, c.Database.WriteTimeout)

	if fc.Server.Addr != "" {
		c.Server.Addr = fc.Server.Addr
	}
	c.Server.ReadTimeout = ParseDurationWithFallback(fc.Server.ReadTimeout, c.Server.ReadTimeout)
	c.Server.WriteTimeout = ParseDurationWithFallback(fc.Server.WriteTimeout, c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = ParseDurationWithFallback(fc.Server.ShutdownTimeout, c.Server.ShutdownTimeout)

	c.Application.ConfigFile = path
	return nil
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}
