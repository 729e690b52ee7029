// Package config loads the robol configuration file.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// Output formats understood by pkg/report.
var Formats = []string{"text", "json", "yaml"}

// Config holds the complete robol configuration
type Config struct {
	Run    RunConfig    `toml:"run"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// RunConfig holds interpreter settings
type RunConfig struct {
	MaxIterations int    `toml:"max_iterations"`
	Encoding      string `toml:"encoding"`
}

// OutputConfig holds event stream and trace settings
type OutputConfig struct {
	Format     string `toml:"format"`
	Trace      string `toml:"trace"`
	TraceScale int    `toml:"trace_scale"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	// Apply defaults
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Run
	if c.Run.Encoding == "" {
		c.Run.Encoding = "utf-8"
	}

	// Output
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.TraceScale == 0 {
		c.Output.TraceScale = 16
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Run.MaxIterations < 0 {
		return fmt.Errorf("run.max_iterations must be non-negative, got %d", c.Run.MaxIterations)
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", Formats, c.Output.Format)
	}
	if c.Output.TraceScale < 1 {
		return fmt.Errorf("output.trace_scale must be positive, got %d", c.Output.TraceScale)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
