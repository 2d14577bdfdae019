// Package config loads the storyscript driver configuration from TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "STORYSCRIPT_CONFIG"

// DefaultFile is looked up in the working directory when EnvVar is unset.
const DefaultFile = "storyscript.toml"

// Config holds the complete driver configuration
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Check  CheckConfig  `toml:"check"`
}

// LogConfig holds slog settings
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
	Time   bool   `toml:"time"`   // include timestamps
}

// OutputConfig holds settings for dumps and terminal output
type OutputConfig struct {
	Format string `toml:"format"` // text, json or yaml
	Color  bool   `toml:"color"`
}

// CheckConfig holds settings for the check command
type CheckConfig struct {
	Workers int `toml:"workers"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := preset()
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := *preset()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by STORYSCRIPT_CONFIG, then
// ./storyscript.toml, then ~/.config/storyscript/config.toml. When none
// exists the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	candidates := []string{DefaultFile}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "storyscript", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// preset returns the boolean settings that default to true. They must be set
// before decoding since a missing key and false look the same afterwards.
func preset() *Config {
	return &Config{
		Log:    LogConfig{Time: true},
		Output: OutputConfig{Color: true},
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Check.Workers <= 0 {
		c.Check.Workers = 4
	}
}

// Validate reports the first setting outside its allowed values.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	return nil
}
