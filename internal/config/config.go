// Package config loads TrafficPro configuration from a yaml file with
// environment overrides. Precedence: CLI flags > environment > file >
// defaults. The file is read once at startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all TrafficPro configuration.
type Config struct {
	// Gemini configures the advice oracle.
	Gemini GeminiConfig `yaml:"gemini"`

	// Share configures client share links.
	Share ShareConfig `yaml:"share"`

	// Logging configures zap.
	Logging LoggingConfig `yaml:"logging"`
}

// GeminiConfig configures the oracle client. The API key is the only secret
// the application needs; it is normally supplied via GEMINI_API_KEY.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// ShareConfig configures generated client links.
type ShareConfig struct {
	// Origin is the base URL share links are built on.
	Origin string `yaml:"origin"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty = stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model: "gemini-3-flash-preview",
		},
		Share: ShareConfig{
			Origin: "https://trafficpro.vercel.app",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the yaml file at path on top of the defaults and applies
// environment overrides. A missing file is not an error; env overrides still
// apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides maps process environment onto the config. Environment
// wins over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("TRAFFICPRO_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("TRAFFICPRO_SHARE_ORIGIN"); v != "" {
		c.Share.Origin = v
	}
	if v := os.Getenv("TRAFFICPRO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
