// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	// ConfigPathVariable names the config file when --config is absent.
	ConfigPathVariable = "TRIAGE_CONFIG"

	// BaseURLVariable overrides api.base_url.
	BaseURLVariable = "TRIAGE_API_BASE_URL"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development against a local backend.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for the triage console.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// API configures the ticket-triage backend connection.
	API APIConfig `yaml:"api"`

	// Notices configures transient notifications.
	Notices NoticesConfig `yaml:"notices"`

	// Logging configures the process logger.
	Logging LoggingConfig `yaml:"logging"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	API     *APIConfig     `yaml:"api,omitempty"`
	Notices *NoticesConfig `yaml:"notices,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the backend root, for example http://localhost:8000.
	// Default: http://localhost:8000
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`
}

// NoticesConfig configures transient notifications.
type NoticesConfig struct {
	// Delay is how long a notice stays visible.
	// Default: 4s
	Delay time.Duration `yaml:"delay"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info (development), warn (production)
	Level string `yaml:"level"`
}

// SlogLevel parses Level.
func (logging LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logging.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Default returns the default configuration. These values are used
// when no config file is given and as the base a file is merged into.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		Notices: NoticesConfig{
			Delay: 4 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadDotenv reads KEY=value pairs from path into the process
// environment. Variables that are already set are left alone. A
// missing file is not an error.
func LoadDotenv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// Load resolves the configuration file from flagPath or, when that is
// empty, TRIAGE_CONFIG, and loads it. With neither set, Load returns
// Default with the environment overrides applied.
func Load(flagPath string) (*Config, error) {
	configPath := flagPath
	if configPath == "" {
		configPath = os.Getenv(ConfigPathVariable)
	}
	if configPath == "" {
		cfg := Default()
		cfg.applyEnvironmentOverrides()
		cfg.applyVariables()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, then applies
// the environment section matching Environment, TRIAGE_API_BASE_URL,
// and variable expansion, in that order.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.applyVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: quieter logs.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Logging: &LoggingConfig{Level: "warn"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != 0 {
			c.API.Timeout = overrides.API.Timeout
		}
	}

	if overrides.Notices != nil && overrides.Notices.Delay != 0 {
		c.Notices.Delay = overrides.Notices.Delay
	}

	if overrides.Logging != nil && overrides.Logging.Level != "" {
		c.Logging.Level = overrides.Logging.Level
	}
}

// applyVariables applies TRIAGE_API_BASE_URL and expands ${VAR} and
// ${VAR:-default} patterns in the base URL.
func (c *Config) applyVariables() {
	if value := os.Getenv(BaseURLVariable); value != "" {
		c.API.BaseURL = value
	}
	c.API.BaseURL = expandVars(c.API.BaseURL)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// process environment.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url: %w", err))
	} else if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an http or https URL, got %q", c.API.BaseURL))
	}

	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout))
	}

	if c.Notices.Delay <= 0 {
		errs = append(errs, fmt.Errorf("notices.delay must be positive, got %s", c.Notices.Delay))
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
