// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// API configures the connection to the TaskFlow API server.
	API APIConfig `yaml:"api"`

	// UI configures the terminal dashboard.
	UI UIConfig `yaml:"ui"`

	// Snapshot configures the dashboard warm-start cache.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// APIConfig configures the HTTP client.
type APIConfig struct {
	// BaseURL is the API base URL.
	// Default: http://localhost:3500/api/v1
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout as a Go duration string.
	// Default: 10s
	Timeout string `yaml:"timeout"`
}

// UIConfig configures the dashboard.
type UIConfig struct {
	// Theme selects the color theme. Currently only "dark".
	Theme string `yaml:"theme"`
}

// SnapshotConfig configures the warm-start cache file.
type SnapshotConfig struct {
	// Enabled toggles writing and reading the snapshot. Default: true.
	Enabled bool `yaml:"enabled"`

	// Path is the snapshot file location.
	// Default: ${XDG_CACHE_HOME}/taskflow/snapshot.bin
	Path string `yaml:"path"`
}

// Default returns the default configuration, suitable for talking to
// a local development API server with no config file at all.
func Default() *Config {
	cacheDirectory := os.Getenv("XDG_CACHE_HOME")
	if cacheDirectory == "" {
		homeDirectory, _ := os.UserHomeDir()
		cacheDirectory = filepath.Join(homeDirectory, ".cache")
	}

	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:3500/api/v1",
			Timeout: "10s",
		},
		UI: UIConfig{
			Theme: "dark",
		},
		Snapshot: SnapshotConfig{
			Enabled: true,
			Path:    filepath.Join(cacheDirectory, "taskflow", "snapshot.bin"),
		},
	}
}

// Load builds the effective configuration: .env file (if present),
// then the config file named by TASKFLOW_CONFIG (if set), then
// environment overrides. A missing TASKFLOW_CONFIG is not an error —
// the defaults are complete.
func Load() (*Config, error) {
	// A missing .env is the common case and not an error.
	_ = godotenv.Load()

	configPath := os.Getenv("TASKFLOW_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.applyEnvironment()
		return cfg, cfg.Validate()
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging
// over the defaults and applying environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.expandVariables()
	cfg.applyEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironment applies environment variable overrides.
// TASKFLOW_API_URL wins over every other source — it is how
// deployments select their API endpoint.
func (c *Config) applyEnvironment() {
	if apiURL := os.Getenv("TASKFLOW_API_URL"); apiURL != "" {
		c.API.BaseURL = apiURL
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// path-valued fields for portability.
func (c *Config) expandVariables() {
	c.Snapshot.Path = expandVars(c.Snapshot.Path)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if _, err := url.Parse(c.API.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("api.base_url is not a valid URL: %w", err))
	}

	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("api.timeout is not a valid duration: %w", err))
	}

	if c.Snapshot.Enabled && c.Snapshot.Path == "" {
		errs = append(errs, fmt.Errorf("snapshot.path is required when snapshot.enabled is true"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequestTimeout returns the parsed per-request timeout. Call
// Validate first; an invalid duration falls back to 10 seconds here.
func (c *Config) RequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return timeout
}
