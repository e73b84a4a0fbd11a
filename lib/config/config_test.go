// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3500/api/v1" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("timeout = %v", cfg.RequestTimeout())
	}
	if !cfg.Snapshot.Enabled {
		t.Error("snapshot disabled by default")
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
api:
  base_url: https://tasks.example.com/api/v1
snapshot:
  enabled: true
  path: /tmp/taskflow-test-snapshot.bin
`
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "https://tasks.example.com/api/v1" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
	// Fields the file omits keep their defaults.
	if cfg.API.Timeout != "10s" {
		t.Errorf("timeout = %q", cfg.API.Timeout)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

func TestLoadFileExpandsVariables(t *testing.T) {
	t.Setenv("TASKFLOW_TEST_CACHE", "/var/cache/custom")

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
snapshot:
  enabled: true
  path: ${TASKFLOW_TEST_CACHE}/snapshot.bin
`
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Snapshot.Path != "/var/cache/custom/snapshot.bin" {
		t.Errorf("path = %q", cfg.Snapshot.Path)
	}
}

func TestExpandVarsDefaultSyntax(t *testing.T) {
	t.Setenv("TASKFLOW_TEST_UNSET", "")
	if got := expandVars("${TASKFLOW_TEST_UNSET:-/fallback}/x"); got != "/fallback/x" {
		t.Errorf("unset with default = %q", got)
	}

	t.Setenv("TASKFLOW_TEST_SET", "/real")
	if got := expandVars("${TASKFLOW_TEST_SET:-/fallback}/x"); got != "/real/x" {
		t.Errorf("set with default = %q", got)
	}

	if got := expandVars("${TASKFLOW_TEST_UNSET}/x"); got != "/x" {
		t.Errorf("unset without default = %q", got)
	}

	if got := expandVars("no variables here"); got != "no variables here" {
		t.Errorf("literal = %q", got)
	}
}

func TestEnvironmentOverridesBaseURL(t *testing.T) {
	t.Setenv("TASKFLOW_API_URL", "http://override:9999/api/v1")
	t.Setenv("TASKFLOW_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://override:9999/api/v1" {
		t.Errorf("base URL = %q", cfg.API.BaseURL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = ""
	cfg.API.Timeout = "soon"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}

	cfg = Default()
	cfg.Snapshot.Enabled = true
	cfg.Snapshot.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("enabled snapshot with empty path accepted")
	}

	// Disabled snapshot does not need a path.
	cfg.Snapshot.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled snapshot rejected: %v", err)
	}
}

func TestRequestTimeoutFallback(t *testing.T) {
	cfg := Default()
	cfg.API.Timeout = "nonsense"
	if got := cfg.RequestTimeout(); got != 10*time.Second {
		t.Errorf("fallback timeout = %v", got)
	}

	cfg.API.Timeout = "30s"
	if got := cfg.RequestTimeout(); got != 30*time.Second {
		t.Errorf("timeout = %v", got)
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing explicit config file accepted")
	}
}
