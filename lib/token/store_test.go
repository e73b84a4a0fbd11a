// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewStore(path)

	if store.Has() {
		t.Fatal("fresh store should have no token")
	}

	if err := store.Set("token-abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := store.Get()
	if !ok || got != "token-abc" {
		t.Fatalf("Get: got %q, %v", got, ok)
	}

	// The file holds a credential; it must not be group or world
	// readable.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file mode = %o, want 0600", perm)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Has() {
		t.Fatal("token survived Clear")
	}

	// Clearing an already-cleared store is a no-op.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestStoreMalformedFileReadsAsAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("not json{"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if _, ok := store.Get(); ok {
		t.Fatal("malformed file should read as no token")
	}
}

func TestStoreEmptyTokenReadsAsAnonymous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"token": ""}`), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if store.Has() {
		t.Fatal("empty token should read as no token")
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv("TASKFLOW_SESSION_FILE", "/custom/session.json")
	if got := DefaultPath(); got != "/custom/session.json" {
		t.Fatalf("got %q", got)
	}

	t.Setenv("TASKFLOW_SESSION_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "taskflow", "session.json") {
		t.Fatalf("got %q", got)
	}
}
