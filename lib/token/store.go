// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// sessionFile is the on-disk shape of the session file. Only the
// token persists; user identity is reconstructed from /auth/me on
// startup.
type sessionFile struct {
	Token string `json:"token"`
}

// DefaultPath returns the path of the session file. Checks the
// TASKFLOW_SESSION_FILE environment variable first, then falls back
// to $XDG_CONFIG_HOME/taskflow/session.json, then
// ~/.config/taskflow/session.json.
func DefaultPath() string {
	if envPath := os.Getenv("TASKFLOW_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "taskflow-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "taskflow", "session.json")
}

// Store persists one bearer token at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path. An empty
// path selects DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Set persists the token. The parent directory is created with mode
// 0700 and the file written with mode 0600 since it holds a
// credential.
func (s *Store) Set(tokenValue string) error {
	data, err := json.MarshalIndent(sessionFile{Token: tokenValue}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}
	return nil
}

// Get returns the stored token. A missing, unreadable, or malformed
// session file reads as "no token" — the caller ends up anonymous
// and re-authenticates, which is the correct recovery in every one
// of those cases.
func (s *Store) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var session sessionFile
	if err := json.Unmarshal(data, &session); err != nil {
		return "", false
	}
	if session.Token == "" {
		return "", false
	}
	return session.Token, true
}

// Has reports whether a token is stored.
func (s *Store) Has() bool {
	_, ok := s.Get()
	return ok
}

// Clear removes the session file. Removing an absent file is a
// no-op, so Clear never fails on an already-signed-out store.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", s.path, err)
	}
	return nil
}

// Token satisfies the API client's token source interface.
func (s *Store) Token() (string, bool) { return s.Get() }
