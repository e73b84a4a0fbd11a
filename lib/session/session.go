// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taskflow-project/taskflow/lib/schema/user"
	"github.com/taskflow-project/taskflow/lib/service"
	"github.com/taskflow-project/taskflow/lib/token"
)

// State is the session lifecycle state.
type State int

const (
	// StateLoading means the initial auth check has not resolved yet.
	StateLoading State = iota
	// StateAnonymous means no authenticated user.
	StateAnonymous
	// StateAuthenticated means a user is signed in.
	StateAuthenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the process-wide authentication state.
type Session struct {
	auth   *service.AuthService
	tokens *token.Store
	logger *slog.Logger

	mutex sync.Mutex
	state State
	user  user.User
}

// New creates a Session in the loading state. Call Init to resolve
// it. The token store must be the one the auth service writes to.
func New(auth *service.AuthService, tokens *token.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		auth:   auth,
		tokens: tokens,
		logger: logger,
		state:  StateLoading,
	}
}

// Init resolves the initial state. Without a stored token the session
// goes anonymous with no network call. With one, /auth/me decides:
// success authenticates; any failure — expired token, unreachable
// server, anything — clears the token and goes anonymous, so the
// client never starts half signed in.
func (s *Session) Init(ctx context.Context) {
	if !s.tokens.Has() {
		s.setState(StateAnonymous, user.User{})
		return
	}

	current, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("stored token did not resolve to a user, clearing it", "error", err)
		_ = s.tokens.Clear()
		s.setState(StateAnonymous, user.User{})
		return
	}
	s.setState(StateAuthenticated, current)
}

// Login authenticates and, on success, moves to authenticated. The
// token is persisted by the auth service. On failure the state is
// unchanged and the error propagates untouched so the caller can
// format it for display.
func (s *Session) Login(ctx context.Context, credentials user.LoginDto) error {
	response, err := s.auth.Login(ctx, credentials)
	if err != nil {
		return err
	}
	s.setState(StateAuthenticated, response.User)
	return nil
}

// Register creates an account and, on success, moves to
// authenticated. Same error contract as Login.
func (s *Session) Register(ctx context.Context, registration user.RegisterDto) error {
	response, err := s.auth.Register(ctx, registration)
	if err != nil {
		return err
	}
	s.setState(StateAuthenticated, response.User)
	return nil
}

// Logout clears the token and goes anonymous. Never fails.
func (s *Session) Logout() {
	s.auth.Logout()
	s.setState(StateAnonymous, user.User{})
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// User returns the authenticated user; ok is false unless the state
// is authenticated.
func (s *Session) User() (user.User, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.user, s.state == StateAuthenticated
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

func (s *Session) setState(state State, current user.User) {
	s.mutex.Lock()
	s.state = state
	s.user = current
	s.mutex.Unlock()
}
