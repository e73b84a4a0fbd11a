// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"

	"github.com/taskflow-project/taskflow/lib/api"
	"github.com/taskflow-project/taskflow/lib/schema/user"
	"github.com/taskflow-project/taskflow/lib/token"
)

// ErrNotAuthenticated is returned by CurrentUser when no token is
// stored. The check happens before any network call — an anonymous
// client never hits /auth/me.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService performs authentication operations and owns the token
// side effects: login and register persist the returned token, and
// logout clears it.
type AuthService struct {
	client *api.Client
	tokens *token.Store
}

// NewAuthService creates an AuthService. The token store must be the
// same one the API client reads its bearer token from.
func NewAuthService(client *api.Client, tokens *token.Store) *AuthService {
	return &AuthService{client: client, tokens: tokens}
}

// Login authenticates with email and password. On success the
// returned token is persisted so subsequent requests carry it.
func (s *AuthService) Login(ctx context.Context, credentials user.LoginDto) (user.AuthResponse, error) {
	if err := credentials.Validate(); err != nil {
		return user.AuthResponse{}, err
	}
	var response user.AuthResponse
	if err := s.client.Post(ctx, "/auth/login", credentials, &response); err != nil {
		return user.AuthResponse{}, err
	}
	if err := s.tokens.Set(response.Token); err != nil {
		return user.AuthResponse{}, err
	}
	return response, nil
}

// Register creates a new account. Like Login, the returned token is
// persisted as a side effect.
func (s *AuthService) Register(ctx context.Context, registration user.RegisterDto) (user.AuthResponse, error) {
	if err := registration.Validate(); err != nil {
		return user.AuthResponse{}, err
	}
	var response user.AuthResponse
	if err := s.client.Post(ctx, "/auth/register", registration, &response); err != nil {
		return user.AuthResponse{}, err
	}
	if err := s.tokens.Set(response.Token); err != nil {
		return user.AuthResponse{}, err
	}
	return response, nil
}

// CurrentUser resolves the stored token to a user via /auth/me.
// Fails with ErrNotAuthenticated when no token is stored, without
// contacting the server.
func (s *AuthService) CurrentUser(ctx context.Context) (user.User, error) {
	if !s.tokens.Has() {
		return user.User{}, ErrNotAuthenticated
	}
	var current user.User
	if err := s.client.Get(ctx, "/auth/me", nil, &current); err != nil {
		return user.User{}, err
	}
	return current, nil
}

// Logout clears the stored token. The token is not invalidated
// server-side; it simply stops being sent.
func (s *AuthService) Logout() {
	// Clear only fails on filesystem errors; a failed removal leaves
	// the user signed in on next start, which is harmless.
	_ = s.tokens.Clear()
}
