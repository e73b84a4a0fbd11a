// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package user

import (
	"fmt"
	"strings"
	"time"
)

// User is an account as returned by the API. The password never
// appears in responses; this struct has no field for it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginDto is the request body for POST /auth/login.
type LoginDto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both credentials are present. The server does
// the real validation; this only catches guaranteed rejections.
func (d LoginDto) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("email must not be empty")
	}
	if d.Password == "" {
		return fmt.Errorf("password must not be empty")
	}
	return nil
}

// RegisterDto is the request body for POST /auth/register.
type RegisterDto struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that all three fields are present.
func (d RegisterDto) Validate() error {
	if strings.TrimSpace(d.Username) == "" {
		return fmt.Errorf("username must not be empty")
	}
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("email must not be empty")
	}
	if d.Password == "" {
		return fmt.Errorf("password must not be empty")
	}
	return nil
}

// AuthResponse is the body returned by both login and register: the
// authenticated user plus a bearer token for subsequent requests.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
