// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/taskflow-project/taskflow/lib/api"
	"github.com/taskflow-project/taskflow/lib/schema/user"
	"github.com/taskflow-project/taskflow/lib/service"
	"github.com/taskflow-project/taskflow/lib/testutil"
	"github.com/taskflow-project/taskflow/lib/token"
)

func newTestSession(t *testing.T, server *testutil.APIServer) (*Session, *token.Store) {
	t.Helper()
	tokens := token.NewStore(filepath.Join(t.TempDir(), "session.json"))
	client, err := api.NewClient(api.ClientConfig{
		BaseURL: server.URL(),
		Tokens:  tokens,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	auth := service.NewAuthService(client, tokens)
	return New(auth, tokens, nil), tokens
}

func TestSessionInitWithoutTokenIsOffline(t *testing.T) {
	server := testutil.NewAPIServer(t)
	sess, _ := newTestSession(t, server)

	if sess.State() != StateLoading {
		t.Fatal("new session should be loading")
	}
	if sess.Gate() != GatePending {
		t.Fatal("loading session should gate pending")
	}

	sess.Init(context.Background())

	if sess.State() != StateAnonymous {
		t.Fatalf("state = %v", sess.State())
	}
	if sess.Gate() != GateRedirectLogin {
		t.Error("anonymous session should redirect to login")
	}
	// No token means no /auth/me call.
	if got := len(server.Requests()); got != 0 {
		t.Errorf("%d requests sent without a token", got)
	}
}

func TestSessionInitWithValidToken(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /auth/me", http.StatusOK, map[string]string{
		"id": "u1", "username": "ada", "email": "ada@example.com",
	})

	sess, tokens := newTestSession(t, server)
	if err := tokens.Set("stored-token"); err != nil {
		t.Fatal(err)
	}

	sess.Init(context.Background())

	if sess.State() != StateAuthenticated {
		t.Fatalf("state = %v", sess.State())
	}
	if sess.Gate() != GateAllow {
		t.Error("authenticated session should gate allow")
	}
	current, ok := sess.User()
	if !ok || current.Username != "ada" {
		t.Errorf("User() = %+v, %v", current, ok)
	}

	request, _ := server.LastRequest()
	if request.Bearer != "stored-token" {
		t.Errorf("auth check bearer = %q", request.Bearer)
	}
}

func TestSessionInitClearsRejectedToken(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /auth/me", http.StatusUnauthorized, map[string]string{
		"message": "token expired",
	})

	sess, tokens := newTestSession(t, server)
	if err := tokens.Set("expired-token"); err != nil {
		t.Fatal(err)
	}

	sess.Init(context.Background())

	if sess.State() != StateAnonymous {
		t.Fatalf("state = %v", sess.State())
	}
	if tokens.Has() {
		t.Error("rejected token not cleared")
	}
}

func TestSessionLoginAndLogout(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("POST /auth/login", http.StatusOK, map[string]any{
		"user":  map[string]string{"id": "u1", "username": "ada", "email": "ada@example.com"},
		"token": "fresh-token",
	})

	sess, tokens := newTestSession(t, server)
	sess.Init(context.Background())

	err := sess.Login(context.Background(), user.LoginDto{
		Email:    "ada@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Fatal("not authenticated after login")
	}
	if got, ok := tokens.Get(); !ok || got != "fresh-token" {
		t.Errorf("token = %q, %v", got, ok)
	}

	sess.Logout()
	if sess.State() != StateAnonymous {
		t.Errorf("state after logout = %v", sess.State())
	}
	if tokens.Has() {
		t.Error("token survived logout")
	}
	if _, ok := sess.User(); ok {
		t.Error("User() still returns a user after logout")
	}
}

func TestSessionLoginFailureLeavesState(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("POST /auth/login", http.StatusUnauthorized, map[string]string{
		"message": "invalid credentials",
	})

	sess, tokens := newTestSession(t, server)
	sess.Init(context.Background())

	err := sess.Login(context.Background(), user.LoginDto{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if sess.State() != StateAnonymous {
		t.Errorf("state after failed login = %v", sess.State())
	}
	if tokens.Has() {
		t.Error("failed login stored a token")
	}
}

func TestSessionRegister(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("POST /auth/register", http.StatusCreated, map[string]any{
		"user":  map[string]string{"id": "u2", "username": "grace", "email": "grace@example.com"},
		"token": "new-account-token",
	})

	sess, tokens := newTestSession(t, server)
	sess.Init(context.Background())

	err := sess.Register(context.Background(), user.RegisterDto{
		Username: "grace",
		Email:    "grace@example.com",
		Password: "hopper123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if current, ok := sess.User(); !ok || current.Username != "grace" {
		t.Errorf("User() = %+v, %v", current, ok)
	}
	if got, _ := tokens.Get(); got != "new-account-token" {
		t.Errorf("token = %q", got)
	}
}

func TestSessionLoginValidatesLocally(t *testing.T) {
	server := testutil.NewAPIServer(t)
	sess, _ := newTestSession(t, server)
	sess.Init(context.Background())

	if err := sess.Login(context.Background(), user.LoginDto{}); err == nil {
		t.Fatal("empty credentials accepted")
	}
	if got := len(server.Requests()); got != 0 {
		t.Errorf("%d requests sent for invalid credentials", got)
	}
}
