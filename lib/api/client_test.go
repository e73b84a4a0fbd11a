// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/testutil"
)

type staticTokens string

func (t staticTokens) Token() (string, bool) { return string(t), t != "" }

func newTestClient(t *testing.T, server *testutil.APIServer, tokens TokenSource) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{
		BaseURL: server.URL(),
		Tokens:  tokens,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestClientGetDecodesResponse(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, map[string]any{
		"data": []map[string]any{{"id": "t1", "title": "write tests"}},
	})

	client := newTestClient(t, server, staticTokens("tok-123"))

	var out struct {
		Data []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	query := url.Values{"status": {"IN_PROGRESS"}}
	if err := client.Get(context.Background(), "/tasks", query, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out.Data) != 1 || out.Data[0].Title != "write tests" {
		t.Fatalf("decoded %+v", out)
	}

	request, ok := server.LastRequest()
	if !ok {
		t.Fatal("no request recorded")
	}
	if request.Bearer != "tok-123" {
		t.Errorf("bearer = %q", request.Bearer)
	}
	if got := request.Query.Get("status"); got != "IN_PROGRESS" {
		t.Errorf("query status = %q", got)
	}
}

func TestClientPostSendsJSONBody(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("POST /tasks", http.StatusCreated, map[string]string{"id": "t2"})

	client := newTestClient(t, server, nil)

	var out struct {
		ID string `json:"id"`
	}
	err := client.Post(context.Background(), "/tasks", map[string]string{"title": "new"}, &out)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if out.ID != "t2" {
		t.Fatalf("out.ID = %q", out.ID)
	}

	request, _ := server.LastRequest()
	if !strings.Contains(string(request.Body), `"title":"new"`) {
		t.Errorf("body = %s", request.Body)
	}
	if request.Bearer != "" {
		t.Errorf("unauthenticated request carried bearer %q", request.Bearer)
	}
}

func TestClientDeleteIgnoresBody(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("DELETE /tasks/t1", http.StatusNoContent, nil)

	client := newTestClient(t, server, nil)
	if err := client.Delete(context.Background(), "/tasks/t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestClientValidationErrorKind(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("POST /tasks", http.StatusUnprocessableEntity, map[string]any{
		"message": "validation failed",
		"errors": []map[string]string{
			{"field": "title", "rule": "required"},
		},
	})

	client := newTestClient(t, server, nil)
	err := client.Post(context.Background(), "/tasks", map[string]string{}, nil)

	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T: %v", err, err)
	}
	if apiErr.Kind != apierror.KindValidation {
		t.Errorf("kind = %q", apiErr.Kind)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if len(apiErr.Errors) != 1 || apiErr.Errors[0].Field != "title" {
		t.Errorf("errors = %+v", apiErr.Errors)
	}
}

func TestClientServerErrorKind(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks/missing", http.StatusNotFound, map[string]string{
		"message": "task not found",
	})

	client := newTestClient(t, server, nil)
	err := client.Get(context.Background(), "/tasks/missing", nil, nil)

	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T: %v", err, err)
	}
	if apiErr.Kind != apierror.KindServer {
		t.Errorf("kind = %q", apiErr.Kind)
	}
	if !apierror.IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
	if apiErr.Message != "task not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClientNonJSONErrorBody(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	client := newTestClient(t, server, nil)
	err := client.Get(context.Background(), "/tasks", nil, nil)

	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T: %v", err, err)
	}
	if apiErr.Kind != apierror.KindServer || apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("got kind=%q status=%d", apiErr.Kind, apiErr.StatusCode)
	}
}

func TestClientTransportErrorKind(t *testing.T) {
	// Point at a server that has already shut down so the dial fails.
	server := testutil.NewAPIServer(t)
	baseURL := server.URL()
	server.Server.Close()

	client, err := NewClient(ClientConfig{BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	err = client.Get(context.Background(), "/tasks", nil, nil)
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T: %v", err, err)
	}
	if apiErr.Kind != apierror.KindTransport {
		t.Errorf("kind = %q", apiErr.Kind)
	}
	if apiErr.Cause == nil {
		t.Error("transport error lost its cause")
	}
}

func TestClientContextCancellation(t *testing.T) {
	server := testutil.NewAPIServer(t)
	server.HandleJSON("GET /tasks", http.StatusOK, nil)

	client := newTestClient(t, server, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.Get(ctx, "/tasks", nil, nil)

	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || apiErr.Kind != apierror.KindTransport {
		t.Fatalf("cancelled request: got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cause chain lost context.Canceled: %v", err)
	}
}

func TestNewClientDefaultsAndBaseURLTrim(t *testing.T) {
	client, err := NewClient(ClientConfig{BaseURL: "http://localhost:3500/api/v1/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.baseURL != "http://localhost:3500/api/v1" {
		t.Errorf("baseURL = %q", client.baseURL)
	}

	client, err = NewClient(ClientConfig{})
	if err != nil {
		t.Fatalf("NewClient with defaults: %v", err)
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("default baseURL = %q", client.baseURL)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("default timeout = %v", client.httpClient.Timeout)
	}
}
