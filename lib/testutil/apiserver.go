// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// RecordedRequest is one request the fake API server received.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	// Bearer is the token from the Authorization header, without the
	// "Bearer " prefix. Empty when the request was unauthenticated.
	Bearer string
	Body   []byte
}

// APIServer is an in-process fake of the TaskFlow REST API. Routes are
// registered with canned JSON responses; every request is recorded for
// later inspection.
type APIServer struct {
	Server *httptest.Server
	mux    *http.ServeMux

	mutex    sync.Mutex
	requests []RecordedRequest
}

// NewAPIServer starts a fake API server. It is shut down automatically
// when the test completes.
func NewAPIServer(t *testing.T) *APIServer {
	t.Helper()
	server := &APIServer{mux: http.NewServeMux()}
	server.Server = httptest.NewServer(http.HandlerFunc(server.record))
	t.Cleanup(server.Server.Close)
	return server
}

// URL returns the server's base URL, usable as the client's BaseURL.
func (s *APIServer) URL() string { return s.Server.URL }

// HandleJSON registers a canned response for a pattern like
// "GET /tasks" or "POST /auth/login". The body is marshaled once per
// request; pass nil for an empty body.
func (s *APIServer) HandleJSON(pattern string, status int, body any) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

// HandleFunc registers a raw handler for cases the canned-response
// helper cannot express (per-request bodies, assertions inline).
func (s *APIServer) HandleFunc(pattern string, handler http.HandlerFunc) {
	s.mux.HandleFunc(pattern, handler)
}

// Requests returns a copy of all recorded requests in arrival order.
func (s *APIServer) Requests() []RecordedRequest {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or false when none
// arrived yet.
func (s *APIServer) LastRequest() (RecordedRequest, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *APIServer) record(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(strings.NewReader(string(body)))

	bearer := ""
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		bearer = strings.TrimPrefix(auth, "Bearer ")
	}

	s.mutex.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Bearer: bearer,
		Body:   body,
	})
	s.mutex.Unlock()

	s.mux.ServeHTTP(w, r)
}
