// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taskflow-project/taskflow/lib/apierror"
)

// DefaultBaseURL is used when no base URL is configured. Matches the
// API server's development default.
const DefaultBaseURL = "http://localhost:3500/api/v1"

// DefaultTimeout bounds every request. There are no retries and no
// mid-flight cancellation beyond this: a request runs to completion
// or times out.
const DefaultTimeout = 10 * time.Second

// maxResponseSize caps response body reads. The API returns entity
// lists, not bulk data; anything larger than this is a server fault.
const maxResponseSize = 10 << 20 // 10 MiB

// TokenSource supplies the bearer token for outgoing requests. The
// second return value is false when no token is stored, in which case
// the request goes out unauthenticated.
type TokenSource interface {
	Token() (string, bool)
}

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the API base URL (e.g. "http://localhost:3500/api/v1").
	// If empty, DefaultBaseURL is used.
	BaseURL string
	// Tokens supplies the bearer token. If nil, requests are always
	// unauthenticated.
	Tokens TokenSource
	// HTTPClient is used for all requests. If nil, a client with
	// DefaultTimeout is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is the configured TaskFlow API client.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client. The base URL is validated and stored
// with its trailing slash stripped; request URLs are built by direct
// concatenation to avoid re-encoding surprises with url.URL.String().
func NewClient(config ClientConfig) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("api: invalid base URL %q: %w", baseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     config.Tokens,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Get performs a GET request. query may be nil. out may be nil when
// the response body is irrelevant.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, requestBody, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, requestBody, out)
}

// Patch performs a PATCH request with a partial JSON body.
func (c *Client) Patch(ctx context.Context, path string, requestBody, out any) error {
	return c.doRequest(ctx, http.MethodPatch, path, nil, requestBody, out)
}

// Delete performs a DELETE request. The response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil)
}

// errorBody is the JSON shape of every API error response.
type errorBody struct {
	Message string                     `json:"message"`
	Errors  []apierror.ValidationError `json:"errors"`
}

// doRequest is the single funnel for all requests. Success responses
// are decoded into out; every failure is normalized into exactly one
// *apierror.Error so callers never see a second error shape.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody, out any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tokenValue, ok := c.tokens.Token(); ok {
			request.Header.Set("Authorization", "Bearer "+tokenValue)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		// No response at all — dial failure, timeout, reset. This is
		// the only place transport errors are classified.
		return &apierror.Error{Kind: apierror.KindTransport, Cause: err}
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return &apierror.Error{Kind: apierror.KindTransport, Cause: err}
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out == nil || len(responseBody) == 0 {
			return nil
		}
		if err := json.Unmarshal(responseBody, out); err != nil {
			return fmt.Errorf("api: parsing %s %s response: %w", method, path, err)
		}
		return nil
	}

	c.logger.Debug("api request failed",
		"method", method,
		"path", path,
		"status", response.StatusCode,
	)

	// All API error responses use the same JSON shape. A non-JSON
	// body (proxy error page, crash output) still yields a tagged
	// error with the status attached.
	var parsed errorBody
	_ = json.Unmarshal(responseBody, &parsed)

	kind := apierror.KindServer
	if len(parsed.Errors) > 0 {
		kind = apierror.KindValidation
	}
	return &apierror.Error{
		Kind:       kind,
		StatusCode: response.StatusCode,
		Message:    parsed.Message,
		Errors:     parsed.Errors,
	}
}
