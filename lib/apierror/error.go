// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies how a request failed.
type Kind string

const (
	// KindValidation is a non-2xx response carrying field-level
	// validation errors.
	KindValidation Kind = "validation"
	// KindServer is any other non-2xx response.
	KindServer Kind = "server"
	// KindTransport means no response was received at all (dial
	// failure, timeout, connection reset mid-body).
	KindTransport Kind = "transport"
	// KindUnknown covers failures that fit none of the above.
	KindUnknown Kind = "unknown"
)

// ValidationError is one field-level error from the API's validation
// response. Rule names the violated constraint (required, email,
// minLength, ...) and drives the default message when Message is
// empty.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

// Error is the one error shape every API failure is normalized into.
// It is constructed exactly once, at the API client boundary.
type Error struct {
	// Kind tags the failure class.
	Kind Kind

	// StatusCode is the HTTP status, or 0 when no response was
	// received.
	StatusCode int

	// Message is the server-provided message field, if any.
	Message string

	// Errors holds field-level validation errors. Non-empty implies
	// Kind == KindValidation.
	Errors []ValidationError

	// Cause is the underlying transport error, if any.
	Cause error
}

// Error returns a terse developer-facing description. User-facing
// text comes from Format.
func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		if e.Cause != nil {
			return fmt.Sprintf("api: no response: %v", e.Cause)
		}
		return "api: no response from server"
	case KindValidation:
		return fmt.Sprintf("api: %d %s: %d validation error(s)",
			e.StatusCode, http.StatusText(e.StatusCode), len(e.Errors))
	default:
		if e.Message != "" {
			return fmt.Sprintf("api: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
		}
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
}

// Unwrap exposes the underlying transport error for errors.Is checks
// (context.DeadlineExceeded, net errors).
func (e *Error) Unwrap() error { return e.Cause }

// statusIs reports whether err is an *Error with the given HTTP
// status.
func statusIs(err error, status int) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == status
}

// IsAuth reports whether err is an authentication failure (401).
func IsAuth(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsPermission reports whether err is a permission failure (403).
func IsPermission(err error) bool { return statusIs(err, http.StatusForbidden) }

// IsNotFound reports whether err is a missing-resource failure (404).
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }
