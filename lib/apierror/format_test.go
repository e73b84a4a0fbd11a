// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package apierror

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatValidationErrors(t *testing.T) {
	single := &Error{
		Kind:       KindValidation,
		StatusCode: 422,
		Errors: []ValidationError{
			{Field: "title", Rule: "required"},
		},
	}
	got := Format(single)
	if got != "Title: this field is required" {
		t.Fatalf("single validation error: got %q", got)
	}

	multiple := &Error{
		Kind:       KindValidation,
		StatusCode: 422,
		Errors: []ValidationError{
			{Field: "email", Rule: "email"},
			{Field: "password", Rule: "minLength", Message: "must be at least 8 characters"},
			{Field: "nickname", Rule: "strange-rule"},
		},
	}
	got = Format(multiple)
	if !strings.HasPrefix(got, "Validation errors:") {
		t.Fatalf("missing header: %q", got)
	}
	// Server-provided message wins over the rule default.
	if !strings.Contains(got, "Password: must be at least 8 characters") {
		t.Errorf("server message not used: %q", got)
	}
	// Unknown field names pass through raw; unknown rules get the
	// generic sentence.
	if !strings.Contains(got, "nickname: the value is not valid") {
		t.Errorf("unknown field/rule fallback wrong: %q", got)
	}
	// Input order is preserved.
	if strings.Index(got, "Email") > strings.Index(got, "Password") {
		t.Errorf("field order not preserved: %q", got)
	}
}

func TestFormatServerMessageBeatsStatusSentence(t *testing.T) {
	err := &Error{Kind: KindServer, StatusCode: 409, Message: "a task with this title already exists"}
	if got := Format(err); got != "a task with this title already exists" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatStatusSentences(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{401, "You must be signed in to perform this action."},
		{404, "The requested resource could not be found."},
		{500, "A server error occurred. Please try again in a few moments."},
		{418, "Error 418: something went wrong."},
	}
	for _, test := range tests {
		err := &Error{Kind: KindServer, StatusCode: test.status}
		if got := Format(err); got != test.want {
			t.Errorf("status %d: got %q, want %q", test.status, got, test.want)
		}
	}
}

func TestFormatTransport(t *testing.T) {
	err := &Error{Kind: KindTransport, Cause: errors.New("dial tcp: connection refused")}
	if got := Format(err); got != TransportMessage {
		t.Fatalf("got %q, want transport message", got)
	}
}

func TestFormatWrappedError(t *testing.T) {
	// Format must see through wrapping layers added by callers.
	inner := &Error{Kind: KindServer, StatusCode: 403}
	wrapped := errorsJoin("context: ", inner)
	if got := Format(wrapped); got != "You do not have permission to perform this action." {
		t.Fatalf("got %q", got)
	}
}

func errorsJoin(prefix string, err error) error {
	return &wrapError{prefix: prefix, err: err}
}

type wrapError struct {
	prefix string
	err    error
}

func (w *wrapError) Error() string { return w.prefix + w.err.Error() }
func (w *wrapError) Unwrap() error { return w.err }

func TestFormatPlainAndNilErrors(t *testing.T) {
	if got := Format(errors.New("boom")); got != "boom" {
		t.Errorf("plain error: got %q", got)
	}
	if got := Format(nil); got != UnknownMessage {
		t.Errorf("nil error: got %q", got)
	}
}
