// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package apierror defines the single error shape produced by the API
// client and the formatter that turns any failure into one
// user-facing message.
//
// Every failed request leaves the client as an *Error tagged with a
// Kind (validation, server, transport, unknown), so callers branch on
// the tag instead of probing response shapes. Format implements the
// user-visible message policy: field-level validation errors first,
// then the server's own message, then a fixed sentence per HTTP
// status, then connectivity and unknown fallbacks.
package apierror
