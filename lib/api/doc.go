// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client for the TaskFlow REST API.
//
// One Client instance serves the whole process: it holds the base
// URL, a fixed request timeout, and a token source consulted on every
// request to attach the bearer credential. All verbs funnel through a
// single request path, so every failure — validation, 5xx, or a
// request that never got a response — reaches the caller as the same
// *apierror.Error shape.
package api
