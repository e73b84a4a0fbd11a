// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the process-wide authentication state.
//
// Exactly one Session exists per running client. It is constructed
// explicitly and handed to whatever composes the UI — no package
// globals — and moves through three states: loading until the first
// check resolves, then authenticated or anonymous. Only the bearer
// token persists between runs; the user is reconstructed from
// /auth/me on every start.
//
// Gate implements the route guard: protected screens render a
// placeholder while the session is loading (never a redirect — that
// would flicker users to the login screen on every start), then
// either render or bounce to login once the state is known.
package session
