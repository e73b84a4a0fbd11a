// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package token persists the single bearer token that proves the
// user's identity to the TaskFlow API.
//
// The token lives in a session file under the user's config
// directory, mode 0600, analogous to SSH keys: sign in once with
// "taskflow login", then every command loads the token
// transparently. The store never inspects the token — a malformed or
// expired token is only discovered when the server rejects a request.
package token
