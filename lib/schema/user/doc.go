// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package user defines the user and authentication wire types. The
// API never returns a password field; User is the response shape.
package user
