// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the taskflow command tree: auth commands
// (login, register, logout, whoami), task and category CRUD, and the
// interactive dashboard. Each command builds its service wiring from
// the shared [app] helper so configuration and token handling behave
// identically everywhere.
package commands
