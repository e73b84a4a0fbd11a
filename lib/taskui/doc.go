// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskui implements the TaskFlow dashboard: a full-screen
// bubbletea application with three tabs (tasks, categories, overview),
// a two-pane task view with markdown detail rendering, inline status
// and level mutation via dropdown overlays, and create/edit forms.
//
// The dashboard reads through lib/store, so every list it shows is
// the same optimistically-patched cache the rest of the client uses.
// Store events arrive through the bubbletea message loop and ignite
// a short glow animation on changed rows.
//
// Screens gate on the session: while the initial auth check resolves
// the dashboard shows a placeholder, then either the login screen or
// the task list. A stored snapshot, when present and owned by the
// signed-in user, paints the first frame before the network fetch
// lands.
package taskui
