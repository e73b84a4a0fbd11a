// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the TaskFlow dashboard. Built on bubbletea (Elm architecture), these
// components handle common patterns: dropdown overlays, rectangular
// overlay splicing, scrollbars, change-glow animation, and fuzzy
// matching for the list filter.
//
// The dashboard itself lives in lib/taskui and imports this package
// for consistent look and behavior. The split keeps generic widgets
// reusable by future viewers (a category browser, an activity feed)
// without dragging in task-specific rendering.
package tui
