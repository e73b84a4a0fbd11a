// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the small command-tree framework used by the
// taskflow binary: a [Command] type with pflag-based flag binding,
// typo suggestions for unknown commands and flags, and shared output
// helpers. Commands are assembled into a tree in cmd/taskflow/commands
// and dispatched from main.
package cli
