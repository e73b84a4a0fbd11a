// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Taskflow is the unified CLI for the TaskFlow API. It provides
// subcommands for authentication (login, register, logout, whoami),
// scriptable task and category management, and the interactive
// terminal dashboard.
package main
