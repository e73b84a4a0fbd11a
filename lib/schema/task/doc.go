// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package task defines the task wire types shared between the API
// client, the entity stores, and the terminal UI: the Task entity,
// its status and priority-level enums, and the DTOs for each REST
// operation.
package task
