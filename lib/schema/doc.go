// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema is the parent for the API entity packages. Each
// subpackage defines one resource family: its wire structs, request
// DTOs with client-side validation, and list filters.
//
//   - [github.com/taskflow-project/taskflow/lib/schema/task]: tasks, statuses,
//     priority levels
//   - [github.com/taskflow-project/taskflow/lib/schema/category]: task
//     grouping labels
//   - [github.com/taskflow-project/taskflow/lib/schema/user]: accounts and
//     authentication DTOs
//
// These packages depend on nothing else in the module; everything
// above them (api, service, store, taskui) depends on them.
package schema
