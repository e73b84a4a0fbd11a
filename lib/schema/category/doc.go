// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package category defines the category wire types: the Category
// entity and the DTOs for each REST operation. Categories are flat
// labels referenced weakly by tasks.
package category
