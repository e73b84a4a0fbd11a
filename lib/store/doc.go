// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

// Package store holds the client-side entity caches that sit between
// the services and the UI.
//
// Each store caches one fetch result — a task or category list under
// a filter, or a single entity by ID — together with a loading flag
// and a formatted error string. Mutations call the service and, on
// success, patch the cached list in place (prepend on create, replace
// by ID on update, drop by ID on delete) instead of refetching. The
// server may apply side effects beyond the echoed entity, so the
// cache can drift from server truth until the next refetch; that is
// accepted for this client.
//
// Fetches carry sequence numbers: when a filter changes while a fetch
// is in flight, the stale response is discarded rather than allowed
// to overwrite the newer result. Stores are safe for concurrent use
// and dispatch change events to subscribers for live UIs.
package store
