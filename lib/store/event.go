// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package store

// EventKind distinguishes the change events a store dispatches.
type EventKind string

const (
	// EventRefresh means the whole cached list was replaced by a
	// fetch, or the loading/error state changed.
	EventRefresh EventKind = "refresh"
	// EventPut means one entity was created or updated in place.
	EventPut EventKind = "put"
	// EventRemove means one entity left the cached list.
	EventRemove EventKind = "remove"
)

// Event describes a single change to a store, delivered via Subscribe
// for live-updating UIs. ID is empty for refresh events.
type Event struct {
	Kind EventKind
	ID   string
}

// dispatch sends an event to every subscriber without blocking. A
// subscriber with a full buffer misses the event; the UI picks up
// current state on its next snapshot read, so drops are harmless.
func dispatch(subscribers []chan Event, event Event) {
	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
}
