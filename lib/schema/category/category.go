// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package category

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Category is a task grouping label as returned by the API.
type Category struct {
	// ID is the opaque server-assigned identifier.
	ID string `json:"id"`

	// Name is the display name. Non-empty after trimming.
	Name string `json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntityID returns the category's identifier. Satisfies the store's
// identifiable constraint.
func (c Category) EntityID() string { return c.ID }

// CreateDto is the request body for POST /categories.
type CreateDto struct {
	Name string `json:"name"`
}

// Validate checks the client-side invariants before the request is
// sent.
func (d CreateDto) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("category name must not be empty")
	}
	return nil
}

// UpdateDto is the request body for PATCH /categories/:id. Nil
// fields are omitted so the server leaves them unchanged.
type UpdateDto struct {
	Name *string `json:"name,omitempty"`
}

// Validate checks the set fields against the same invariants as
// CreateDto.
func (d UpdateDto) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return fmt.Errorf("category name must not be empty")
	}
	return nil
}

// Filter selects categories for GET /categories. Comparable value
// type, like the task filter.
type Filter struct {
	Name string
}

// Query serializes the filter as URL query parameters, omitting
// unset fields.
func (f Filter) Query() url.Values {
	query := url.Values{}
	if f.Name != "" {
		query.Set("name", f.Name)
	}
	return query
}
