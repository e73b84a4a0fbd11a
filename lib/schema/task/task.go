// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Status is the lifecycle state of a task. The three values are fixed
// by the API contract; the server rejects anything else.
type Status string

const (
	// StatusNotStarted is the initial state of a newly created task.
	StatusNotStarted Status = "NOT_STARTED"
	// StatusInProgress marks a task being actively worked on.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusCompleted marks a finished task.
	StatusCompleted Status = "COMPLETED"
)

// Statuses returns all valid statuses in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// Valid reports whether the status is one of the three API values.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human-readable form shown in the UI.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseStatus parses a user-supplied status string. Accepts the wire
// form ("IN_PROGRESS") case-insensitively and the hyphenated form
// users tend to type on the command line ("in-progress").
func ParseStatus(input string) (Status, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(input), "-", "_"))
	status := Status(normalized)
	if !status.Valid() {
		return "", fmt.Errorf("invalid status %q (valid: NOT_STARTED, IN_PROGRESS, COMPLETED)", input)
	}
	return status, nil
}

// Level is the priority level of a task.
type Level string

const (
	// LevelLow is the lowest priority.
	LevelLow Level = "LOW"
	// LevelMedium is the default priority.
	LevelMedium Level = "MEDIUM"
	// LevelHigh is the highest priority.
	LevelHigh Level = "HIGH"
)

// Levels returns all valid levels in ascending priority order.
func Levels() []Level {
	return []Level{LevelLow, LevelMedium, LevelHigh}
}

// Valid reports whether the level is one of the three API values.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Label returns the human-readable form shown in the UI.
func (l Level) Label() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelMedium:
		return "Medium"
	case LevelHigh:
		return "High"
	default:
		return string(l)
	}
}

// ParseLevel parses a user-supplied level string case-insensitively.
func ParseLevel(input string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(input)))
	if !level.Valid() {
		return "", fmt.Errorf("invalid level %q (valid: LOW, MEDIUM, HIGH)", input)
	}
	return level, nil
}

// Task is a work item as returned by the API. ID and the timestamps
// are assigned by the server and never modified client-side.
type Task struct {
	// ID is the opaque server-assigned identifier.
	ID string `json:"id"`

	// Title is a short summary. Non-empty after trimming.
	Title string `json:"title"`

	// Description is the full description, nullable. Rendered as
	// markdown in the dashboard detail pane.
	Description *string `json:"description"`

	// Status is the lifecycle state.
	Status Status `json:"status"`

	// Level is the priority level.
	Level Level `json:"level"`

	// CategoryID is a weak reference to a category. The client does
	// not enforce referential integrity: deleting a category leaves
	// task references dangling until the server resolves them.
	CategoryID string `json:"categoryId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntityID returns the task's identifier. Satisfies the store's
// identifiable constraint.
func (t Task) EntityID() string { return t.ID }

// CreateDto is the request body for POST /tasks. The server assigns
// ID and timestamps.
type CreateDto struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      Status  `json:"status"`
	Level       Level   `json:"level"`
	CategoryID  string  `json:"categoryId,omitempty"`
}

// Validate checks the client-side invariants before the request is
// sent. Server-side validation still applies; this only catches what
// would be a guaranteed rejection.
func (d CreateDto) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if !d.Status.Valid() {
		return fmt.Errorf("invalid status %q", d.Status)
	}
	if !d.Level.Valid() {
		return fmt.Errorf("invalid level %q", d.Level)
	}
	return nil
}

// UpdateDto is the request body for PATCH /tasks/:id. Every field is
// optional; nil fields are omitted from the JSON body so the server
// leaves them unchanged.
type UpdateDto struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Level       *Level  `json:"level,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

// Validate checks the set fields against the same invariants as
// CreateDto.
func (d UpdateDto) Validate() error {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	if d.Status != nil && !d.Status.Valid() {
		return fmt.Errorf("invalid status %q", *d.Status)
	}
	if d.Level != nil && !d.Level.Valid() {
		return fmt.Errorf("invalid level %q", *d.Level)
	}
	return nil
}

// Sort field and order values accepted by GET /tasks.
const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Filter selects and orders tasks for GET /tasks. The zero value
// means "no filtering". Filter is a comparable value type: stores
// compare filters with == to decide whether a change requires a
// refetch.
type Filter struct {
	Status Status
	Level  Level
	Search string
	Sort   string // SortCreatedAt or SortUpdatedAt.
	Order  string // OrderAsc or OrderDesc.
	Page   int
	Limit  int
}

// Query serializes the filter as URL query parameters. Only set
// fields are emitted — the server treats absent and empty
// differently for some fields, so the client never sends empties.
func (f Filter) Query() url.Values {
	query := url.Values{}
	if f.Status != "" {
		query.Set("status", string(f.Status))
	}
	if f.Level != "" {
		query.Set("level", string(f.Level))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.Sort != "" {
		query.Set("sort", f.Sort)
	}
	if f.Order != "" {
		query.Set("order", f.Order)
	}
	if f.Page > 0 {
		query.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		query.Set("limit", strconv.Itoa(f.Limit))
	}
	return query
}
