// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// Dropdown field identifiers. Stored in the overlay so the selection
// handler knows which mutation to dispatch.
const (
	dropdownFieldStatus   = "status"
	dropdownFieldLevel    = "level"
	dropdownFieldCategory = "category"
)

// dropdownSelectMsg is sent when the user selects a dropdown option.
// The model handles this message to dispatch the mutation.
type dropdownSelectMsg struct {
	field  string
	taskID string
	value  string
}

// statusOptions returns the dropdown options for the status field.
// Every status is always reachable; the API has no transition rules.
// The current status is omitted since selecting it would be a no-op.
func statusOptions(current task.Status) []tui.DropdownOption {
	var options []tui.DropdownOption
	for _, status := range task.Statuses() {
		if status == current {
			continue
		}
		options = append(options, tui.DropdownOption{
			Label: status.Label(),
			Value: string(status),
		})
	}
	return options
}

// levelOptions returns the dropdown options for the level field.
func levelOptions(current task.Level) []tui.DropdownOption {
	var options []tui.DropdownOption
	for _, level := range task.Levels() {
		if level == current {
			continue
		}
		options = append(options, tui.DropdownOption{
			Label: level.Label(),
			Value: string(level),
		})
	}
	return options
}
