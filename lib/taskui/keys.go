// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the dashboard.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or detail
	// scrolling depending on current focus).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Focus switching between the list and detail panes.
	FocusToggle key.Binding

	// Splitter resize.
	SplitGrow   key.Binding // Grow list pane (push detail right).
	SplitShrink key.Binding // Shrink list pane (push detail left).

	// Tab switching.
	TabTasks      key.Binding
	TabCategories key.Binding
	TabOverview   key.Binding

	// Filter.
	FilterActivate key.Binding // Enter filter mode.
	FilterClear    key.Binding // Clear filter and exit filter mode.

	// Server-side refinement.
	CycleStatus key.Binding // Cycle the status filter sent to the server.
	CycleLevel  key.Binding // Cycle the level filter sent to the server.
	CycleSort   key.Binding // Toggle createdAt/updatedAt sort.

	// Mutations.
	New         key.Binding // Open the create form.
	Edit        key.Binding // Open the edit form for the selected item.
	Delete      key.Binding // Delete the selected item (with confirm).
	Status      key.Binding // Open the status dropdown for the selected task.
	Level       key.Binding // Open the level dropdown for the selected task.
	ToggleDone  key.Binding // Quick-complete / reopen the selected task.
	Description key.Binding // Open the description editor modal.

	Refresh key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	SplitGrow: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "grow list"),
	),
	SplitShrink: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "shrink list"),
	),
	TabTasks: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "tasks"),
	),
	TabCategories: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "categories"),
	),
	TabOverview: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "overview"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "status filter"),
	),
	CycleLevel: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "level filter"),
	),
	CycleSort: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	Level: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "level"),
	),
	ToggleDone: key.NewBinding(
		key.WithKeys("x", " "),
		key.WithHelp("x", "toggle done"),
	),
	Description: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "description"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
