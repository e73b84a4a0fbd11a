// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Wire value sent to the service on selection.
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. It captures all keyboard input when active (up/down to
// navigate, enter to select, escape to dismiss). The model owns the
// dropdown instance and routes input to it while it is visible.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int    // Screen X coordinate of the dropdown's top-left corner.
	AnchorY int    // Screen Y coordinate of the dropdown's top-left corner.
	Field   string // Which field this dropdown mutates (e.g. "status", "level").
	ItemID  string // The item being mutated.
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the total visible width of the rendered dropdown in
// columns. This matches the width used by Render.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := 0
	for _, option := range dropdown.Options {
		labelWidth := ansi.StringWidth(option.Label)
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// Layout: " > LABEL " — marker + space prefix, label, and 1 char
	// padding on each side.
	return 3 + maxLabelWidth + 2
}

// Render produces the dropdown lines for overlay splicing. Each line
// has the same visible width and a solid background for visual
// separation from the underlying content. The currently highlighted
// option uses a contrasting background.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()
	innerWidth := totalWidth - 2

	backgroundStyle := lipgloss.NewStyle().
		Foreground(theme.OverlayForeground).
		Background(theme.OverlayBackground)
	selectedBackground := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	for index, option := range dropdown.Options {
		marker := " "
		if index == dropdown.Cursor {
			marker = ">"
		}

		content := marker + " " + option.Label
		rightPad := innerWidth - ansi.StringWidth(content)
		if rightPad < 0 {
			rightPad = 0
		}
		padded := " " + content + strings.Repeat(" ", rightPad) + " "

		if index == dropdown.Cursor {
			lines = append(lines, selectedBackground.Render(padded))
		} else {
			lines = append(lines, backgroundStyle.Render(padded))
		}
	}

	return lines
}
