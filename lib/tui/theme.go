// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-project/taskflow/lib/schema/task"
)

// Theme defines the color palette for TaskFlow's terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and the two semantic axes of a task: status (not started, in
// progress, completed) and priority level (low, medium, high).
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Status colors.
	StatusNotStarted lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusCompleted  lipgloss.Color

	// Priority level colors, indexed by task.Level.
	LevelLow    lipgloss.Color
	LevelMedium lipgloss.Color
	LevelHigh   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	ErrorText        lipgloss.Color

	// Animation accents: background tint for recently-changed rows.
	// HotAccentPut is used for created/updated items; HotAccentRemove
	// for items that left the view.
	HotAccentPut    lipgloss.Color
	HotAccentRemove lipgloss.Color

	// Filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Overlay boxes (dropdowns, modals).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// StatusColor returns the color for a task status. Unknown values
// return FaintText.
func (theme Theme) StatusColor(status task.Status) lipgloss.Color {
	switch status {
	case task.StatusNotStarted:
		return theme.StatusNotStarted
	case task.StatusInProgress:
		return theme.StatusInProgress
	case task.StatusCompleted:
		return theme.StatusCompleted
	default:
		return theme.FaintText
	}
}

// LevelColor returns the color for a priority level. Unknown values
// return NormalText.
func (theme Theme) LevelColor(level task.Level) lipgloss.Color {
	switch level {
	case task.LevelLow:
		return theme.LevelLow
	case task.LevelMedium:
		return theme.LevelMedium
	case task.LevelHigh:
		return theme.LevelHigh
	default:
		return theme.NormalText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusNotStarted: lipgloss.Color("245"), // gray
	StatusInProgress: lipgloss.Color("220"), // yellow/amber
	StatusCompleted:  lipgloss.Color("114"), // green

	LevelLow:    lipgloss.Color("245"), // gray
	LevelMedium: lipgloss.Color("75"),  // blue
	LevelHigh:   lipgloss.Color("196"), // bright red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	ErrorText:        lipgloss.Color("196"),

	HotAccentPut:    lipgloss.Color("58"), // dark amber background tint
	HotAccentRemove: lipgloss.Color("52"), // dark red background tint

	SearchHighlightBackground: lipgloss.Color("58"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
