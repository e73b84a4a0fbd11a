// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// Fixed column widths for the task table. The title column fills the
// remaining space.
const (
	// columnWidthLevel is the level badge plus trailing space ("HI ").
	columnWidthLevel = 3

	// columnWidthStatus is the status icon plus trailing space.
	columnWidthStatus = 2

	// maxLeftWidth is the width of everything before the title:
	// 1 (indent) + 3 (level) + 2 (status icon).
	maxLeftWidth = 6
)

// levelBadge returns the two-character level indicator shown at the
// start of each row.
func levelBadge(level task.Level) string {
	switch level {
	case task.LevelHigh:
		return "HI"
	case task.LevelMedium:
		return "MD"
	case task.LevelLow:
		return "LO"
	default:
		return "  "
	}
}

// statusIcon returns the single-character status indicator. Not
// started renders as an open circle so the column stays aligned.
func statusIcon(status task.Status) string {
	switch status {
	case task.StatusNotStarted:
		return "○"
	case task.StatusInProgress:
		return "●"
	case task.StatusCompleted:
		return "✓"
	default:
		return " "
	}
}

// ListRenderer handles the table-style rendering of task and category
// rows within a given width.
type ListRenderer struct {
	theme tui.Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme tui.Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// RenderTaskRow renders a single task as a formatted table row. The
// categoryName is the resolved name of the task's category ("" when
// uncategorized or unresolved). matchPositions contains rune indices
// in the title matched by the fuzzy filter; when non-empty those
// characters are highlighted.
//
// Row layout: indent + level badge + status icon + title [category]
//
//	HI ● Fix login redirect loop [Auth]
//	LO ○ Write onboarding docs
func (renderer ListRenderer) RenderTaskRow(entry task.Task, categoryName string, selected bool, matchPositions []int) string {
	titleWidth := renderer.width - maxLeftWidth
	if titleWidth < 10 {
		titleWidth = 10
	}

	titleText := entry.Title
	categoryText := ""
	if categoryName != "" {
		categoryText = " [" + categoryName + "]"
	}

	// Truncate title+category to fit, preferring the title.
	combined := titleText + categoryText
	if lipgloss.Width(combined) > titleWidth {
		if lipgloss.Width(titleText) >= titleWidth-1 {
			combined = truncateString(titleText, titleWidth-1) + "…"
		} else {
			combined = titleText + truncateString(categoryText, titleWidth-lipgloss.Width(titleText)-1) + "…"
		}
	}

	if selected {
		return renderer.renderSelectedTaskRow(entry, combined, matchPositions)
	}
	return renderer.renderNormalTaskRow(entry, combined, matchPositions)
}

func (renderer ListRenderer) renderNormalTaskRow(entry task.Task, titleCategory string, matchPositions []int) string {
	levelStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.LevelColor(entry.Level)).
		Bold(entry.Level == task.LevelHigh)
	statusStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.StatusColor(entry.Status))
	titleStyle := lipgloss.NewStyle().
		Foreground(renderer.theme.NormalText)
	if entry.Status == task.StatusCompleted {
		// Completed tasks recede so the active ones stand out.
		titleStyle = titleStyle.Foreground(renderer.theme.FaintText).Strikethrough(true)
	}

	var titleRendered string
	if len(matchPositions) > 0 {
		highlightStyle := titleStyle.Background(renderer.theme.SearchHighlightBackground)
		titleRendered = highlightText(titleCategory, entry.Title, matchPositions, titleStyle, highlightStyle)
	} else {
		titleRendered = titleStyle.Render(titleCategory)
	}

	row := " " +
		levelStyle.Render(levelBadge(entry.Level)) +
		" " +
		statusStyle.Render(statusIcon(entry.Status)) +
		" " +
		titleRendered

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

func (renderer ListRenderer) renderSelectedTaskRow(entry task.Task, titleCategory string, matchPositions []int) string {
	baseStyle := lipgloss.NewStyle().
		Background(renderer.theme.SelectedBackground).
		Foreground(renderer.theme.SelectedForeground)

	var titleRendered string
	if len(matchPositions) > 0 {
		// The selection background already tints the row; bold and
		// underline make matches pop against it.
		highlightStyle := baseStyle.Bold(true).Underline(true)
		titleRendered = highlightText(titleCategory, entry.Title, matchPositions, baseStyle, highlightStyle)
	} else {
		titleRendered = baseStyle.Render(titleCategory)
	}

	row := " " +
		baseStyle.Bold(true).Render(levelBadge(entry.Level)) +
		" " +
		baseStyle.Render(statusIcon(entry.Status)) +
		" " +
		titleRendered

	return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// RenderCategoryRow renders a single category with its task count.
func (renderer ListRenderer) RenderCategoryRow(entry category.Category, taskCount int, selected bool, matchPositions []int) string {
	nameWidth := renderer.width - 2
	if nameWidth < 10 {
		nameWidth = 10
	}

	countText := ""
	if taskCount == 1 {
		countText = "  (1 task)"
	} else if taskCount > 1 {
		countText = fmt.Sprintf("  (%d tasks)", taskCount)
	}

	name := entry.Name
	available := nameWidth - lipgloss.Width(countText)
	if available > 0 && lipgloss.Width(name) > available {
		name = truncateString(name, available-1) + "…"
	}

	if selected {
		baseStyle := lipgloss.NewStyle().
			Background(renderer.theme.SelectedBackground).
			Foreground(renderer.theme.SelectedForeground)
		var nameRendered string
		if len(matchPositions) > 0 {
			nameRendered = highlightText(name, entry.Name, matchPositions, baseStyle, baseStyle.Bold(true).Underline(true))
		} else {
			nameRendered = baseStyle.Render(name)
		}
		return baseStyle.Width(renderer.width).MaxWidth(renderer.width).
			Render(" " + nameRendered + baseStyle.Render(countText))
	}

	nameStyle := lipgloss.NewStyle().Foreground(renderer.theme.NormalText)
	countStyle := lipgloss.NewStyle().Foreground(renderer.theme.FaintText)

	var nameRendered string
	if len(matchPositions) > 0 {
		highlightStyle := nameStyle.Background(renderer.theme.SearchHighlightBackground)
		nameRendered = highlightText(name, entry.Name, matchPositions, nameStyle, highlightStyle)
	} else {
		nameRendered = nameStyle.Render(name)
	}

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).
		Render(" " + nameRendered + countStyle.Render(countText))
}

// highlightText renders a display string with character-level
// highlighting at the given rune positions. Positions index into the
// original text (before any suffix was appended); characters past the
// original text's length are never highlighted. Consecutive runs of
// same-style characters are batched into a single Render call to keep
// ANSI output compact.
func highlightText(display string, original string, positions []int, baseStyle, highlightStyle lipgloss.Style) string {
	if len(positions) == 0 {
		return baseStyle.Render(display)
	}

	positionSet := make(map[int]bool, len(positions))
	for _, position := range positions {
		positionSet[position] = true
	}

	originalLength := len([]rune(original))
	displayRunes := []rune(display)

	var result strings.Builder
	runStart := 0
	isHighlighted := runStart < originalLength && positionSet[0]

	for index := 1; index <= len(displayRunes); index++ {
		currentHighlighted := index < originalLength && positionSet[index]
		if currentHighlighted != isHighlighted || index == len(displayRunes) {
			chunk := string(displayRunes[runStart:index])
			if isHighlighted {
				result.WriteString(highlightStyle.Render(chunk))
			} else {
				result.WriteString(baseStyle.Render(chunk))
			}
			runStart = index
			isHighlighted = currentHighlighted
		}
	}

	return result.String()
}

// truncateString truncates a string to maxWidth visual columns.
// Handles multi-byte characters via lipgloss width measurement.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
