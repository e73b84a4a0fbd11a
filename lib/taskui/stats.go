// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/store"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// OverviewPane renders the overview tab: aggregate counts, a
// completion bar, and per-category totals. Pure function of the data
// passed in; the model re-renders it each frame, which is cheap
// compared to the markdown pane.
type OverviewPane struct {
	theme  tui.Theme
	width  int
	height int
}

// NewOverviewPane creates an overview pane.
func NewOverviewPane(theme tui.Theme) OverviewPane {
	return OverviewPane{theme: theme}
}

// SetSize updates the pane dimensions.
func (pane *OverviewPane) SetSize(width, height int) {
	pane.width = width
	pane.height = height
}

// completionBarWidth is the character width of the progress bar.
const completionBarWidth = 40

// View renders the overview from the current stats and category data.
func (pane *OverviewPane) View(stats store.Stats, categories []category.Category, tasks []task.Task) string {
	if pane.width <= 0 || pane.height <= 0 {
		return ""
	}
	theme := pane.theme

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	notStarted := lipgloss.NewStyle().Foreground(theme.StatusNotStarted)
	inProgress := lipgloss.NewStyle().Foreground(theme.StatusInProgress)
	completed := lipgloss.NewStyle().Foreground(theme.StatusCompleted)
	high := lipgloss.NewStyle().Foreground(theme.LevelHigh)

	var lines []string
	push := func(line string) { lines = append(lines, " "+line) }

	push(header.Render("Overview"))
	push("")

	if stats.Total == 0 {
		push(faint.Render("No tasks yet. Press n on the Tasks tab to create one."))
	} else {
		push(normal.Render(fmt.Sprintf("%d tasks", stats.Total)) +
			faint.Render("  ·  ") +
			high.Render(fmt.Sprintf("%d high priority", stats.HighPriority)))
		push("")

		push(notStarted.Render(fmt.Sprintf("  ○ %3d not started", stats.NotStarted)))
		push(inProgress.Render(fmt.Sprintf("  ● %3d in progress", stats.InProgress)))
		push(completed.Render(fmt.Sprintf("  ✓ %3d completed", stats.Completed)))
		push("")

		// Completion bar.
		barWidth := completionBarWidth
		if barWidth > pane.width-12 {
			barWidth = pane.width - 12
		}
		if barWidth < 10 {
			barWidth = 10
		}
		percent := stats.CompletionPercent()
		filled := barWidth * percent / 100
		bar := completed.Render(strings.Repeat("█", filled)) +
			faint.Render(strings.Repeat("░", barWidth-filled))
		push(bar + normal.Render(fmt.Sprintf(" %d%%", percent)))
	}

	push("")
	push(header.Render("Categories"))
	push("")

	if len(categories) == 0 {
		push(faint.Render("No categories. Press n on the Categories tab to create one."))
	} else {
		counts := make(map[string]int, len(categories))
		uncategorized := 0
		for _, entry := range tasks {
			if entry.CategoryID == "" {
				uncategorized++
				continue
			}
			counts[entry.CategoryID]++
		}

		nameWidth := 0
		for _, entry := range categories {
			if width := lipgloss.Width(entry.Name); width > nameWidth {
				nameWidth = width
			}
		}
		if nameWidth > pane.width-12 {
			nameWidth = pane.width - 12
		}

		for _, entry := range categories {
			name := entry.Name
			if lipgloss.Width(name) > nameWidth {
				name = truncateString(name, nameWidth-1) + "…"
			}
			padding := strings.Repeat(" ", nameWidth-lipgloss.Width(name))
			push(normal.Render("  "+name) + padding +
				faint.Render(fmt.Sprintf("  %d", counts[entry.ID])))
		}
		if uncategorized > 0 {
			padding := strings.Repeat(" ", maxInt(0, nameWidth-lipgloss.Width("(uncategorized)")))
			push(faint.Render("  (uncategorized)") + padding +
				faint.Render(fmt.Sprintf("  %d", uncategorized)))
		}
	}

	if len(lines) > pane.height {
		lines = lines[:pane.height]
	}
	return lipgloss.NewStyle().
		Width(pane.width).
		Height(pane.height).
		MaxWidth(pane.width).
		Render(strings.Join(lines, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
