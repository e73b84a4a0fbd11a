// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// DetailPane is the right pane: a scrollable rendering of the
// selected task with its markdown description. Rendered lines are
// cached and recomputed only when the task or the pane size changes —
// markdown rendering is too expensive to run per frame.
type DetailPane struct {
	theme tui.Theme

	width  int
	height int

	current      task.Task
	categoryName string
	hasTask      bool

	lines        []string
	scrollOffset int
}

// NewDetailPane creates an empty detail pane.
func NewDetailPane(theme tui.Theme) DetailPane {
	return DetailPane{theme: theme}
}

// SetSize updates the pane dimensions and re-renders the content.
func (pane *DetailPane) SetSize(width, height int) {
	if pane.width == width && pane.height == height {
		return
	}
	pane.width = width
	pane.height = height
	pane.rebuild()
}

// SetTask replaces the displayed task. The categoryName is the
// resolved name of the task's category ("" when uncategorized).
// Setting the same task re-renders anyway: its fields may have been
// mutated in place by a store update.
func (pane *DetailPane) SetTask(entry task.Task, categoryName string) {
	scrollWasTop := pane.scrollOffset == 0
	sameTask := pane.hasTask && pane.current.ID == entry.ID

	pane.current = entry
	pane.categoryName = categoryName
	pane.hasTask = true
	pane.rebuild()

	// Jump to the top when showing a different task; preserve the
	// reader's position when the same task just changed underneath.
	if !sameTask || scrollWasTop {
		pane.scrollOffset = 0
	}
	pane.clampScroll()
}

// Clear empties the pane (nothing selected).
func (pane *DetailPane) Clear() {
	pane.hasTask = false
	pane.lines = nil
	pane.scrollOffset = 0
}

// TaskID returns the ID of the displayed task, or "" when empty.
func (pane *DetailPane) TaskID() string {
	if !pane.hasTask {
		return ""
	}
	return pane.current.ID
}

// ScrollUp moves the viewport up by count lines.
func (pane *DetailPane) ScrollUp(count int) {
	pane.scrollOffset -= count
	pane.clampScroll()
}

// ScrollDown moves the viewport down by count lines.
func (pane *DetailPane) ScrollDown(count int) {
	pane.scrollOffset += count
	pane.clampScroll()
}

// ScrollToTop jumps to the first line.
func (pane *DetailPane) ScrollToTop() {
	pane.scrollOffset = 0
}

// ScrollToBottom jumps so the last line is visible.
func (pane *DetailPane) ScrollToBottom() {
	pane.scrollOffset = len(pane.lines) - pane.height
	pane.clampScroll()
}

func (pane *DetailPane) clampScroll() {
	maxOffset := len(pane.lines) - pane.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if pane.scrollOffset > maxOffset {
		pane.scrollOffset = maxOffset
	}
	if pane.scrollOffset < 0 {
		pane.scrollOffset = 0
	}
}

// View renders the pane at its current size. The focused flag drives
// the scrollbar accent.
func (pane *DetailPane) View(focused bool) string {
	if pane.width <= 0 || pane.height <= 0 {
		return ""
	}

	if !pane.hasTask {
		empty := lipgloss.NewStyle().
			Foreground(pane.theme.FaintText).
			Render("Nothing selected.")
		return lipgloss.Place(pane.width, pane.height, lipgloss.Center, lipgloss.Center, empty)
	}

	contentWidth := pane.width - 1 // Reserve the scrollbar column.

	var visible []string
	for index := pane.scrollOffset; index < pane.scrollOffset+pane.height && index < len(pane.lines); index++ {
		visible = append(visible, pane.lines[index])
	}
	for len(visible) < pane.height {
		visible = append(visible, "")
	}

	content := lipgloss.NewStyle().
		Width(contentWidth).
		Height(pane.height).
		MaxWidth(contentWidth).
		Render(strings.Join(visible, "\n"))

	scrollbar := tui.RenderScrollbar(
		pane.theme, pane.height,
		len(pane.lines), pane.height, pane.scrollOffset,
		focused,
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
}

// rebuild re-renders the cached lines from the current task.
func (pane *DetailPane) rebuild() {
	if !pane.hasTask || pane.width <= 1 {
		pane.lines = nil
		return
	}

	contentWidth := pane.width - 1
	textWidth := contentWidth - 2 // 1 column margin each side.
	if textWidth < 10 {
		textWidth = 10
	}

	var lines []string
	push := func(rendered string) {
		for _, line := range strings.Split(rendered, "\n") {
			lines = append(lines, " "+line)
		}
	}

	// Title, wrapped and bold.
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(pane.theme.HeaderForeground)
	push(ansi.Wrap(titleStyle.Render(pane.current.Title), textWidth, " ,.;-+|"))
	lines = append(lines, "")

	// Status / level / category badge line.
	statusStyle := lipgloss.NewStyle().Foreground(pane.theme.StatusColor(pane.current.Status))
	levelStyle := lipgloss.NewStyle().Foreground(pane.theme.LevelColor(pane.current.Level))
	faint := lipgloss.NewStyle().Foreground(pane.theme.FaintText)

	badges := statusStyle.Render(statusIcon(pane.current.Status)+" "+pane.current.Status.Label()) +
		faint.Render("  ·  ") +
		levelStyle.Render(pane.current.Level.Label()+" priority")
	if pane.categoryName != "" {
		badges += faint.Render("  ·  ") +
			lipgloss.NewStyle().Foreground(pane.theme.NormalText).Render(pane.categoryName)
	}
	push(badges)

	// Timestamps.
	created := pane.current.CreatedAt.Local().Format("2006-01-02 15:04")
	updated := pane.current.UpdatedAt.Local().Format("2006-01-02 15:04")
	push(faint.Render(fmt.Sprintf("created %s  ·  updated %s", created, updated)))

	// Separator.
	lines = append(lines, "")
	push(faint.Render(strings.Repeat("─", textWidth)))
	lines = append(lines, "")

	// Markdown description.
	if pane.current.Description != nil && strings.TrimSpace(*pane.current.Description) != "" {
		push(renderTerminalMarkdown(*pane.current.Description, pane.theme, textWidth))
	} else {
		push(faint.Italic(true).Render("No description."))
	}

	pane.lines = lines
	pane.clampScroll()
}
