// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/tui"
)

func TestLevelBadgeAndStatusIcon(t *testing.T) {
	if got := levelBadge(task.LevelHigh); got != "HI" {
		t.Errorf("high badge = %q", got)
	}
	if got := levelBadge(task.Level("?")); got != "  " {
		t.Errorf("unknown badge = %q", got)
	}
	if got := statusIcon(task.StatusCompleted); got != "✓" {
		t.Errorf("completed icon = %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("no-op truncate = %q", got)
	}
	if got := truncateString("abcdefgh", 4); got != "abcd" {
		t.Errorf("truncate = %q", got)
	}
	// Wide runes count as two columns.
	if got := truncateString("日本語", 4); got != "日本" {
		t.Errorf("wide truncate = %q", got)
	}
	if got := truncateString("abc", 0); got != "" {
		t.Errorf("zero width = %q", got)
	}
}

func TestHighlightTextBatchesRuns(t *testing.T) {
	base := lipgloss.NewStyle()
	highlight := lipgloss.NewStyle().Bold(true)

	// No positions: single render of the whole display string.
	got := highlightText("hello", "hello", nil, base, highlight)
	if ansi.Strip(got) != "hello" {
		t.Errorf("plain = %q", got)
	}

	// Positions beyond the original text (the appended category
	// suffix) must never be highlighted.
	display := "hello · Work"
	got = highlightText(display, "hello", []int{0, 1, 8}, base, highlight)
	if ansi.Strip(got) != display {
		t.Errorf("content changed: %q", ansi.Strip(got))
	}
}

func TestRenderTaskRowContainsColumns(t *testing.T) {
	renderer := NewListRenderer(tui.DefaultTheme, 60)
	entry := task.Task{
		ID:     "t1",
		Title:  "write report",
		Status: task.StatusInProgress,
		Level:  task.LevelHigh,
	}

	row := ansi.Strip(renderer.RenderTaskRow(entry, "Work", false, nil))
	for _, want := range []string{"HI", "●", "write report", "Work"} {
		if !strings.Contains(row, want) {
			t.Errorf("row missing %q: %q", want, row)
		}
	}

	selected := ansi.Strip(renderer.RenderTaskRow(entry, "Work", true, nil))
	if !strings.Contains(selected, "write report") {
		t.Errorf("selected row = %q", selected)
	}
}

func TestRenderTaskRowTruncatesToWidth(t *testing.T) {
	renderer := NewListRenderer(tui.DefaultTheme, 24)
	entry := task.Task{
		ID:     "t1",
		Title:  strings.Repeat("long title ", 10),
		Status: task.StatusNotStarted,
		Level:  task.LevelLow,
	}

	row := renderer.RenderTaskRow(entry, "", false, nil)
	if got := ansi.StringWidth(row); got > 24 {
		t.Errorf("row width = %d", got)
	}
}
