// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func scrollbarLines(t *testing.T, height, total, visible, offset int) []string {
	t.Helper()
	rendered := RenderScrollbar(DefaultTheme, height, total, visible, offset, true)
	lines := strings.Split(rendered, "\n")
	if len(lines) != height {
		t.Fatalf("rendered %d lines, want %d", len(lines), height)
	}
	return lines
}

func countThumb(lines []string) int {
	count := 0
	for _, line := range lines {
		if strings.Contains(ansi.Strip(line), "┃") {
			count++
		}
	}
	return count
}

func TestScrollbarContentFits(t *testing.T) {
	lines := scrollbarLines(t, 10, 5, 10, 0)
	if got := countThumb(lines); got != 10 {
		t.Errorf("thumb rows = %d, want full height", got)
	}
}

func TestScrollbarThumbProportionAndPosition(t *testing.T) {
	// 100 items, 10 visible: thumb is 1/10 of the track.
	lines := scrollbarLines(t, 10, 100, 10, 0)
	if got := countThumb(lines); got != 1 {
		t.Errorf("thumb rows = %d", got)
	}
	if !strings.Contains(ansi.Strip(lines[0]), "┃") {
		t.Error("thumb not at top for offset 0")
	}

	// Scrolled to the bottom, the thumb sits on the last row.
	lines = scrollbarLines(t, 10, 100, 10, 90)
	if !strings.Contains(ansi.Strip(lines[9]), "┃") {
		t.Error("thumb not at bottom for max offset")
	}
}

func TestScrollbarZeroHeight(t *testing.T) {
	if got := RenderScrollbar(DefaultTheme, 0, 10, 5, 0, false); got != "" {
		t.Errorf("zero height rendered %q", got)
	}
}
