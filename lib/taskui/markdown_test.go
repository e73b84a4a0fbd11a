// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/taskflow-project/taskflow/lib/tui"
)

func renderPlain(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(renderTerminalMarkdown(input, tui.DefaultTheme, width))
}

func TestMarkdownEmptyInput(t *testing.T) {
	if got := renderTerminalMarkdown("", tui.DefaultTheme, 40); got != "" {
		t.Errorf("empty input rendered %q", got)
	}
}

func TestMarkdownSoftBreaksReflow(t *testing.T) {
	// Hard-wrapped source reflows into one paragraph.
	got := renderPlain(t, "first part\nsecond part", 80)
	if !strings.Contains(got, "first part second part") {
		t.Errorf("soft break not reflowed: %q", got)
	}
}

func TestMarkdownHeadingAndList(t *testing.T) {
	input := "# Plan\n\n- one\n- two\n"
	got := renderPlain(t, input, 60)
	if !strings.Contains(got, "Plan") {
		t.Errorf("heading missing: %q", got)
	}
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Errorf("list items missing: %q", got)
	}
}

func TestMarkdownCodeBlockPreserved(t *testing.T) {
	input := "```go\nfmt.Println(\"hi\")\n```\n"
	got := renderPlain(t, input, 60)
	if !strings.Contains(got, `fmt.Println("hi")`) {
		t.Errorf("code lost: %q", got)
	}
}

func TestMarkdownWrapsToWidth(t *testing.T) {
	input := strings.Repeat("word ", 30)
	got := renderPlain(t, input, 20)
	for _, line := range strings.Split(got, "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Errorf("line width %d: %q", w, line)
		}
	}
}
