// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlayReplacesRegion(t *testing.T) {
	view := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")
	overlay := []string{"XXX", "YYY"}

	spliced := SpliceOverlay(view, overlay, 2, 1)
	lines := strings.Split(spliced, "\n")

	if ansi.Strip(lines[0]) != "aaaaaaaaaa" {
		t.Errorf("line above overlay changed: %q", lines[0])
	}
	if got := ansi.Strip(lines[1]); got != "bbXXXbbbbb" {
		t.Errorf("overlay line 1 = %q", got)
	}
	if got := ansi.Strip(lines[2]); got != "ccYYYccccc" {
		t.Errorf("overlay line 2 = %q", got)
	}
}

func TestSpliceOverlayClipsOutOfRange(t *testing.T) {
	view := "only line"
	// Overlay hangs below the view; out-of-range rows are dropped.
	spliced := SpliceOverlay(view, []string{"AB", "CD"}, 0, 0)
	lines := strings.Split(spliced, "\n")
	if len(lines) != 1 {
		t.Fatalf("view grew to %d lines", len(lines))
	}
	if got := ansi.Strip(lines[0]); got != "ABly line" {
		t.Errorf("line = %q", got)
	}

	if got := SpliceOverlay(view, nil, 0, 0); got != view {
		t.Errorf("empty overlay modified the view: %q", got)
	}
}

func TestExtractExcerpt(t *testing.T) {
	body := "\n\n  first line  \n\nsecond line\nthird line\n"
	got := ExtractExcerpt(body, 40, 2)
	if len(got) != 2 || got[0] != "first line" || got[1] != "second line" {
		t.Fatalf("excerpt = %q", got)
	}

	// Long lines are truncated with an ellipsis inside the width.
	got = ExtractExcerpt("abcdefghij", 5, 1)
	if len(got) != 1 {
		t.Fatalf("excerpt = %q", got)
	}
	if w := ansi.StringWidth(got[0]); w > 5 {
		t.Errorf("truncated width = %d", w)
	}
	if !strings.HasSuffix(got[0], "…") {
		t.Errorf("no ellipsis: %q", got[0])
	}

	if got := ExtractExcerpt("   \n\n", 10, 3); got != nil {
		t.Errorf("blank body excerpt = %q", got)
	}
}
