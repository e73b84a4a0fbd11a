// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"
)

func TestFuzzyMatchBasics(t *testing.T) {
	slab := NewSlab()

	result := FuzzyMatch("Write quarterly report", NormalizePattern("wqr"), slab)
	if !result.Matched {
		t.Fatal("subsequence did not match")
	}
	if result.Score <= 0 {
		t.Errorf("score = %d", result.Score)
	}

	result = FuzzyMatch("Write quarterly report", NormalizePattern("zzz"), slab)
	if result.Matched {
		t.Fatal("non-subsequence matched")
	}
}

func TestFuzzyMatchEmptyPatternMatchesEverything(t *testing.T) {
	slab := NewSlab()
	result := FuzzyMatch("anything", nil, slab)
	if !result.Matched {
		t.Fatal("empty pattern should match")
	}
	if len(result.Positions) != 0 {
		t.Errorf("empty pattern produced positions %v", result.Positions)
	}
}

func TestFuzzyMatchCaseInsensitive(t *testing.T) {
	slab := NewSlab()
	if !FuzzyMatch("REPORT", NormalizePattern("Report"), slab).Matched {
		t.Error("case-insensitive match failed")
	}
}

func TestFuzzyMatchPositionsAscending(t *testing.T) {
	slab := NewSlab()
	result := FuzzyMatch("abcdef", NormalizePattern("ace"), slab)
	if !result.Matched {
		t.Fatal("no match")
	}
	if len(result.Positions) != 3 {
		t.Fatalf("positions = %v", result.Positions)
	}
	for index := 1; index < len(result.Positions); index++ {
		if result.Positions[index] <= result.Positions[index-1] {
			t.Fatalf("positions not ascending: %v", result.Positions)
		}
	}
	if result.Positions[0] != 0 || result.Positions[1] != 2 || result.Positions[2] != 4 {
		t.Errorf("positions = %v", result.Positions)
	}
}

func TestFuzzyMatchPrefersConsecutiveRuns(t *testing.T) {
	slab := NewSlab()
	consecutive := FuzzyMatch("taskflow", NormalizePattern("task"), slab)
	scattered := FuzzyMatch("t-a-s-k-flow", NormalizePattern("task"), slab)
	if !consecutive.Matched || !scattered.Matched {
		t.Fatal("both should match")
	}
	if consecutive.Score <= scattered.Score {
		t.Errorf("consecutive score %d <= scattered score %d", consecutive.Score, scattered.Score)
	}
}

func TestNormalizePattern(t *testing.T) {
	got := NormalizePattern("AbC")
	if string(got) != "abc" {
		t.Errorf("NormalizePattern = %q", string(got))
	}
}
