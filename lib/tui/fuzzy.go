// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// The fzf algo package requires Init to set up its character-class
// tables before any matching; without it every match reports a miss.
func init() {
	algo.Init("default")
}

// Slab sizes for the fzf matcher's scratch allocator. Same values fzf
// itself uses; one slab is reused across all match calls in a render
// pass.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// NewSlab allocates a scratch slab for [FuzzyMatch]. The slab is not
// safe for concurrent use; the TUI calls the matcher only from the
// bubbletea update loop, so a single slab per model suffices.
func NewSlab() *util.Slab {
	return util.MakeSlab(slab16Size, slab32Size)
}

// FuzzyResult is the outcome of matching a pattern against one text.
type FuzzyResult struct {
	// Matched is true when every pattern rune was found in order.
	Matched bool

	// Score ranks matches: higher is better. Consecutive matches and
	// word-boundary matches score above scattered ones.
	Score int

	// Positions are the rune indices in the text that matched, in
	// ascending order. Used for highlight rendering.
	Positions []int
}

// FuzzyMatch runs fzf's V2 fuzzy matching algorithm against a single
// text. Matching is case-insensitive with unicode normalization, the
// same behavior as interactive fzf. Pattern runes should be
// lowercased by the caller (see [NormalizePattern]).
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}

	out := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		// fzf reports positions in descending order.
		matched := make([]int, len(*positions))
		for index, position := range *positions {
			matched[len(matched)-1-index] = position
		}
		out.Positions = matched
	}
	return out
}

// NormalizePattern lowercases a query string into the rune slice form
// FuzzyMatch expects.
func NormalizePattern(query string) []rune {
	runes := []rune(query)
	for index, r := range runes {
		runes[index] = unicode.ToLower(r)
	}
	return runes
}
