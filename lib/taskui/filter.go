// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// FilterModel is the fuzzy filter over the currently loaded list. It
// composes with the server-side filter: the store decides which page
// of tasks is loaded, and this narrows it client-side without a
// round-trip as the user types.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus (the
	// user pressed / to start typing).
	Active bool

	slab *util.Slab
}

// NewFilterModel creates a filter with an allocated matcher slab.
func NewFilterModel() FilterModel {
	return FilterModel{slab: tui.NewSlab()}
}

// TaskMatch is one task that survived the filter, with its match
// detail for highlighting and ranking.
type TaskMatch struct {
	Task task.Task
	// TitlePositions are the matched rune indices in the title; empty
	// when the match came from another field.
	TitlePositions []int
	score          int
}

// ApplyTasks matches the filter against each task's title, falling
// back to the description and the resolved category name. Results are
// ordered by descending match score; ties keep the input order so an
// unchanged query is stable across refreshes. An empty filter returns
// everything unscored.
func (filter *FilterModel) ApplyTasks(tasks []task.Task, categoryName func(string) string) []TaskMatch {
	if filter.Input == "" {
		matches := make([]TaskMatch, len(tasks))
		for index, entry := range tasks {
			matches[index] = TaskMatch{Task: entry}
		}
		return matches
	}

	pattern := tui.NormalizePattern(filter.Input)
	var matches []TaskMatch
	for _, entry := range tasks {
		titleResult := tui.FuzzyMatch(entry.Title, pattern, filter.slab)
		if titleResult.Matched {
			matches = append(matches, TaskMatch{
				Task:           entry,
				TitlePositions: titleResult.Positions,
				score:          titleResult.Score,
			})
			continue
		}

		if entry.Description != nil {
			if result := tui.FuzzyMatch(*entry.Description, pattern, filter.slab); result.Matched {
				matches = append(matches, TaskMatch{Task: entry, score: result.Score})
				continue
			}
		}

		if entry.CategoryID != "" {
			if name := categoryName(entry.CategoryID); name != "" {
				if result := tui.FuzzyMatch(name, pattern, filter.slab); result.Matched {
					matches = append(matches, TaskMatch{Task: entry, score: result.Score})
				}
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	return matches
}

// CategoryMatch is one category that survived the filter.
type CategoryMatch struct {
	Category      category.Category
	NamePositions []int
	score         int
}

// ApplyCategories matches the filter against category names, ordered
// by descending score.
func (filter *FilterModel) ApplyCategories(categories []category.Category) []CategoryMatch {
	if filter.Input == "" {
		matches := make([]CategoryMatch, len(categories))
		for index, entry := range categories {
			matches[index] = CategoryMatch{Category: entry}
		}
		return matches
	}

	pattern := tui.NormalizePattern(filter.Input)
	var matches []CategoryMatch
	for _, entry := range categories {
		if result := tui.FuzzyMatch(entry.Name, pattern, filter.slab); result.Matched {
			matches = append(matches, CategoryMatch{
				Category:      entry,
				NamePositions: result.Positions,
				score:         result.Score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	return matches
}

// HandleRune appends a typed character to the filter input.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input.
// Returns false when there was nothing to remove.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text dimmed. When
// inactive and empty, returns "" (hidden).
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Width(width).
			Render(" / " + filter.Input + cursor)
	}

	return lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width).
		Render(" filter: " + filter.Input)
}
