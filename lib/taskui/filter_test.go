// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"testing"

	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
)

func noCategory(string) string { return "" }

func TestApplyTasksEmptyFilterKeepsOrder(t *testing.T) {
	filter := NewFilterModel()
	tasks := []task.Task{
		{ID: "t1", Title: "alpha"},
		{ID: "t2", Title: "beta"},
	}

	matches := filter.ApplyTasks(tasks, noCategory)
	if len(matches) != 2 || matches[0].Task.ID != "t1" || matches[1].Task.ID != "t2" {
		t.Fatalf("matches = %+v", matches)
	}
	if len(matches[0].TitlePositions) != 0 {
		t.Errorf("empty filter produced positions %v", matches[0].TitlePositions)
	}
}

func TestApplyTasksMatchesTitle(t *testing.T) {
	filter := NewFilterModel()
	filter.Input = "rep"
	tasks := []task.Task{
		{ID: "t1", Title: "write report"},
		{ID: "t2", Title: "buy groceries"},
	}

	matches := filter.ApplyTasks(tasks, noCategory)
	if len(matches) != 1 || matches[0].Task.ID != "t1" {
		t.Fatalf("matches = %+v", matches)
	}
	if len(matches[0].TitlePositions) != 3 {
		t.Errorf("title positions = %v", matches[0].TitlePositions)
	}
}

func TestApplyTasksFallsBackToDescriptionAndCategory(t *testing.T) {
	filter := NewFilterModel()
	filter.Input = "groceries"
	description := "buy groceries on the way home"
	tasks := []task.Task{
		{ID: "t1", Title: "errand", Description: &description},
		{ID: "t2", Title: "other", CategoryID: "c1"},
		{ID: "t3", Title: "unrelated"},
	}
	categoryName := func(id string) string {
		if id == "c1" {
			return "Groceries"
		}
		return ""
	}

	matches := filter.ApplyTasks(tasks, categoryName)
	if len(matches) != 2 {
		t.Fatalf("matches = %+v", matches)
	}
	for _, match := range matches {
		// Fallback matches carry no title highlight positions.
		if len(match.TitlePositions) != 0 {
			t.Errorf("fallback match has title positions: %+v", match)
		}
	}
}

func TestApplyTasksRanksBetterMatchesFirst(t *testing.T) {
	filter := NewFilterModel()
	filter.Input = "task"
	tasks := []task.Task{
		{ID: "scattered", Title: "t-a-s-k spread out"},
		{ID: "exact", Title: "task"},
	}

	matches := filter.ApplyTasks(tasks, noCategory)
	if len(matches) != 2 {
		t.Fatalf("matches = %+v", matches)
	}
	if matches[0].Task.ID != "exact" {
		t.Errorf("best match ranked second: %+v", matches)
	}
}

func TestApplyCategories(t *testing.T) {
	filter := NewFilterModel()
	filter.Input = "wrk"
	categories := []category.Category{
		{ID: "c1", Name: "Work"},
		{ID: "c2", Name: "Home"},
	}

	matches := filter.ApplyCategories(categories)
	if len(matches) != 1 || matches[0].Category.ID != "c1" {
		t.Fatalf("matches = %+v", matches)
	}
	if len(matches[0].NamePositions) != 3 {
		t.Errorf("name positions = %v", matches[0].NamePositions)
	}
}

func TestFilterInputEditing(t *testing.T) {
	filter := NewFilterModel()

	filter.HandleRune('a')
	filter.HandleRune('é')
	if filter.Input != "aé" {
		t.Fatalf("input = %q", filter.Input)
	}

	if !filter.HandleBackspace() {
		t.Fatal("backspace on non-empty input returned false")
	}
	// Backspace removes one rune, not one byte.
	if filter.Input != "a" {
		t.Fatalf("input after backspace = %q", filter.Input)
	}

	filter.HandleBackspace()
	if filter.HandleBackspace() {
		t.Fatal("backspace on empty input returned true")
	}

	filter.Input = "query"
	filter.Active = true
	filter.Clear()
	if filter.Input != "" || filter.Active {
		t.Errorf("Clear left %q active=%v", filter.Input, filter.Active)
	}
}
