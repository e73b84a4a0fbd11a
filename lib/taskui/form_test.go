// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/tui"
)

func typeText(form *TaskForm, text string) {
	for _, character := range text {
		form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{character}})
	}
}

func keyMsg(keyType tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: keyType} }

func TestTaskFormCreateDefaults(t *testing.T) {
	form := NewTaskForm(tui.DefaultTheme, nil)
	typeText(form, "  ship it  ")

	if action := form.Update(keyMsg(tea.KeyEnter)); action != formSubmit {
		t.Fatalf("enter action = %v", action)
	}

	dto := form.CreateDto()
	if dto.Title != "ship it" {
		t.Errorf("title = %q", dto.Title)
	}
	if dto.Status != task.StatusNotStarted || dto.Level != task.LevelMedium {
		t.Errorf("defaults = %q/%q", dto.Status, dto.Level)
	}
	if dto.CategoryID != "" {
		t.Errorf("categoryID = %q", dto.CategoryID)
	}
}

func TestTaskFormCyclesEnums(t *testing.T) {
	form := NewTaskForm(tui.DefaultTheme, nil)

	// Move to the status field and cycle forward once.
	form.Update(keyMsg(tea.KeyDown))
	form.Update(keyMsg(tea.KeyRight))
	// Move to the level field and cycle backward once.
	form.Update(keyMsg(tea.KeyDown))
	form.Update(keyMsg(tea.KeyLeft))

	dto := form.CreateDto()
	if dto.Status != task.StatusInProgress {
		t.Errorf("status = %q", dto.Status)
	}
	if dto.Level != task.LevelLow {
		t.Errorf("level = %q", dto.Level)
	}

	// Backward from the first status wraps to the last.
	form.Update(keyMsg(tea.KeyUp))
	form.Update(keyMsg(tea.KeyLeft))
	form.Update(keyMsg(tea.KeyLeft))
	if got := form.CreateDto().Status; got != task.StatusCompleted {
		t.Errorf("wrapped status = %q", got)
	}
}

func TestTaskFormCategoryCycleIncludesNone(t *testing.T) {
	categories := []category.Category{
		{ID: "c1", Name: "Work"},
		{ID: "c2", Name: "Home"},
	}
	form := NewTaskForm(tui.DefaultTheme, categories)

	// Move to the category field.
	form.Update(keyMsg(tea.KeyDown))
	form.Update(keyMsg(tea.KeyDown))
	form.Update(keyMsg(tea.KeyDown))

	// none -> c1 -> c2 -> none.
	form.Update(keyMsg(tea.KeyRight))
	if got := form.CreateDto().CategoryID; got != "c1" {
		t.Errorf("first cycle = %q", got)
	}
	form.Update(keyMsg(tea.KeyRight))
	form.Update(keyMsg(tea.KeyRight))
	if got := form.CreateDto().CategoryID; got != "" {
		t.Errorf("wrap to none = %q", got)
	}

	// Backward from none lands on the last category.
	form.Update(keyMsg(tea.KeyLeft))
	if got := form.CreateDto().CategoryID; got != "c2" {
		t.Errorf("backward from none = %q", got)
	}
}

func TestEditTaskFormPrefills(t *testing.T) {
	categories := []category.Category{{ID: "c1", Name: "Work"}}
	entry := task.Task{
		ID:         "t1",
		Title:      "existing",
		Status:     task.StatusInProgress,
		Level:      task.LevelHigh,
		CategoryID: "c1",
	}
	form := EditTaskForm(tui.DefaultTheme, entry, categories)

	if form.EditID != "t1" {
		t.Errorf("EditID = %q", form.EditID)
	}

	dto := form.UpdateDto()
	if dto.Title == nil || *dto.Title != "existing" {
		t.Errorf("title = %v", dto.Title)
	}
	if dto.Status == nil || *dto.Status != task.StatusInProgress {
		t.Errorf("status = %v", dto.Status)
	}
	if dto.CategoryID == nil || *dto.CategoryID != "c1" {
		t.Errorf("categoryID = %v", dto.CategoryID)
	}
	// The form has no description row; the update must not touch it.
	if dto.Description != nil {
		t.Errorf("description = %v", dto.Description)
	}
}

func TestEditTaskFormUnknownCategoryFallsBackToNone(t *testing.T) {
	entry := task.Task{ID: "t1", Title: "orphan", Status: task.StatusNotStarted,
		Level: task.LevelLow, CategoryID: "deleted"}
	form := EditTaskForm(tui.DefaultTheme, entry, nil)

	dto := form.UpdateDto()
	if dto.CategoryID == nil || *dto.CategoryID != "" {
		t.Errorf("dangling category = %v", dto.CategoryID)
	}
}

func TestTaskFormFieldNavigationWraps(t *testing.T) {
	form := NewTaskForm(tui.DefaultTheme, nil)

	// Up from the first field wraps to the last; typing then must not
	// land in the title editor.
	form.Update(keyMsg(tea.KeyUp))
	typeText(form, "x")
	if got := form.CreateDto().Title; got != "" {
		t.Errorf("title = %q after typing on wrapped field", got)
	}

	if action := form.Update(keyMsg(tea.KeyEsc)); action != formCancel {
		t.Errorf("esc action = %v", action)
	}
}

func TestCategoryFormDtos(t *testing.T) {
	form := NewCategoryForm(tui.DefaultTheme)
	form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Chores")})

	if got := form.CreateDto().Name; got != "Chores" {
		t.Errorf("name = %q", got)
	}

	edit := EditCategoryForm(tui.DefaultTheme, category.Category{ID: "c1", Name: "Work"})
	edit.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	dto := edit.UpdateDto()
	if dto.Name == nil || *dto.Name != "Work!" {
		t.Errorf("rename = %v", dto.Name)
	}
}

func TestLineEditorCursorEditing(t *testing.T) {
	editor := newLineEditor("abc")

	editor.Handle(keyMsg(tea.KeyHome))
	editor.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}})
	if editor.Value() != "Xabc" {
		t.Fatalf("value = %q", editor.Value())
	}

	editor.Handle(keyMsg(tea.KeyDelete))
	if editor.Value() != "Xbc" {
		t.Fatalf("value after delete = %q", editor.Value())
	}

	editor.Handle(keyMsg(tea.KeyEnd))
	editor.Handle(keyMsg(tea.KeyBackspace))
	if editor.Value() != "Xb" {
		t.Fatalf("value after backspace = %q", editor.Value())
	}

	editor.Handle(keyMsg(tea.KeyLeft))
	editor.Handle(keyMsg(tea.KeyRight))
	editor.Handle(keyMsg(tea.KeyRight)) // Cursor clamps at the end.
	editor.Handle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})
	if editor.Value() != "Xb!" {
		t.Fatalf("value = %q", editor.Value())
	}
}
