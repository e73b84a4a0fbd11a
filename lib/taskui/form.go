// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// formAction is the outcome of routing a key to a form.
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// lineEditor is a single-line text input with cursor tracking. The
// bubbles textinput component wants to own focus and blink timers;
// inside a hand-rendered modal a plain rune buffer is simpler and
// renders identically.
type lineEditor struct {
	runes  []rune
	cursor int
}

func newLineEditor(initial string) lineEditor {
	runes := []rune(initial)
	return lineEditor{runes: runes, cursor: len(runes)}
}

func (editor *lineEditor) Value() string { return string(editor.runes) }

func (editor *lineEditor) Handle(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			editor.runes = append(editor.runes[:editor.cursor],
				append([]rune{character}, editor.runes[editor.cursor:]...)...)
			editor.cursor++
		}
	case tea.KeyBackspace:
		if editor.cursor > 0 {
			editor.runes = append(editor.runes[:editor.cursor-1], editor.runes[editor.cursor:]...)
			editor.cursor--
		}
	case tea.KeyDelete:
		if editor.cursor < len(editor.runes) {
			editor.runes = append(editor.runes[:editor.cursor], editor.runes[editor.cursor+1:]...)
		}
	case tea.KeyLeft:
		if editor.cursor > 0 {
			editor.cursor--
		}
	case tea.KeyRight:
		if editor.cursor < len(editor.runes) {
			editor.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		editor.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		editor.cursor = len(editor.runes)
	}
}

// render returns the editor content with a cursor block when active.
func (editor *lineEditor) render(textStyle, cursorStyle lipgloss.Style, active bool) string {
	if !active {
		return textStyle.Render(string(editor.runes))
	}
	if editor.cursor >= len(editor.runes) {
		return textStyle.Render(string(editor.runes)) + cursorStyle.Render(" ")
	}
	return textStyle.Render(string(editor.runes[:editor.cursor])) +
		cursorStyle.Render(string(editor.runes[editor.cursor:editor.cursor+1])) +
		textStyle.Render(string(editor.runes[editor.cursor+1:]))
}

// Task form field indices, top to bottom.
const (
	taskFieldTitle = iota
	taskFieldStatus
	taskFieldLevel
	taskFieldCategory
	taskFieldCount
)

// TaskForm is the centered modal for creating or editing a task. The
// description is deliberately absent: multi-line markdown is edited
// in the description modal (D key), not squeezed into a form row.
type TaskForm struct {
	theme tui.Theme

	// EditID is the task being edited, or "" when creating.
	EditID string

	title  lineEditor
	status task.Status
	level  task.Level

	// Category selection cycles through the loaded category list.
	// Index -1 means uncategorized.
	categories    []category.Category
	categoryIndex int

	fieldIndex int
	errText    string
}

// NewTaskForm creates a form with create defaults: not started,
// medium priority, uncategorized.
func NewTaskForm(theme tui.Theme, categories []category.Category) *TaskForm {
	return &TaskForm{
		theme:         theme,
		title:         newLineEditor(""),
		status:        task.StatusNotStarted,
		level:         task.LevelMedium,
		categories:    categories,
		categoryIndex: -1,
	}
}

// EditTaskForm creates a form pre-filled from an existing task.
func EditTaskForm(theme tui.Theme, entry task.Task, categories []category.Category) *TaskForm {
	form := &TaskForm{
		theme:         theme,
		EditID:        entry.ID,
		title:         newLineEditor(entry.Title),
		status:        entry.Status,
		level:         entry.Level,
		categories:    categories,
		categoryIndex: -1,
	}
	for index, entry2 := range categories {
		if entry2.ID == entry.CategoryID {
			form.categoryIndex = index
			break
		}
	}
	return form
}

// SetError displays a submission error inside the form. The form
// stays open so the user can correct the input.
func (form *TaskForm) SetError(text string) { form.errText = text }

// Update routes a key to the form. Enter submits, Esc cancels, up and
// down move between fields, and left/right cycle enum values.
func (form *TaskForm) Update(message tea.KeyMsg) formAction {
	switch message.Type {
	case tea.KeyEnter:
		return formSubmit
	case tea.KeyEsc:
		return formCancel
	case tea.KeyUp, tea.KeyShiftTab:
		form.fieldIndex--
		if form.fieldIndex < 0 {
			form.fieldIndex = taskFieldCount - 1
		}
		return formNone
	case tea.KeyDown, tea.KeyTab:
		form.fieldIndex = (form.fieldIndex + 1) % taskFieldCount
		return formNone
	}

	switch form.fieldIndex {
	case taskFieldTitle:
		form.title.Handle(message)
	case taskFieldStatus:
		if message.Type == tea.KeyLeft || message.Type == tea.KeyRight {
			form.status = cycleStatus(form.status, message.Type == tea.KeyRight)
		}
	case taskFieldLevel:
		if message.Type == tea.KeyLeft || message.Type == tea.KeyRight {
			form.level = cycleLevel(form.level, message.Type == tea.KeyRight)
		}
	case taskFieldCategory:
		if message.Type == tea.KeyLeft {
			form.categoryIndex--
			if form.categoryIndex < -1 {
				form.categoryIndex = len(form.categories) - 1
			}
		}
		if message.Type == tea.KeyRight {
			form.categoryIndex++
			if form.categoryIndex >= len(form.categories) {
				form.categoryIndex = -1
			}
		}
	}
	return formNone
}

func cycleStatus(current task.Status, forward bool) task.Status {
	statuses := task.Statuses()
	for index, status := range statuses {
		if status == current {
			if forward {
				return statuses[(index+1)%len(statuses)]
			}
			return statuses[(index+len(statuses)-1)%len(statuses)]
		}
	}
	return statuses[0]
}

func cycleLevel(current task.Level, forward bool) task.Level {
	levels := task.Levels()
	for index, level := range levels {
		if level == current {
			if forward {
				return levels[(index+1)%len(levels)]
			}
			return levels[(index+len(levels)-1)%len(levels)]
		}
	}
	return levels[0]
}

// categoryID returns the selected category's ID, or "" when
// uncategorized.
func (form *TaskForm) categoryID() string {
	if form.categoryIndex < 0 || form.categoryIndex >= len(form.categories) {
		return ""
	}
	return form.categories[form.categoryIndex].ID
}

// CreateDto builds the create request from the form state.
func (form *TaskForm) CreateDto() task.CreateDto {
	return task.CreateDto{
		Title:      strings.TrimSpace(form.title.Value()),
		Status:     form.status,
		Level:      form.level,
		CategoryID: form.categoryID(),
	}
}

// UpdateDto builds the update request from the form state. All form
// fields are sent; the description is not part of the form and stays
// untouched server-side.
func (form *TaskForm) UpdateDto() task.UpdateDto {
	title := strings.TrimSpace(form.title.Value())
	status := form.status
	level := form.level
	categoryID := form.categoryID()
	return task.UpdateDto{
		Title:      &title,
		Status:     &status,
		Level:      &level,
		CategoryID: &categoryID,
	}
}

// Render produces the modal overlay lines and anchor, centered.
func (form *TaskForm) Render(screenWidth, screenHeight int) ([]string, int, int) {
	title := "New Task"
	if form.EditID != "" {
		title = "Edit Task"
	}

	categoryLabel := "(none)"
	if form.categoryIndex >= 0 && form.categoryIndex < len(form.categories) {
		categoryLabel = form.categories[form.categoryIndex].Name
	}

	rows := []formRow{
		{label: "Title", editor: &form.title},
		{label: "Status", value: form.status.Label(), cyclable: true},
		{label: "Level", value: form.level.Label(), cyclable: true},
		{label: "Category", value: categoryLabel, cyclable: true},
	}

	return renderFormModal(form.theme, title, rows, form.fieldIndex, form.errText,
		"Enter save  Esc cancel  ←/→ change", screenWidth, screenHeight)
}

// CategoryForm is the centered modal for creating or renaming a
// category.
type CategoryForm struct {
	theme tui.Theme

	// EditID is the category being renamed, or "" when creating.
	EditID string

	name    lineEditor
	errText string
}

// NewCategoryForm creates an empty category form.
func NewCategoryForm(theme tui.Theme) *CategoryForm {
	return &CategoryForm{theme: theme, name: newLineEditor("")}
}

// EditCategoryForm creates a form pre-filled from an existing
// category.
func EditCategoryForm(theme tui.Theme, entry category.Category) *CategoryForm {
	return &CategoryForm{theme: theme, EditID: entry.ID, name: newLineEditor(entry.Name)}
}

// SetError displays a submission error inside the form.
func (form *CategoryForm) SetError(text string) { form.errText = text }

// Update routes a key to the form.
func (form *CategoryForm) Update(message tea.KeyMsg) formAction {
	switch message.Type {
	case tea.KeyEnter:
		return formSubmit
	case tea.KeyEsc:
		return formCancel
	}
	form.name.Handle(message)
	return formNone
}

// CreateDto builds the create request from the form state.
func (form *CategoryForm) CreateDto() category.CreateDto {
	return category.CreateDto{Name: strings.TrimSpace(form.name.Value())}
}

// UpdateDto builds the rename request from the form state.
func (form *CategoryForm) UpdateDto() category.UpdateDto {
	name := strings.TrimSpace(form.name.Value())
	return category.UpdateDto{Name: &name}
}

// Render produces the modal overlay lines and anchor, centered.
func (form *CategoryForm) Render(screenWidth, screenHeight int) ([]string, int, int) {
	title := "New Category"
	if form.EditID != "" {
		title = "Rename Category"
	}
	rows := []formRow{
		{label: "Name", editor: &form.name},
	}
	return renderFormModal(form.theme, title, rows, 0, form.errText,
		"Enter save  Esc cancel", screenWidth, screenHeight)
}

// formRow is one labeled line in a form modal: either an editable
// text field or a cyclable enum value.
type formRow struct {
	label    string
	editor   *lineEditor
	value    string
	cyclable bool
}

// formModalWidth is the fixed modal width; forms have short fields
// and look lost when stretched to the full screen.
const formModalWidth = 56

// renderFormModal renders a bordered, centered form modal. Shared by
// the task and category forms so they stay visually identical.
func renderFormModal(theme tui.Theme, title string, rows []formRow, activeField int, errText, footer string, screenWidth, screenHeight int) ([]string, int, int) {
	modalWidth := formModalWidth
	if modalWidth > screenWidth {
		modalWidth = screenWidth
	}
	innerWidth := modalWidth - 4 // Border and padding.

	bgStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Background(theme.OverlayBackground)
	labelStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.OverlayBackground)
	activeLabelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground).
		Background(theme.OverlayBackground)
	textStyle := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Background(theme.OverlayBackground)
	cursorStyle := lipgloss.NewStyle().
		Reverse(true)
	errorStyle := lipgloss.NewStyle().
		Foreground(theme.ErrorText).
		Background(theme.OverlayBackground)
	footerStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.OverlayBackground)

	pad := func(line string) string {
		lineWidth := ansi.StringWidth(line)
		if lineWidth < innerWidth {
			return line + bgStyle.Render(strings.Repeat(" ", innerWidth-lineWidth))
		}
		return line
	}

	var contentLines []string
	contentLines = append(contentLines, pad(titleStyle.Render(title)))
	contentLines = append(contentLines, pad(""))

	labelWidth := 0
	for _, row := range rows {
		if len(row.label) > labelWidth {
			labelWidth = len(row.label)
		}
	}

	for index, row := range rows {
		active := index == activeField
		label := row.label + strings.Repeat(" ", labelWidth-len(row.label)) + "  "
		var rendered string
		if active {
			rendered = activeLabelStyle.Render("▸ " + label)
		} else {
			rendered = labelStyle.Render("  " + label)
		}

		if row.editor != nil {
			rendered += row.editor.render(textStyle, cursorStyle, active)
		} else {
			value := row.value
			if row.cyclable && active {
				value = "← " + value + " →"
			}
			rendered += textStyle.Render(value)
		}
		contentLines = append(contentLines, pad(rendered))
	}

	if errText != "" {
		contentLines = append(contentLines, pad(""))
		wrapped := ansi.Wrap(errorStyle.Render(errText), innerWidth, " ,.;-+|")
		for _, line := range strings.Split(wrapped, "\n") {
			contentLines = append(contentLines, pad(line))
		}
	}

	contentLines = append(contentLines, pad(""))
	contentLines = append(contentLines, pad(footerStyle.Render(footer)))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Background(theme.OverlayBackground)

	rendered := borderStyle.Render(strings.Join(contentLines, "\n"))
	resultLines := strings.Split(rendered, "\n")

	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}
	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}

	return resultLines, anchorX, anchorY
}
