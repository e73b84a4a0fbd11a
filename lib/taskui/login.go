// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/schema/user"
	"github.com/taskflow-project/taskflow/lib/session"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// authResultMsg reports the outcome of a login or register attempt.
type authResultMsg struct {
	err error
}

// authMode selects which form the auth screen shows.
type authMode int

const (
	authModeLogin authMode = iota
	authModeRegister
)

// LoginModel is the full-screen auth form shown while the session is
// anonymous. It owns the sign-in and sign-up forms and dispatches
// session calls as commands; the root model swaps it out once the
// session reports authenticated.
type LoginModel struct {
	session *session.Session
	theme   tui.Theme

	mode       authMode
	username   lineEditor
	email      lineEditor
	password   lineEditor
	fieldIndex int

	busy    bool
	errText string
}

// NewLoginModel creates the auth screen in sign-in mode.
func NewLoginModel(sess *session.Session, theme tui.Theme) *LoginModel {
	return &LoginModel{session: sess, theme: theme}
}

// fieldCount returns the number of input fields in the current mode.
func (model *LoginModel) fieldCount() int {
	if model.mode == authModeRegister {
		return 3
	}
	return 2
}

// activeEditor returns the editor for the focused field.
func (model *LoginModel) activeEditor() *lineEditor {
	if model.mode == authModeRegister {
		switch model.fieldIndex {
		case 0:
			return &model.username
		case 1:
			return &model.email
		default:
			return &model.password
		}
	}
	if model.fieldIndex == 0 {
		return &model.email
	}
	return &model.password
}

// Update routes a key to the auth screen. Returns a command when the
// key triggered a login or register attempt.
func (model *LoginModel) Update(message tea.KeyMsg) tea.Cmd {
	// Ignore input while a request is in flight; the result message
	// unblocks the form.
	if model.busy {
		return nil
	}

	switch message.Type {
	case tea.KeyTab, tea.KeyDown:
		model.fieldIndex = (model.fieldIndex + 1) % model.fieldCount()
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		model.fieldIndex--
		if model.fieldIndex < 0 {
			model.fieldIndex = model.fieldCount() - 1
		}
		return nil
	case tea.KeyEnter:
		return model.submit()
	case tea.KeyCtrlR:
		model.toggleMode()
		return nil
	}

	model.activeEditor().Handle(message)
	return nil
}

// HandleResult applies the outcome of a submitted attempt. On success
// the session is already authenticated and the root model takes over;
// on failure the form re-enables with the formatted error.
func (model *LoginModel) HandleResult(result authResultMsg) {
	model.busy = false
	if result.err != nil {
		model.errText = apierror.Format(result.err)
	}
}

func (model *LoginModel) toggleMode() {
	if model.mode == authModeLogin {
		model.mode = authModeRegister
	} else {
		model.mode = authModeLogin
	}
	model.fieldIndex = 0
	model.errText = ""
}

// submit validates locally and dispatches the session call. Local
// validation failures surface immediately without a round trip.
func (model *LoginModel) submit() tea.Cmd {
	sess := model.session

	if model.mode == authModeRegister {
		registration := user.RegisterDto{
			Username: strings.TrimSpace(model.username.Value()),
			Email:    strings.TrimSpace(model.email.Value()),
			Password: model.password.Value(),
		}
		if err := registration.Validate(); err != nil {
			model.errText = err.Error()
			return nil
		}
		model.busy = true
		model.errText = ""
		return func() tea.Msg {
			return authResultMsg{err: sess.Register(context.Background(), registration)}
		}
	}

	credentials := user.LoginDto{
		Email:    strings.TrimSpace(model.email.Value()),
		Password: model.password.Value(),
	}
	if err := credentials.Validate(); err != nil {
		model.errText = err.Error()
		return nil
	}
	model.busy = true
	model.errText = ""
	return func() tea.Msg {
		return authResultMsg{err: sess.Login(context.Background(), credentials)}
	}
}

// loginBoxWidth is the fixed width of the centered auth box.
const loginBoxWidth = 48

// View renders the auth screen centered in the given dimensions.
func (model *LoginModel) View(width, height int) string {
	theme := model.theme

	boxWidth := loginBoxWidth
	if boxWidth > width {
		boxWidth = width
	}
	innerWidth := boxWidth - 4

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	activeLabelStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	errorStyle := lipgloss.NewStyle().Foreground(theme.ErrorText)

	heading := "Sign in to TaskFlow"
	action := "sign in"
	switchHint := "Ctrl+R create an account"
	if model.mode == authModeRegister {
		heading = "Create a TaskFlow account"
		action = "sign up"
		switchHint = "Ctrl+R back to sign in"
	}

	type fieldSpec struct {
		label  string
		editor *lineEditor
		masked bool
	}
	var fields []fieldSpec
	if model.mode == authModeRegister {
		fields = append(fields, fieldSpec{"Username", &model.username, false})
	}
	fields = append(fields,
		fieldSpec{"Email", &model.email, false},
		fieldSpec{"Password", &model.password, true},
	)

	var lines []string
	lines = append(lines, titleStyle.Render(heading), "")

	for index, field := range fields {
		active := index == model.fieldIndex && !model.busy
		label := field.label
		for len(label) < 8 {
			label += " "
		}
		var row string
		if active {
			row = activeLabelStyle.Render("▸ " + label + "  ")
		} else {
			row = labelStyle.Render("  " + label + "  ")
		}

		if field.masked {
			masked := maskedEditor(field.editor)
			row += masked.render(textStyle, cursorStyle, active)
		} else {
			row += field.editor.render(textStyle, cursorStyle, active)
		}
		lines = append(lines, row)
	}

	lines = append(lines, "")
	if model.busy {
		lines = append(lines, faintStyle.Render("Signing in…"))
	} else if model.errText != "" {
		wrapped := ansi.Wrap(errorStyle.Render(model.errText), innerWidth, " ,.;-+|")
		lines = append(lines, strings.Split(wrapped, "\n")...)
	} else {
		lines = append(lines, faintStyle.Render("Enter "+action+"  "+switchHint))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// maskedEditor returns a copy of the editor with every rune replaced
// by a bullet, preserving length and cursor so editing feels normal.
func maskedEditor(editor *lineEditor) lineEditor {
	masked := make([]rune, len(editor.runes))
	for index := range masked {
		masked[index] = '•'
	}
	return lineEditor{runes: masked, cursor: editor.cursor}
}
