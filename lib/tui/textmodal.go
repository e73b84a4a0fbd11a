// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TextModal is a centered modal overlay for multi-line text input.
// It implements a small text editor with cursor tracking and is used
// for editing task descriptions, where a single-line input is too
// cramped for markdown.
type TextModal struct {
	// Title is shown in the modal header (e.g. "Description — Fix login").
	Title string

	lines   [][]rune // Each line is a slice of runes.
	cursorY int      // Current line index.
	cursorX int      // Cursor position within the current line.
	theme   Theme
}

// NewTextModal creates a TextModal pre-filled with the given text.
// The cursor starts at the end of the content.
func NewTextModal(title, initial string, theme Theme) TextModal {
	modal := TextModal{
		Title: title,
		theme: theme,
	}
	for _, line := range strings.Split(initial, "\n") {
		modal.lines = append(modal.lines, []rune(line))
	}
	if len(modal.lines) == 0 {
		modal.lines = [][]rune{{}}
	}
	modal.cursorY = len(modal.lines) - 1
	modal.cursorX = len(modal.lines[modal.cursorY])
	return modal
}

// Value returns the current text content.
func (modal TextModal) Value() string {
	parts := make([]string, len(modal.lines))
	for index, line := range modal.lines {
		parts[index] = string(line)
	}
	return strings.Join(parts, "\n")
}

// Update processes a key message for the modal's text editor.
func (modal *TextModal) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			modal.insertRune(character)
		}

	case tea.KeyEnter:
		// Split the current line at the cursor.
		line := modal.lines[modal.cursorY]
		before := make([]rune, modal.cursorX)
		copy(before, line[:modal.cursorX])
		after := make([]rune, len(line)-modal.cursorX)
		copy(after, line[modal.cursorX:])

		modal.lines[modal.cursorY] = before
		newLines := make([][]rune, len(modal.lines)+1)
		copy(newLines, modal.lines[:modal.cursorY+1])
		newLines[modal.cursorY+1] = after
		copy(newLines[modal.cursorY+2:], modal.lines[modal.cursorY+1:])
		modal.lines = newLines
		modal.cursorY++
		modal.cursorX = 0

	case tea.KeyBackspace:
		if modal.cursorX > 0 {
			line := modal.lines[modal.cursorY]
			modal.lines[modal.cursorY] = append(line[:modal.cursorX-1], line[modal.cursorX:]...)
			modal.cursorX--
		} else if modal.cursorY > 0 {
			// Merge with previous line.
			previousLine := modal.lines[modal.cursorY-1]
			currentLine := modal.lines[modal.cursorY]
			modal.cursorX = len(previousLine)
			modal.lines[modal.cursorY-1] = append(previousLine, currentLine...)
			modal.lines = append(modal.lines[:modal.cursorY], modal.lines[modal.cursorY+1:]...)
			modal.cursorY--
		}

	case tea.KeyDelete:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.lines[modal.cursorY] = append(line[:modal.cursorX], line[modal.cursorX+1:]...)
		} else if modal.cursorY < len(modal.lines)-1 {
			// Merge with next line.
			nextLine := modal.lines[modal.cursorY+1]
			modal.lines[modal.cursorY] = append(line, nextLine...)
			modal.lines = append(modal.lines[:modal.cursorY+1], modal.lines[modal.cursorY+2:]...)
		}

	case tea.KeyLeft:
		if modal.cursorX > 0 {
			modal.cursorX--
		} else if modal.cursorY > 0 {
			modal.cursorY--
			modal.cursorX = len(modal.lines[modal.cursorY])
		}

	case tea.KeyRight:
		line := modal.lines[modal.cursorY]
		if modal.cursorX < len(line) {
			modal.cursorX++
		} else if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			modal.cursorX = 0
		}

	case tea.KeyUp:
		if modal.cursorY > 0 {
			modal.cursorY--
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyDown:
		if modal.cursorY < len(modal.lines)-1 {
			modal.cursorY++
			if modal.cursorX > len(modal.lines[modal.cursorY]) {
				modal.cursorX = len(modal.lines[modal.cursorY])
			}
		}

	case tea.KeyHome, tea.KeyCtrlA:
		modal.cursorX = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		modal.cursorX = len(modal.lines[modal.cursorY])
	}
}

func (modal *TextModal) insertRune(character rune) {
	line := modal.lines[modal.cursorY]
	newLine := make([]rune, len(line)+1)
	copy(newLine, line[:modal.cursorX])
	newLine[modal.cursorX] = character
	copy(newLine[modal.cursorX+1:], line[modal.cursorX:])
	modal.lines[modal.cursorY] = newLine
	modal.cursorX++
}

// Modal chrome overhead: 2 columns border + 2 columns padding = 4
// columns horizontal; 2 lines border + 1 title + 1 footer = 4 lines
// vertical. The inner text area gets the remainder.
const (
	textModalChromeWidth  = 4
	textModalChromeHeight = 4
	// Minimum inner text area. Below this the editor is too cramped
	// to be useful.
	textModalMinInnerWidth  = 30
	textModalMinInnerHeight = 5
	// Margin between the modal edge and the screen edge, so the user
	// can see the underlying view is still there. Collapses to 0 on
	// very small screens.
	textModalMargin = 2
)

// Render produces the modal overlay lines for splicing onto the view.
// Returns the rendered lines and the anchor position (top-left corner
// in screen coordinates).
func (modal TextModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	modalWidth := screenWidth - textModalMargin*2
	modalHeight := screenHeight - textModalMargin*2

	minWidth := textModalMinInnerWidth + textModalChromeWidth
	minHeight := textModalMinInnerHeight + textModalChromeHeight
	if modalWidth < minWidth {
		modalWidth = minWidth
	}
	if modalHeight < minHeight {
		modalHeight = minHeight
	}
	if modalWidth > screenWidth {
		modalWidth = screenWidth
	}
	if modalHeight > screenHeight {
		modalHeight = screenHeight
	}

	innerWidth := modalWidth - textModalChromeWidth
	innerHeight := modalHeight - textModalChromeHeight

	bgStyle := lipgloss.NewStyle().
		Background(modal.theme.OverlayBackground)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.OverlayBackground)
	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.OverlayBackground)
	cursorStyle := lipgloss.NewStyle().
		Reverse(true)
	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.NormalText).
		Background(modal.theme.OverlayBackground)

	title := titleStyle.Render(modal.Title)
	titleWidth := ansi.StringWidth(title)
	if titleWidth < innerWidth {
		title += bgStyle.Render(strings.Repeat(" ", innerWidth-titleWidth))
	}

	footer := footerStyle.Render("Ctrl+D submit  Esc cancel")
	footerWidth := ansi.StringWidth(footer)
	if footerWidth < innerWidth {
		footer += bgStyle.Render(strings.Repeat(" ", innerWidth-footerWidth))
	}

	// Scroll the view if the cursor is past the visible area.
	scrollOffset := 0
	if modal.cursorY >= innerHeight {
		scrollOffset = modal.cursorY - innerHeight + 1
	}

	var textLines []string
	for lineIndex := scrollOffset; lineIndex < scrollOffset+innerHeight; lineIndex++ {
		var renderedLine string
		if lineIndex < len(modal.lines) {
			line := modal.lines[lineIndex]
			if lineIndex == modal.cursorY {
				if modal.cursorX >= len(line) {
					renderedLine = textStyle.Render(string(line)) + cursorStyle.Render(" ")
				} else {
					before := textStyle.Render(string(line[:modal.cursorX]))
					atCursor := cursorStyle.Render(string(line[modal.cursorX : modal.cursorX+1]))
					after := textStyle.Render(string(line[modal.cursorX+1:]))
					renderedLine = before + atCursor + after
				}
			} else {
				renderedLine = textStyle.Render(string(line))
			}
		}

		lineWidth := ansi.StringWidth(renderedLine)
		if lineWidth < innerWidth {
			renderedLine += bgStyle.Render(strings.Repeat(" ", innerWidth-lineWidth))
		}
		textLines = append(textLines, renderedLine)
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		Background(modal.theme.OverlayBackground)

	inner := title + "\n" + strings.Join(textLines, "\n") + "\n" + footer
	rendered := borderStyle.Render(inner)

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
