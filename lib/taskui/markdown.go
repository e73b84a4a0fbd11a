// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/taskflow-project/taskflow/lib/tui"
)

// markdownParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share — parsing creates per-call state via Parse(reader).
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// renderTerminalMarkdown parses markdown and renders it as styled
// terminal output for the detail pane. Soft line breaks (single
// newlines within paragraphs) become spaces so hard-wrapped source
// text reflows correctly at any pane width. Code blocks, lists, and
// blockquotes preserve their structure.
func renderTerminalMarkdown(input string, theme tui.Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	reader := text.NewReader(source)
	document := getMarkdownParser().Parser().Parse(reader)

	// Force the ANSI256 color profile: this output is always for
	// terminal display, so auto-detection (which sees no TTY in tests)
	// would strip all color.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks a goldmark AST and produces styled terminal
// text. It uses a direct ast.Walk rather than goldmark's renderer
// interface because terminal rendering needs accumulate-then-wrap
// semantics: paragraph inline content collects in a buffer and gets
// word-wrapped as a unit when the paragraph closes.
type markdownRenderer struct {
	source []byte
	theme  tui.Theme
	width  int

	output strings.Builder

	// Inline accumulator: collects styled text fragments within a
	// paragraph or heading. Flushed with word-wrap when the containing
	// block closes.
	inline strings.Builder

	// Prefix stack for nested block containers (blockquotes, lists).
	prefixStack     []prefixLevel
	linePrefix      string
	linePrefixWidth int

	// Pending bullet: replaces linePrefix for the very next emitted
	// line, then clears. Used for list item bullets and numbers.
	pendingBullet string

	// Inline style counters. Counters rather than booleans so nested
	// emphasis unwinds correctly.
	boldCount          int
	italicCount        int
	strikethroughCount int

	listStack []listState

	lipRenderer *lipgloss.Renderer

	trailingNewlines int
}

type prefixLevel struct {
	text  string
	width int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (renderer *markdownRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

// currentWidth returns the available content width after accounting
// for nesting prefixes. Clamped to a minimum of 10 to prevent
// degenerate wrapping.
func (renderer *markdownRenderer) currentWidth() int {
	width := renderer.width - renderer.linePrefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (renderer *markdownRenderer) pushPrefix(prefixText string, visibleWidth int) {
	renderer.prefixStack = append(renderer.prefixStack, prefixLevel{
		text:  prefixText,
		width: visibleWidth,
	})
	renderer.linePrefix += prefixText
	renderer.linePrefixWidth += visibleWidth
}

func (renderer *markdownRenderer) popPrefix() {
	if len(renderer.prefixStack) == 0 {
		return
	}
	top := renderer.prefixStack[len(renderer.prefixStack)-1]
	renderer.prefixStack = renderer.prefixStack[:len(renderer.prefixStack)-1]
	renderer.linePrefix = renderer.linePrefix[:len(renderer.linePrefix)-len(top.text)]
	renderer.linePrefixWidth -= top.width
}

func (renderer *markdownRenderer) inTightList() bool {
	if len(renderer.listStack) == 0 {
		return false
	}
	return renderer.listStack[len(renderer.listStack)-1].tight
}

// writeOutput appends text to the output buffer, tracking trailing
// newlines for blank line management.
func (renderer *markdownRenderer) writeOutput(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)

	newTrailing := 0
	entirelyNewlines := true
	for index := len(s) - 1; index >= 0; index-- {
		if s[index] == '\n' {
			newTrailing++
		} else {
			entirelyNewlines = false
			break
		}
	}
	if entirelyNewlines {
		renderer.trailingNewlines += newTrailing
	} else {
		renderer.trailingNewlines = newTrailing
	}
}

func (renderer *markdownRenderer) ensureNewline() {
	if renderer.trailingNewlines < 1 {
		renderer.writeOutput("\n")
	}
}

func (renderer *markdownRenderer) ensureBlankLine() {
	for renderer.trailingNewlines < 2 {
		renderer.writeOutput("\n")
	}
}

// consumeLinePrefix returns the prefix for the current line: the
// pending bullet if one is set (first line of a list item), otherwise
// the regular line prefix.
func (renderer *markdownRenderer) consumeLinePrefix() string {
	if renderer.pendingBullet != "" {
		bullet := renderer.pendingBullet
		renderer.pendingBullet = ""
		return bullet
	}
	return renderer.linePrefix
}

// applyPrefixes prepends the appropriate line prefix to each line of
// text.
func (renderer *markdownRenderer) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for index, line := range lines {
		if index == 0 {
			result.WriteString(renderer.consumeLinePrefix())
		} else {
			result.WriteString(renderer.linePrefix)
		}
		result.WriteString(line)
		if index < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// flushInline word-wraps the accumulated inline content to the
// current width, applies line prefixes, and resets the buffer.
func (renderer *markdownRenderer) flushInline() string {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return ""
	}

	content = ansi.Wrap(content, renderer.currentWidth(), " ,.;-+|")
	return renderer.applyPrefixes(content)
}

// styledText applies the current inline style to a text string.
func (renderer *markdownRenderer) styledText(content string) string {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	if renderer.strikethroughCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// highlightCode uses chroma to syntax-highlight code. Returns
// FaintText-styled plain text on failure (unknown language, chroma
// error).
func (renderer *markdownRenderer) highlightCode(code, language string) string {
	if language == "" {
		return renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return renderer.newStyle().Foreground(renderer.theme.FaintText).Render(code)
	}
	return buffer.String()
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:
		// Nothing on entering or leaving.

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			flushed := renderer.flushInline()
			if flushed != "" {
				renderer.writeOutput(flushed)
				renderer.ensureNewline()
				if !renderer.inTightList() {
					renderer.ensureBlankLine()
				}
			}
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			renderer.renderFencedCodeBlock(node.(*ast.FencedCodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			renderer.renderCodeBlock(node.(*ast.CodeBlock))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			renderer.pushPrefix("│ ", 2)
		} else {
			renderer.popPrefix()
			renderer.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			renderer.enterList(node.(*ast.List))
		} else {
			renderer.leaveList()
		}

	case ast.KindListItem:
		if entering {
			renderer.enterListItem()
		} else {
			renderer.leaveListItem()
		}

	case ast.KindThematicBreak:
		if entering {
			renderer.ensureBlankLine()
			rule := renderer.newStyle().
				Foreground(renderer.theme.BorderColor).
				Render(strings.Repeat("─", renderer.currentWidth()))
			renderer.writeOutput(renderer.consumeLinePrefix() + rule)
			renderer.ensureNewline()
			renderer.ensureBlankLine()
		}

	case ast.KindHTMLBlock, ast.KindRawHTML:
		// Raw HTML has no terminal rendering; skip it.
		if entering {
			return ast.WalkSkipChildren, nil
		}

	case ast.KindText:
		if entering {
			renderer.handleText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			str := node.(*ast.String)
			renderer.inline.WriteString(renderer.styledText(string(str.Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			renderer.boldCount += delta
		} else {
			renderer.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			renderer.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			renderer.renderLink(node.(*ast.Link))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			autoLink := node.(*ast.AutoLink)
			url := string(autoLink.URL(renderer.source))
			linkStyle := renderer.newStyle().
				Foreground(renderer.theme.LevelMedium).
				Underline(true)
			renderer.inline.WriteString(linkStyle.Render(url))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			label := string(image.Text(renderer.source))
			faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
			renderer.inline.WriteString(faint.Render("[image: " + label + "]"))
			return ast.WalkSkipChildren, nil
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strikethroughCount++
		} else {
			renderer.strikethroughCount--
		}

	case extast.KindTaskCheckBox:
		if entering {
			checkbox := node.(*extast.TaskCheckBox)
			if checkbox.IsChecked {
				checkStyle := renderer.newStyle().Foreground(renderer.theme.StatusCompleted)
				renderer.inline.WriteString(checkStyle.Render("[x]") + " ")
			} else {
				renderer.inline.WriteString(renderer.styledText("[ ] "))
			}
		}

	case extast.KindTable:
		if entering {
			renderer.renderTable(node)
			return ast.WalkSkipChildren, nil
		}
	}

	return ast.WalkContinue, nil
}

func (renderer *markdownRenderer) leaveHeading(heading *ast.Heading) {
	// Strip inline styling — the heading style replaces it wholesale.
	content := ansi.Strip(renderer.inline.String())
	renderer.inline.Reset()
	if content == "" {
		return
	}

	style := renderer.newStyle().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(renderer.theme.HeaderForeground)
	} else {
		style = style.Foreground(renderer.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), renderer.currentWidth(), " ,.;-+|")
	flushed := renderer.applyPrefixes(wrapped)
	renderer.ensureBlankLine()
	renderer.writeOutput(flushed)
	renderer.ensureNewline()
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) renderFencedCodeBlock(node *ast.FencedCodeBlock) {
	language := string(node.Language(renderer.source))
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(renderer.source))
	}

	highlighted := renderer.highlightCode(code.String(), language)
	renderer.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		renderer.writeOutput(renderer.consumeLinePrefix() + line)
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) renderCodeBlock(node *ast.CodeBlock) {
	var code strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		code.Write(segment.Value(renderer.source))
	}

	faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
	renderer.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(code.String(), "\n"), "\n") {
		renderer.writeOutput(renderer.consumeLinePrefix() + faint.Render(line))
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) enterList(list *ast.List) {
	startNumber := 0
	if list.IsOrdered() {
		startNumber = list.Start
	}
	renderer.listStack = append(renderer.listStack, listState{
		ordered: list.IsOrdered(),
		counter: startNumber,
		tight:   list.IsTight,
	})
}

func (renderer *markdownRenderer) leaveList() {
	if len(renderer.listStack) > 0 {
		renderer.listStack = renderer.listStack[:len(renderer.listStack)-1]
	}
	if !renderer.inTightList() {
		renderer.ensureBlankLine()
	}
}

func (renderer *markdownRenderer) enterListItem() {
	if len(renderer.listStack) == 0 {
		return
	}
	top := &renderer.listStack[len(renderer.listStack)-1]

	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	} else {
		bullet = "- "
	}

	bulletWidth := len(bullet) // ASCII-only, so byte length == visual width.
	continuation := strings.Repeat(" ", bulletWidth)

	// The pending bullet includes the current linePrefix so the first
	// line of the item is indented like its siblings; continuation
	// lines then pick up the pushed prefix.
	renderer.pendingBullet = renderer.linePrefix + bullet
	renderer.pushPrefix(continuation, bulletWidth)
}

func (renderer *markdownRenderer) leaveListItem() {
	renderer.popPrefix()
	renderer.pendingBullet = ""
}

func (renderer *markdownRenderer) handleText(textNode *ast.Text) {
	content := string(textNode.Segment.Value(renderer.source))
	renderer.inline.WriteString(renderer.styledText(content))

	if textNode.HardLineBreak() {
		// Hard break: flush the current inline content as its own line.
		flushed := renderer.flushInline()
		if flushed != "" {
			renderer.writeOutput(flushed)
			renderer.ensureNewline()
		}
	} else if textNode.SoftLineBreak() {
		// Soft break: a space, so the paragraph reflows at pane width.
		renderer.inline.WriteString(" ")
	}
}

func (renderer *markdownRenderer) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			code.Write(textNode.Segment.Value(renderer.source))
		}
	}

	codeStyle := renderer.newStyle().
		Foreground(renderer.theme.StatusInProgress)
	renderer.inline.WriteString(codeStyle.Render(code.String()))
}

func (renderer *markdownRenderer) renderLink(link *ast.Link) {
	label := string(link.Text(renderer.source))
	url := string(link.Destination)

	linkStyle := renderer.newStyle().
		Foreground(renderer.theme.LevelMedium).
		Underline(true)
	renderer.inline.WriteString(linkStyle.Render(label))

	// Show the destination when it adds information beyond the label.
	if url != "" && url != label {
		faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
		renderer.inline.WriteString(faint.Render(" (" + url + ")"))
	}
}

// renderTable renders a GFM table as aligned plain-text columns. Cell
// styling is dropped; the detail pane is narrow enough that borders
// would cost more width than they are worth.
func (renderer *markdownRenderer) renderTable(table ast.Node) {
	var rows [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, string(cell.Text(renderer.source)))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	// Column widths from the widest cell in each column.
	var widths []int
	for _, row := range rows {
		for index, cell := range row {
			if index >= len(widths) {
				widths = append(widths, 0)
			}
			if cellWidth := ansi.StringWidth(cell); cellWidth > widths[index] {
				widths[index] = cellWidth
			}
		}
	}

	faint := renderer.newStyle().Foreground(renderer.theme.FaintText)
	normal := renderer.newStyle().Foreground(renderer.theme.NormalText)

	renderer.ensureBlankLine()
	for rowIndex, row := range rows {
		var line strings.Builder
		for index, cell := range row {
			padded := cell + strings.Repeat(" ", widths[index]-ansi.StringWidth(cell))
			if rowIndex == 0 {
				line.WriteString(normal.Bold(true).Render(padded))
			} else {
				line.WriteString(normal.Render(padded))
			}
			if index < len(row)-1 {
				line.WriteString(faint.Render(" │ "))
			}
		}
		renderer.writeOutput(renderer.consumeLinePrefix() + line.String())
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}
