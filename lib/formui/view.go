// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chatwright/chatwright/lib/recurrence"
	"github.com/chatwright/chatwright/lib/schema"
)

// chromeLines is the vertical space taken by the header, status bar,
// and help line around the scrolling form area.
const chromeLines = 4

// indentWidth is the number of spaces per tree depth level.
const indentWidth = 2

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}

	var view strings.Builder
	view.WriteString(model.renderHeader())
	view.WriteByte('\n')

	if model.viewMode == ViewRaw {
		view.WriteString(model.renderRawPane())
	} else {
		view.WriteString(model.renderRows())
	}

	view.WriteByte('\n')
	view.WriteString(model.renderStatusBar())
	view.WriteByte('\n')
	view.WriteString(model.renderHelp())
	return view.String()
}

func (model Model) renderHeader() string {
	title := "chatwright console"
	if model.recordID != "" {
		title += " — " + model.recordID
	}
	tab := "form"
	if model.viewMode == ViewRaw {
		tab = "raw"
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Render(title)
	return header + lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render("  ["+tab+"]")
}

// renderRows draws the visible slice of the field list plus the
// dropdown overlay when one is open.
func (model Model) renderRows() string {
	page := model.pageSize()
	lines := make([]string, 0, page)

	end := model.scrollOffset + page
	if end > len(model.rows) {
		end = len(model.rows)
	}
	// Rows with error annotations emit more than one line, so the
	// overlay anchor is tracked in emitted lines, not row indices.
	anchor := -1
	for index := model.scrollOffset; index < end; index++ {
		if index == model.dropdownRow {
			anchor = len(lines) + 1
		}
		lines = append(lines, model.renderRow(index)...)
	}
	for len(lines) < page {
		lines = append(lines, "")
	}

	// The dropdown renders as an overlay spliced in directly beneath
	// its row's field line, pushing later lines down.
	if model.focus == FocusDropdown && model.dropdown != nil {
		if anchor < 0 || anchor > len(lines) {
			anchor = 0
		}
		overlay := model.dropdown.Render(model.theme)
		lines = append(lines[:anchor], append(overlay, lines[anchor:]...)...)
	}
	if len(lines) > page {
		lines = lines[:page]
	}

	return strings.Join(lines, "\n")
}

// renderRow draws one row and its error annotations. The returned
// slice has the field line first and one indented line per error.
func (model Model) renderRow(index int) []string {
	row := model.rows[index]
	selected := index == model.cursor && model.focus != FocusRaw

	indent := strings.Repeat(" ", row.Depth*indentWidth)
	line := indent + model.rowText(index, row)

	style := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if selected {
		style = lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
	}
	lines := []string{style.Render(line)}

	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	for _, problem := range row.Errors {
		lines = append(lines, indent+"  "+errorStyle.Render("✗ "+problem.Message))
	}
	return lines
}

// rowText formats a row's label and value without selection styling.
func (model Model) rowText(index int, row Row) string {
	// An inline editor replaces the value portion of its row.
	if model.focus == FocusEditor && index == model.editRow {
		return row.Label + ": " + model.renderEditor()
	}

	switch {
	case row.Diagnostic != "":
		return row.Label + ": " + lipgloss.NewStyle().
			Foreground(model.theme.DiagnosticText).
			Render(row.Diagnostic)

	case row.UnionPicker:
		label := "(none)"
		if active := schema.ActiveAlternative(row.Schema, row.Value); active >= 0 {
			label = alternativeLabel(row.Schema.OneOf[active], model.schemaRoot.Defs)
		}
		return row.Label + ": " + lipgloss.NewStyle().
			Foreground(model.theme.SummaryText).
			Render("▾ "+label)

	case row.Collapsible:
		marker := "▾"
		if row.Collapsed {
			marker = "▸"
		}
		suffix := ""
		if row.Kind == schema.KindArray {
			suffix = fmt.Sprintf(" (%d items)", row.ItemCount())
		}
		return marker + " " + row.Label + suffix

	case row.Recurrence:
		return row.Label + ": " + model.renderRecurrenceValue(row)

	default:
		return row.Label + ": " + model.renderLeafValue(row)
	}
}

func (model Model) renderEditor() string {
	text := model.editor.Value()
	cursor := model.editor.Cursor()
	// Block cursor by inverting the character under it.
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if cursor >= len([]rune(text)) {
		return text + cursorStyle.Render(" ")
	}
	runes := []rune(text)
	return string(runes[:cursor]) +
		cursorStyle.Render(string(runes[cursor])) +
		string(runes[cursor+1:])
}

// renderLeafValue formats a leaf's current value, or an "(unset)"
// placeholder when the document has no value at its path.
func (model Model) renderLeafValue(row Row) string {
	if row.Value == nil {
		return lipgloss.NewStyle().
			Foreground(model.theme.UnsetText).
			Render("(unset)")
	}
	valueStyle := lipgloss.NewStyle().Foreground(model.theme.ValueText)
	switch value := row.Value.(type) {
	case string:
		return valueStyle.Render(value)
	case bool:
		if value {
			return valueStyle.Render("[x] true")
		}
		return valueStyle.Render("[ ] false")
	case float64:
		return valueStyle.Render(formatNumber(value))
	default:
		return valueStyle.Render(fmt.Sprintf("%v", value))
	}
}

// renderRecurrenceValue shows the human-readable summary plus, for
// parseable expressions, a preview of the next occurrence.
func (model Model) renderRecurrenceValue(row Row) string {
	text, _ := row.Value.(string)
	if text == "" {
		return lipgloss.NewStyle().
			Foreground(model.theme.UnsetText).
			Render("(unset)")
	}

	summaryStyle := lipgloss.NewStyle().Foreground(model.theme.SummaryText)
	summary := summaryStyle.Render(recurrenceSummary(row.Value))

	schedule, err := recurrence.Parse(text)
	if err != nil {
		return summary
	}
	next, err := schedule.Next(time.Now())
	if err != nil {
		return summary
	}
	return summary + lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render("  (next: "+next.Format("Mon Jan 2 15:04")+")")
}

func formatNumber(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%g", value)
}

// renderRawPane draws the raw JSON editor with a line-column readout
// and any pending parse error.
func (model Model) renderRawPane() string {
	height := model.pageSize()
	if model.parseError != "" {
		height--
	}

	lines := model.rawPane.VisibleLines(height)
	cursorLine, cursorColumn := model.rawPane.CursorPosition()
	offset := model.rawPane.ScrollOffset()

	rendered := make([]string, 0, height+1)
	for index, line := range lines {
		if offset+index == cursorLine {
			line = markColumn(line, cursorColumn)
		}
		rendered = append(rendered, line)
	}
	for len(rendered) < height {
		rendered = append(rendered, "")
	}

	if model.parseError != "" {
		rendered = append(rendered, lipgloss.NewStyle().
			Foreground(model.theme.ErrorText).
			Render("parse error: "+model.parseError))
	}
	return strings.Join(rendered, "\n")
}

// markColumn inverts the character at the cursor column.
func markColumn(line string, column int) string {
	runes := []rune(line)
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if column >= len(runes) {
		return line + cursorStyle.Render(" ")
	}
	return string(runes[:column]) +
		cursorStyle.Render(string(runes[column])) +
		string(runes[column+1:])
}

func (model Model) renderStatusBar() string {
	var parts []string
	if model.dirty {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(model.theme.ModifiedAccent).
			Render("● modified"))
	} else {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("saved"))
	}
	if total := model.errIndex.Total(); total > 0 {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(model.theme.ErrorText).
			Render(fmt.Sprintf("%d validation errors", total)))
	}
	if model.statusMessage != "" {
		parts = append(parts, model.statusMessage)
	}
	return strings.Join(parts, "  ")
}

func (model Model) renderHelp() string {
	help := "↑/↓ move  enter edit  space toggle  a add  d delete  K/J reorder  tab raw  ctrl+s save  q quit"
	if model.focus == FocusRaw {
		help = "ctrl+d apply  esc back to form  ctrl+s save  editing raw JSON"
	}
	if model.focus == FocusDropdown {
		help = "↑/↓ move  space check  enter select  esc cancel"
	}
	if model.focus == FocusEditor {
		help = "enter commit  esc cancel"
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help)
}
