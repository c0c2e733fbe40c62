// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value any    // Document value installed on selection.

	// Checked marks the option in a multi-select dropdown (weekday
	// picking). Ignored in single-select mode.
	Checked bool
}

// DropdownOverlay renders a floating menu under the selected row. It
// captures all keyboard input while active: up/down to navigate,
// enter to select (or commit, in multi-select mode), space to toggle
// a check in multi-select mode, escape to dismiss.
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int

	// MultiSelect switches the dropdown from pick-one to
	// toggle-many-then-commit.
	MultiSelect bool

	// Purpose routes the selection when the dropdown closes. The
	// model sets and reads it; the overlay just carries it.
	Purpose DropdownPurpose
}

// DropdownPurpose identifies what the open dropdown is editing.
type DropdownPurpose int

const (
	// DropdownEnum picks an enum value for a string leaf.
	DropdownEnum DropdownPurpose = iota
	// DropdownUnion picks a union alternative by index.
	DropdownUnion
	// DropdownRecurrenceMode picks daily/weekly/custom.
	DropdownRecurrenceMode
	// DropdownWeekdays toggles the weekday set of a weekly schedule.
	DropdownWeekdays
)

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// ToggleCurrent flips the check on the highlighted option
// (multi-select mode only).
func (dropdown *DropdownOverlay) ToggleCurrent() {
	if dropdown.MultiSelect && dropdown.Cursor < len(dropdown.Options) {
		dropdown.Options[dropdown.Cursor].Checked = !dropdown.Options[dropdown.Cursor].Checked
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// CheckedValues returns the values of all checked options in order.
func (dropdown *DropdownOverlay) CheckedValues() []any {
	var values []any
	for _, option := range dropdown.Options {
		if option.Checked {
			values = append(values, option.Value)
		}
	}
	return values
}

// Render produces the dropdown lines for overlay splicing. Each line
// has the same visible width and a solid background for visual
// separation from the underlying content. The highlighted option uses
// a contrasting background.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	maxLabelWidth := 0
	for _, option := range dropdown.Options {
		labelWidth := ansi.StringWidth(option.Label)
		if labelWidth > maxLabelWidth {
			maxLabelWidth = labelWidth
		}
	}
	// Layout: marker, optional checkbox, label, right padding.
	innerWidth := 3 + maxLabelWidth
	if dropdown.MultiSelect {
		innerWidth += 4
	}
	totalWidth := innerWidth + 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.DropdownBackground)
	selectedBackground := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	for index, option := range dropdown.Options {
		marker := " "
		if index == dropdown.Cursor {
			marker = ">"
		}

		content := marker + " "
		if dropdown.MultiSelect {
			if option.Checked {
				content += "[x] "
			} else {
				content += "[ ] "
			}
		}
		content += option.Label

		rightPad := innerWidth - ansi.StringWidth(content)
		if rightPad < 0 {
			rightPad = 0
		}
		paddedContent := " " + content + strings.Repeat(" ", rightPad) + " "

		style := backgroundStyle
		if index == dropdown.Cursor {
			style = selectedBackground
		}
		styledLine := style.Render(paddedContent)

		// Ensure consistent visible width across all lines.
		if lineWidth := ansi.StringWidth(styledLine); lineWidth < totalWidth {
			styledLine += style.Render(strings.Repeat(" ", totalWidth-lineWidth))
		}

		lines = append(lines, styledLine)
	}

	return lines
}
