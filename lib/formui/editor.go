// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// LineEditor is a single-line rune buffer with a cursor, used for
// inline editing of string, number, and time-of-day values. The model
// owns one instance and routes keystrokes to it while a leaf is being
// edited.
type LineEditor struct {
	buffer []rune
	cursor int
}

// NewLineEditor creates an editor seeded with the current value, with
// the cursor at the end.
func NewLineEditor(initial string) LineEditor {
	runes := []rune(initial)
	return LineEditor{buffer: runes, cursor: len(runes)}
}

// Value returns the edited text.
func (editor LineEditor) Value() string {
	return string(editor.buffer)
}

// Cursor returns the cursor position in runes, for rendering.
func (editor LineEditor) Cursor() int {
	return editor.cursor
}

// Update processes one key message. Enter and escape are handled by
// the model (commit and cancel); everything else edits the buffer.
func (editor *LineEditor) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		runes := message.Runes
		if message.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		for _, character := range runes {
			editor.buffer = append(editor.buffer[:editor.cursor],
				append([]rune{character}, editor.buffer[editor.cursor:]...)...)
			editor.cursor++
		}

	case tea.KeyBackspace:
		if editor.cursor > 0 {
			editor.buffer = append(editor.buffer[:editor.cursor-1], editor.buffer[editor.cursor:]...)
			editor.cursor--
		}

	case tea.KeyDelete:
		if editor.cursor < len(editor.buffer) {
			editor.buffer = append(editor.buffer[:editor.cursor], editor.buffer[editor.cursor+1:]...)
		}

	case tea.KeyLeft:
		if editor.cursor > 0 {
			editor.cursor--
		}

	case tea.KeyRight:
		if editor.cursor < len(editor.buffer) {
			editor.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		editor.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		editor.cursor = len(editor.buffer)

	case tea.KeyCtrlU:
		editor.buffer = append([]rune{}, editor.buffer[editor.cursor:]...)
		editor.cursor = 0
	}
}
