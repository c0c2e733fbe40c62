// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RawPane is the raw-text view of the document: a multi-line text
// editor holding the serialized canonical document, or, after a
// rejected edit, the user's still-invalid text so it can be fixed in
// place. The pane never diverges silently from the canonical
// document: every accepted change overwrites it with a fresh
// serialization.
type RawPane struct {
	lines   [][]rune // Each line is a slice of runes.
	cursorY int      // Current line index.
	cursorX int      // Cursor position within the current line.
	scroll  int      // First visible line.
}

// NewRawPane creates a pane holding text.
func NewRawPane(text string) RawPane {
	pane := RawPane{}
	pane.SetText(text)
	return pane
}

// SetText replaces the pane's content and clamps the cursor. Called
// with a fresh serialization after every accepted document change.
func (pane *RawPane) SetText(text string) {
	pane.lines = nil
	for _, line := range strings.Split(text, "\n") {
		pane.lines = append(pane.lines, []rune(line))
	}
	if pane.cursorY >= len(pane.lines) {
		pane.cursorY = len(pane.lines) - 1
	}
	if pane.cursorX > len(pane.lines[pane.cursorY]) {
		pane.cursorX = len(pane.lines[pane.cursorY])
	}
}

// Value returns the current text content of the pane.
func (pane RawPane) Value() string {
	parts := make([]string, len(pane.lines))
	for index, line := range pane.lines {
		parts[index] = string(line)
	}
	return strings.Join(parts, "\n")
}

// CursorPosition returns the cursor line and column for rendering.
func (pane RawPane) CursorPosition() (line, column int) {
	return pane.cursorY, pane.cursorX
}

// Update processes a key message for the pane's text editor.
func (pane *RawPane) Update(message tea.KeyMsg) {
	switch message.Type {
	case tea.KeyRunes, tea.KeySpace:
		runes := message.Runes
		if message.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		for _, character := range runes {
			pane.insertRune(character)
		}

	case tea.KeyTab:
		pane.insertRune(' ')
		pane.insertRune(' ')

	case tea.KeyEnter:
		// Split the current line at the cursor.
		line := pane.lines[pane.cursorY]
		before := make([]rune, pane.cursorX)
		copy(before, line[:pane.cursorX])
		after := make([]rune, len(line)-pane.cursorX)
		copy(after, line[pane.cursorX:])

		pane.lines[pane.cursorY] = before
		newLines := make([][]rune, len(pane.lines)+1)
		copy(newLines, pane.lines[:pane.cursorY+1])
		newLines[pane.cursorY+1] = after
		copy(newLines[pane.cursorY+2:], pane.lines[pane.cursorY+1:])
		pane.lines = newLines
		pane.cursorY++
		pane.cursorX = 0

	case tea.KeyBackspace:
		if pane.cursorX > 0 {
			line := pane.lines[pane.cursorY]
			pane.lines[pane.cursorY] = append(line[:pane.cursorX-1], line[pane.cursorX:]...)
			pane.cursorX--
		} else if pane.cursorY > 0 {
			// Merge with previous line.
			previousLine := pane.lines[pane.cursorY-1]
			currentLine := pane.lines[pane.cursorY]
			pane.cursorX = len(previousLine)
			pane.lines[pane.cursorY-1] = append(previousLine, currentLine...)
			pane.lines = append(pane.lines[:pane.cursorY], pane.lines[pane.cursorY+1:]...)
			pane.cursorY--
		}

	case tea.KeyDelete:
		line := pane.lines[pane.cursorY]
		if pane.cursorX < len(line) {
			pane.lines[pane.cursorY] = append(line[:pane.cursorX], line[pane.cursorX+1:]...)
		} else if pane.cursorY < len(pane.lines)-1 {
			// Merge with next line.
			nextLine := pane.lines[pane.cursorY+1]
			pane.lines[pane.cursorY] = append(line, nextLine...)
			pane.lines = append(pane.lines[:pane.cursorY+1], pane.lines[pane.cursorY+2:]...)
		}

	case tea.KeyLeft:
		if pane.cursorX > 0 {
			pane.cursorX--
		} else if pane.cursorY > 0 {
			pane.cursorY--
			pane.cursorX = len(pane.lines[pane.cursorY])
		}

	case tea.KeyRight:
		line := pane.lines[pane.cursorY]
		if pane.cursorX < len(line) {
			pane.cursorX++
		} else if pane.cursorY < len(pane.lines)-1 {
			pane.cursorY++
			pane.cursorX = 0
		}

	case tea.KeyUp:
		if pane.cursorY > 0 {
			pane.cursorY--
			if pane.cursorX > len(pane.lines[pane.cursorY]) {
				pane.cursorX = len(pane.lines[pane.cursorY])
			}
		}

	case tea.KeyDown:
		if pane.cursorY < len(pane.lines)-1 {
			pane.cursorY++
			if pane.cursorX > len(pane.lines[pane.cursorY]) {
				pane.cursorX = len(pane.lines[pane.cursorY])
			}
		}

	case tea.KeyHome:
		pane.cursorX = 0

	case tea.KeyEnd:
		pane.cursorX = len(pane.lines[pane.cursorY])
	}
}

// insertRune inserts one character at the cursor.
func (pane *RawPane) insertRune(character rune) {
	line := pane.lines[pane.cursorY]
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:pane.cursorX]...)
	next = append(next, character)
	next = append(next, line[pane.cursorX:]...)
	pane.lines[pane.cursorY] = next
	pane.cursorX++
}

// VisibleLines returns the window of lines to render given the pane
// height, scrolling to keep the cursor in view.
func (pane *RawPane) VisibleLines(height int) []string {
	if height <= 0 {
		return nil
	}
	if pane.cursorY < pane.scroll {
		pane.scroll = pane.cursorY
	}
	if pane.cursorY >= pane.scroll+height {
		pane.scroll = pane.cursorY - height + 1
	}
	end := pane.scroll + height
	if end > len(pane.lines) {
		end = len(pane.lines)
	}
	visible := make([]string, 0, end-pane.scroll)
	for _, line := range pane.lines[pane.scroll:end] {
		visible = append(visible, string(line))
	}
	return visible
}

// ScrollOffset returns the first visible line index from the last
// VisibleLines call, for cursor placement.
func (pane RawPane) ScrollOffset() int {
	return pane.scroll
}
