// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chatwright/chatwright/lib/document"
	"github.com/chatwright/chatwright/lib/draft"
	"github.com/chatwright/chatwright/lib/recurrence"
	"github.com/chatwright/chatwright/lib/schema"
	"github.com/chatwright/chatwright/lib/validation"
)

// Backend is the slice of the console API the form needs: validation
// checks and saves for one record. Implemented by the consoleapi
// client in production and by stubs in tests.
type Backend interface {
	// Check validates the document server-side without persisting.
	Check(ctx context.Context, doc any) ([]validation.Error, error)
	// Save persists the full document. A returned error list is a
	// validation outcome, not a failure.
	Save(ctx context.Context, doc any) ([]validation.Error, error)
}

// ViewMode selects between the structured form and the raw JSON pane.
type ViewMode int

const (
	// ViewForm shows the structured field rows.
	ViewForm ViewMode = iota
	// ViewRaw shows the raw JSON text editor.
	ViewRaw
)

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusRows means navigation keys move the field cursor.
	FocusRows FocusRegion = iota
	// FocusEditor means keystrokes go to the inline line editor.
	// Enter commits, escape cancels.
	FocusEditor
	// FocusDropdown means a dropdown overlay is active and captures
	// all keyboard input until selection or dismissal.
	FocusDropdown
	// FocusRaw means keystrokes go to the raw JSON pane. Ctrl+D
	// applies the text as a document edit.
	FocusRaw
)

// editPurpose says what the inline editor's committed text becomes.
type editPurpose int

const (
	editString editPurpose = iota
	editNumber
	editTime
)

// debounceDelay is how long after the last edit the server validation
// check fires. A new edit within the window cancels the pending check
// rather than queuing a second one.
const debounceDelay = 400 * time.Millisecond

// requestTimeout bounds the background check and save calls issued by
// the model's commands.
const requestTimeout = 15 * time.Second

// debounceElapsedMsg fires when the debounce window closes. The
// generation stamps which edit the window belonged to; a stale
// generation means a newer edit superseded it.
type debounceElapsedMsg struct {
	generation int
}

// checkResultMsg delivers an asynchronous validation check.
type checkResultMsg struct {
	generation int
	errors     []validation.Error
	err        error
}

// saveResultMsg delivers an asynchronous save.
type saveResultMsg struct {
	errors []validation.Error
	err    error
}

// statusFadeMsg clears a transient status notice.
type statusFadeMsg struct{}

// Model is the form/document synchronizer: the top-level bubbletea
// model owning the canonical {schema, document, errors} triple.
type Model struct {
	schemaRoot *schema.Root
	doc        any
	errIndex   *validation.Index

	backend    Backend
	recordID   string
	draftStore *draft.Store

	theme Theme
	keys  KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Visible rows derived from the canonical triple, plus cursor
	// state. selectedPath keeps the cursor on the same field across
	// rebuilds.
	rows         []Row
	cursor       int
	scrollOffset int
	selectedPath string
	collapsed    map[string]bool

	viewMode ViewMode
	focus    FocusRegion

	// Inline editing state. editRow indexes rows while FocusEditor.
	editor  LineEditor
	editRow int
	purpose editPurpose

	// Dropdown overlay state. dropdownRow indexes rows while
	// FocusDropdown.
	dropdown    *DropdownOverlay
	dropdownRow int

	// In-progress recurrence picker state: populated while walking a
	// recurrence field through mode, time, and weekday entry.
	pendingRecurrence *recurrence.State

	// Raw pane state. parseError holds the message of the last
	// rejected raw edit; the pane itself keeps the invalid text.
	rawPane    RawPane
	parseError string

	// Session-level notices (network failures, save outcomes).
	statusMessage string

	// dirty is true while the canonical document has unsaved changes.
	dirty bool

	// generation stamps the latest accepted edit. Debounce windows
	// and check responses carry the generation they were issued for;
	// anything stale is discarded.
	generation int
}

// Options configures NewModel beyond the required triple.
type Options struct {
	Backend    Backend
	RecordID   string
	DraftStore *draft.Store // Nil disables draft autosave.
	Theme      *Theme       // Nil uses DefaultTheme.
	Keys       *KeyMap      // Nil uses DefaultKeyMap.
}

// NewModel creates the form for one record's schema and document.
func NewModel(root *schema.Root, doc any, options Options) Model {
	model := Model{
		schemaRoot: root,
		doc:        doc,
		errIndex:   validation.NewIndex(nil),
		backend:    options.Backend,
		recordID:   options.RecordID,
		draftStore: options.DraftStore,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		collapsed:  make(map[string]bool),
		editRow:    -1,
	}
	if options.Theme != nil {
		model.theme = *options.Theme
	}
	if options.Keys != nil {
		model.keys = *options.Keys
	}

	model.rebuildRows()
	model.refreshRawPane()
	return model
}

// Document returns the canonical document (read-only snapshot).
func (model Model) Document() any {
	return model.doc
}

// Dirty reports whether unsaved changes exist.
func (model Model) Dirty() bool {
	return model.dirty
}

// Rows returns the current visible rows. Exposed for tests.
func (model Model) Rows() []Row {
	return model.rows
}

// Init implements tea.Model: run one validation pass against the
// fetched document so pre-existing problems show immediately.
func (model Model) Init() tea.Cmd {
	if model.backend == nil {
		return nil
	}
	return model.checkCmd(model.generation)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case debounceElapsedMsg:
		// A newer edit supersedes this window; nothing is queued in
		// its place (the newer edit scheduled its own window).
		if message.generation != model.generation || model.backend == nil {
			return model, nil
		}
		return model, model.checkCmd(message.generation)

	case checkResultMsg:
		// Responses are not guaranteed to resolve in issue order: a
		// result for anything but the current generation is stale
		// and dropped.
		if message.generation != model.generation {
			return model, nil
		}
		if message.err != nil {
			model.statusMessage = "validation check failed: " + message.err.Error()
			return model, nil
		}
		model.replaceErrors(message.errors)
		return model, nil

	case saveResultMsg:
		return model.handleSaveResult(message)

	case statusFadeMsg:
		model.statusMessage = ""
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

// handleKey routes keyboard input by focus region.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.focus {
	case FocusEditor:
		return model.handleEditorKeys(message)
	case FocusDropdown:
		return model.handleDropdownKeys(message)
	case FocusRaw:
		return model.handleRawKeys(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.ViewToggle):
		model.viewMode = ViewRaw
		model.focus = FocusRaw
		return model, nil

	case key.Matches(message, model.keys.Save):
		return model.startSave()

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)
	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.pageSize())
	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.pageSize())
	case key.Matches(message, model.keys.Home):
		model.setCursor(0)
	case key.Matches(message, model.keys.End):
		model.setCursor(len(model.rows) - 1)

	case key.Matches(message, model.keys.Collapse):
		model.setCollapsed(true)
	case key.Matches(message, model.keys.Expand):
		model.setCollapsed(false)

	case key.Matches(message, model.keys.Toggle):
		return model.toggleBoolean()

	case key.Matches(message, model.keys.Edit):
		return model.beginEdit()

	case key.Matches(message, model.keys.AddItem):
		return model.addArrayItem()
	case key.Matches(message, model.keys.RemoveItem):
		return model.removeArrayItem()
	case key.Matches(message, model.keys.MoveUp):
		return model.moveArrayItem(-1)
	case key.Matches(message, model.keys.MoveDown):
		return model.moveArrayItem(1)
	}

	return model, nil
}

// current returns the row under the cursor, or nil when the form is
// empty.
func (model *Model) current() *Row {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return nil
	}
	return &model.rows[model.cursor]
}

// moveCursor moves the field cursor by delta, clamped.
func (model *Model) moveCursor(delta int) {
	model.setCursor(model.cursor + delta)
}

func (model *Model) setCursor(position int) {
	if position < 0 {
		position = 0
	}
	if position > len(model.rows)-1 {
		position = len(model.rows) - 1
	}
	model.cursor = position
	if row := model.current(); row != nil {
		model.selectedPath = row.Path
	}
	model.scrollCursorIntoView()
}

// pageSize is the number of rows that fit in the form area.
func (model *Model) pageSize() int {
	size := model.height - chromeLines
	if size < 1 {
		size = 10
	}
	return size
}

func (model *Model) scrollCursorIntoView() {
	page := model.pageSize()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+page {
		model.scrollOffset = model.cursor - page + 1
	}
}

// setCollapsed collapses or expands the container under the cursor.
func (model *Model) setCollapsed(collapsed bool) {
	row := model.current()
	if row == nil || !row.Collapsible {
		return
	}
	if model.collapsed[row.Path] == collapsed {
		return
	}
	model.collapsed[row.Path] = collapsed
	model.rebuildRows()
}

// toggleBoolean flips a boolean leaf in place. An unset value toggles
// to true.
func (model Model) toggleBoolean() (tea.Model, tea.Cmd) {
	row := model.current()
	if row == nil || row.Kind != schema.KindBoolean {
		return model, nil
	}
	current, _ := row.Value.(bool)
	return model.applyValue(row.Segments, !current)
}

// beginEdit opens the appropriate editor for the row under the
// cursor: a dropdown for enums, unions, and recurrence modes; the
// inline line editor for free-form strings and numbers.
func (model Model) beginEdit() (tea.Model, tea.Cmd) {
	row := model.current()
	if row == nil {
		return model, nil
	}

	switch {
	case row.UnionPicker:
		return model.openUnionDropdown(*row), nil

	case row.Recurrence:
		return model.openRecurrenceModeDropdown(*row), nil

	case row.Kind == schema.KindString && len(row.Schema.Enum) > 0:
		return model.openEnumDropdown(*row), nil

	case row.Kind == schema.KindString:
		text, _ := row.Value.(string)
		model.editor = NewLineEditor(text)
		model.editRow = model.cursor
		model.purpose = editString
		model.focus = FocusEditor
		return model, nil

	case row.Kind == schema.KindNumber:
		text := ""
		if number, ok := row.Value.(float64); ok {
			text = strconv.FormatFloat(number, 'f', -1, 64)
		}
		model.editor = NewLineEditor(text)
		model.editRow = model.cursor
		model.purpose = editNumber
		model.focus = FocusEditor
		return model, nil
	}

	return model, nil
}

// handleEditorKeys routes input while the inline editor is open.
func (model Model) handleEditorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.focus = FocusRows
		model.editRow = -1
		model.pendingRecurrence = nil
		return model, nil

	case tea.KeyEnter:
		return model.commitEditor()

	default:
		model.editor.Update(message)
		return model, nil
	}
}

// commitEditor installs the editor's text according to the edit
// purpose.
func (model Model) commitEditor() (tea.Model, tea.Cmd) {
	if model.editRow < 0 || model.editRow >= len(model.rows) {
		model.focus = FocusRows
		return model, nil
	}
	row := model.rows[model.editRow]
	text := model.editor.Value()

	switch model.purpose {
	case editString:
		model.focus = FocusRows
		model.editRow = -1
		return model.applyValue(row.Segments, text)

	case editNumber:
		number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			model.statusMessage = fmt.Sprintf("%q is not a number", text)
			return model, nil
		}
		if row.Schema != nil && row.Schema.Type == "integer" && number != float64(int64(number)) {
			model.statusMessage = fmt.Sprintf("%q is not an integer", text)
			return model, nil
		}
		model.focus = FocusRows
		model.editRow = -1
		return model.applyValue(row.Segments, number)

	case editTime:
		clock, err := normalizeClock(text)
		if err != nil {
			model.statusMessage = err.Error()
			return model, nil
		}
		state := model.pendingRecurrence
		if state == nil {
			model.focus = FocusRows
			return model, nil
		}
		state.Time = clock

		if state.Mode == recurrence.ModeWeekly {
			// Weekly continues to the weekday picker before the
			// expression is installed.
			return model.openWeekdayDropdown(row, *state)
		}

		model.focus = FocusRows
		model.editRow = -1
		model.pendingRecurrence = nil
		return model.applyValue(row.Segments, recurrence.Build(*state))
	}

	model.focus = FocusRows
	return model, nil
}

// normalizeClock validates an "HH:MM" time-of-day entry.
func normalizeClock(text string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(text), ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("time must be HH:MM, got %q", text)
	}
	hour, hourErr := strconv.Atoi(parts[0])
	minute, minuteErr := strconv.Atoi(parts[1])
	if hourErr != nil || minuteErr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("time must be HH:MM, got %q", text)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// openEnumDropdown shows the allowed values of an enum string leaf.
func (model Model) openEnumDropdown(row Row) Model {
	options := make([]DropdownOption, 0, len(row.Schema.Enum))
	for _, allowed := range row.Schema.Enum {
		options = append(options, DropdownOption{
			Label: fmt.Sprintf("%v", allowed),
			Value: allowed,
		})
	}
	dropdown := &DropdownOverlay{Options: options, Purpose: DropdownEnum}
	for index, option := range options {
		if option.Value == row.Value {
			dropdown.Cursor = index
			break
		}
	}
	model.dropdown = dropdown
	model.dropdownRow = model.cursor
	model.focus = FocusDropdown
	return model
}

// openUnionDropdown shows the union's alternatives by label.
func (model Model) openUnionDropdown(row Row) Model {
	options := make([]DropdownOption, 0, len(row.Schema.OneOf))
	for index, alternative := range row.Schema.OneOf {
		options = append(options, DropdownOption{
			Label: alternativeLabel(alternative, model.schemaRoot.Defs),
			Value: index,
		})
	}
	dropdown := &DropdownOverlay{Options: options, Purpose: DropdownUnion}
	if active := schema.ActiveAlternative(row.Schema, row.Value); active >= 0 {
		dropdown.Cursor = active
	}
	model.dropdown = dropdown
	model.dropdownRow = model.cursor
	model.focus = FocusDropdown
	return model
}

// openRecurrenceModeDropdown starts the structured recurrence picker.
func (model Model) openRecurrenceModeDropdown(row Row) Model {
	text, _ := row.Value.(string)
	state := recurrence.Classify(text)
	model.pendingRecurrence = &state

	options := []DropdownOption{
		{Label: "Daily", Value: string(recurrence.ModeDaily)},
		{Label: "Weekly", Value: string(recurrence.ModeWeekly)},
		{Label: "Custom expression", Value: string(recurrence.ModeCustom)},
	}
	dropdown := &DropdownOverlay{Options: options, Purpose: DropdownRecurrenceMode}
	for index, option := range options {
		if option.Value == string(state.Mode) {
			dropdown.Cursor = index
			break
		}
	}
	model.dropdown = dropdown
	model.dropdownRow = model.cursor
	model.focus = FocusDropdown
	return model
}

// openWeekdayDropdown shows the weekday multi-select for a weekly
// schedule.
func (model Model) openWeekdayDropdown(row Row, state recurrence.State) (Model, tea.Cmd) {
	options := make([]DropdownOption, 0, 7)
	for day := 0; day <= 6; day++ {
		options = append(options, DropdownOption{
			Label:   [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}[day],
			Value:   day,
			Checked: state.Weekdays.Has(day),
		})
	}
	model.pendingRecurrence = &state
	model.dropdown = &DropdownOverlay{Options: options, Purpose: DropdownWeekdays, MultiSelect: true}
	model.dropdownRow = model.editRow
	if model.dropdownRow < 0 {
		model.dropdownRow = model.cursor
	}
	model.focus = FocusDropdown
	model.editRow = -1
	return model, nil
}

// handleDropdownKeys routes input while a dropdown overlay is active.
func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	dropdown := model.dropdown
	if dropdown == nil {
		model.focus = FocusRows
		return model, nil
	}

	switch message.Type {
	case tea.KeyEscape:
		model.dropdown = nil
		model.pendingRecurrence = nil
		model.focus = FocusRows
		return model, nil

	case tea.KeyUp:
		dropdown.MoveUp()
		return model, nil
	case tea.KeyDown:
		dropdown.MoveDown()
		return model, nil

	case tea.KeySpace:
		dropdown.ToggleCurrent()
		return model, nil

	case tea.KeyEnter:
		return model.commitDropdown()
	}

	switch message.String() {
	case "k":
		dropdown.MoveUp()
	case "j":
		dropdown.MoveDown()
	}
	return model, nil
}

// commitDropdown applies the dropdown selection according to its
// purpose.
func (model Model) commitDropdown() (tea.Model, tea.Cmd) {
	dropdown := model.dropdown
	if dropdown == nil || model.dropdownRow < 0 || model.dropdownRow >= len(model.rows) {
		model.dropdown = nil
		model.focus = FocusRows
		return model, nil
	}
	row := model.rows[model.dropdownRow]

	switch dropdown.Purpose {
	case DropdownEnum:
		selected := dropdown.Selected().Value
		model.dropdown = nil
		model.focus = FocusRows
		return model.applyValue(row.Segments, selected)

	case DropdownUnion:
		index, _ := dropdown.Selected().Value.(int)
		model.dropdown = nil
		model.focus = FocusRows
		return model.switchUnionAlternative(row, index)

	case DropdownRecurrenceMode:
		mode, _ := dropdown.Selected().Value.(string)
		model.dropdown = nil
		return model.continueRecurrenceEdit(row, recurrence.Mode(mode))

	case DropdownWeekdays:
		state := model.pendingRecurrence
		model.dropdown = nil
		model.focus = FocusRows
		model.pendingRecurrence = nil
		if state == nil {
			return model, nil
		}
		var weekdays recurrence.WeekdaySet
		for _, value := range dropdown.CheckedValues() {
			if day, ok := value.(int); ok {
				weekdays = weekdays.With(day)
			}
		}
		state.Weekdays = weekdays
		return model.applyValue(row.Segments, recurrence.Build(*state))
	}

	model.dropdown = nil
	model.focus = FocusRows
	return model, nil
}

// switchUnionAlternative installs a fresh object seeded from the
// selected alternative's consts and defaults. Values from the
// previous alternative are discarded, including same-named
// properties, which is the documented contract for unions.
func (model Model) switchUnionAlternative(row Row, index int) (tea.Model, tea.Cmd) {
	if index < 0 || index >= len(row.Schema.OneOf) {
		return model, nil
	}
	alternative, err := schema.Resolve(row.Schema.OneOf[index], model.schemaRoot.Defs)
	if err != nil {
		model.statusMessage = err.Error()
		return model, nil
	}
	return model.applyValue(row.Segments, schema.SeedObject(alternative))
}

// continueRecurrenceEdit advances the recurrence picker after the
// mode selection: daily and weekly proceed to time entry; custom
// opens the raw expression in the inline editor.
func (model Model) continueRecurrenceEdit(row Row, mode recurrence.Mode) (tea.Model, tea.Cmd) {
	state := model.pendingRecurrence
	if state == nil {
		fresh := recurrence.Classify("")
		state = &fresh
	}

	switch mode {
	case recurrence.ModeDaily, recurrence.ModeWeekly:
		previous := *state
		next := recurrence.State{Mode: mode, Time: previous.Time, Weekdays: previous.Weekdays}
		if next.Time == "" {
			next.Time = "09:00"
		}
		model.pendingRecurrence = &next
		model.editor = NewLineEditor(next.Time)
		model.editRow = model.dropdownRow
		model.purpose = editTime
		model.focus = FocusEditor
		return model, nil

	default:
		// Custom: edit the expression text directly. The save gate
		// still applies on save.
		text, _ := row.Value.(string)
		model.pendingRecurrence = nil
		model.editor = NewLineEditor(text)
		model.editRow = model.dropdownRow
		model.purpose = editString
		model.focus = FocusEditor
		return model, nil
	}
}

// addArrayItem appends a new element to the array under the cursor,
// seeded with the item schema's declared default or an empty value.
func (model Model) addArrayItem() (tea.Model, tea.Cmd) {
	row := model.current()
	if row == nil || row.Kind != schema.KindArray || row.Schema.Items == nil {
		return model, nil
	}
	item, err := schema.Resolve(row.Schema.Items, model.schemaRoot.Defs)
	if err != nil {
		model.statusMessage = err.Error()
		return model, nil
	}
	value := item.Default
	if value == nil {
		value = emptyValue(item)
	}
	array, _ := row.Value.([]any)
	return model.applyValue(row.Segments, document.AppendElement(array, document.Clone(value)))
}

// removeArrayItem splices the array item under the cursor out of its
// parent array.
func (model Model) removeArrayItem() (tea.Model, tea.Cmd) {
	row := model.current()
	if row == nil || row.ItemIndex < 0 {
		return model, nil
	}
	parentSegments := row.Segments[:len(row.Segments)-1]
	parent := document.Get(model.doc, parentSegments)
	return model.applyValue(parentSegments, document.RemoveElement(parent, row.ItemIndex))
}

// moveArrayItem moves the item under the cursor up or down by one.
// Moves past either end are no-ops.
func (model Model) moveArrayItem(delta int) (tea.Model, tea.Cmd) {
	row := model.current()
	if row == nil || row.ItemIndex < 0 {
		return model, nil
	}
	parentSegments := row.Segments[:len(row.Segments)-1]
	parent := document.Get(model.doc, parentSegments)
	moved := document.MoveElement(parent, row.ItemIndex, row.ItemIndex+delta)
	if document.Equal(moved, parent) {
		return model, nil
	}
	return model.applyValue(parentSegments, moved)
}

// applyValue is the single entry point for structured edits: it
// installs a new canonical document with the subtree at segments
// replaced, then runs the accepted-change sequence.
func (model Model) applyValue(segments []document.Segment, value any) (tea.Model, tea.Cmd) {
	model.doc = document.ReplaceAt(model.doc, segments, value)
	return model.afterDocumentChange()
}

// afterDocumentChange runs after every accepted edit, structured or
// textual: regenerate the raw pane from the canonical document,
// rebuild the rows, stamp a new generation, autosave the draft, and
// open a fresh debounce window. Any pending window is implicitly
// canceled because its generation is now stale.
func (model Model) afterDocumentChange() (tea.Model, tea.Cmd) {
	model.dirty = true
	model.parseError = ""
	model.refreshRawPane()
	model.rebuildRows()
	model.generation++
	model.autosaveDraft()

	generation := model.generation
	return model, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceElapsedMsg{generation: generation}
	})
}

// refreshRawPane overwrites the raw pane with a fresh serialization
// of the canonical document.
func (model *Model) refreshRawPane() {
	text, err := document.Serialize(model.doc)
	if err != nil {
		// Documents are built from JSON-compatible values only, so
		// serialization cannot fail in practice; surface it if it
		// ever does.
		model.statusMessage = err.Error()
		return
	}
	model.rawPane.SetText(string(text))
}

// rebuildRows re-derives the visible rows and re-seats the cursor on
// the previously selected path.
func (model *Model) rebuildRows() {
	model.rows = buildRows(model.schemaRoot, model.doc, model.errIndex, model.collapsed)

	if model.selectedPath != "" {
		for index, row := range model.rows {
			if row.Path == model.selectedPath {
				model.cursor = index
				model.scrollCursorIntoView()
				return
			}
		}
	}
	if model.cursor > len(model.rows)-1 {
		model.cursor = len(model.rows) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	if row := model.current(); row != nil {
		model.selectedPath = row.Path
	}
	model.scrollCursorIntoView()
}

// replaceErrors installs a validation pass wholesale: old errors are
// discarded even when the new set is empty.
func (model *Model) replaceErrors(errors []validation.Error) {
	model.errIndex = validation.NewIndex(errors)
	model.rebuildRows()
}

// autosaveDraft writes the in-progress document to the draft store.
func (model *Model) autosaveDraft() {
	if model.draftStore == nil || model.recordID == "" {
		return
	}
	err := model.draftStore.Save(draft.Draft{
		RecordID: model.recordID,
		Document: model.doc,
		RawText:  model.rawPane.Value(),
		SavedAt:  time.Now().UTC(),
	})
	if err != nil {
		model.statusMessage = "draft autosave failed: " + err.Error()
	}
}

// handleRawKeys routes input while the raw pane has focus. Ctrl+D
// applies the text as a document edit; escape returns to the form
// without applying.
func (model Model) handleRawKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		model.viewMode = ViewForm
		model.focus = FocusRows
		return model, nil

	case tea.KeyCtrlD:
		return model.commitRawEdit()
	}

	if key.Matches(message, model.keys.Save) {
		return model.startSave()
	}

	model.rawPane.Update(message)
	return model, nil
}

// commitRawEdit parses the raw pane's text. Success installs the
// parsed value as the canonical document (and reserializes it back
// into the pane, normalizing formatting). Failure changes nothing
// except the parse-error notice: the canonical document stays as it
// was and the pane keeps the invalid text for in-place fixing.
func (model Model) commitRawEdit() (tea.Model, tea.Cmd) {
	parsed, err := document.ParseText([]byte(model.rawPane.Value()))
	if err != nil {
		model.parseError = err.Error()
		return model, nil
	}
	model.doc = parsed
	model.viewMode = ViewForm
	model.focus = FocusRows
	return model.afterDocumentChange()
}

// startSave runs the recurrence save gate and, when it passes, issues
// the asynchronous save.
func (model Model) startSave() (tea.Model, tea.Cmd) {
	if gateErrors := model.recurrenceGate(); len(gateErrors) > 0 {
		model.replaceErrors(gateErrors)
		model.statusMessage = "fix recurrence expressions before saving"
		return model, nil
	}
	if model.backend == nil {
		return model, nil
	}

	model.statusMessage = "saving..."
	doc := model.doc
	backend := model.backend
	return model, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		errors, err := backend.Save(ctx, doc)
		return saveResultMsg{errors: errors, err: err}
	}
}

// recurrenceGate checks every recurrence field in the document
// against the expression validator. The walk uses an empty collapse
// set so collapsed sections cannot hide a bad expression.
func (model *Model) recurrenceGate() []validation.Error {
	rows := buildRows(model.schemaRoot, model.doc, validation.NewIndex(nil), map[string]bool{})
	var gateErrors []validation.Error
	for _, row := range rows {
		if !row.Recurrence {
			continue
		}
		text, _ := row.Value.(string)
		if text == "" {
			continue
		}
		if err := recurrence.CheckExpression(text); err != nil {
			gateErrors = append(gateErrors, validation.Error{
				InstancePath: row.Path,
				Message:      err.Error(),
			})
		}
	}
	return gateErrors
}

// handleSaveResult applies a save outcome. Failures of any kind keep
// the in-progress document so the user can retry without re-entering
// anything.
func (model Model) handleSaveResult(message saveResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		model.statusMessage = "save failed: " + message.err.Error()
		return model, nil
	}
	if len(message.errors) > 0 {
		model.replaceErrors(message.errors)
		model.statusMessage = fmt.Sprintf("validation failed (%d errors)", len(message.errors))
		return model, nil
	}

	model.dirty = false
	model.replaceErrors(nil)
	model.statusMessage = "saved"
	if model.draftStore != nil && model.recordID != "" {
		if err := model.draftStore.Discard(model.recordID); err != nil {
			model.statusMessage = "saved (draft cleanup failed: " + err.Error() + ")"
		}
	}
	return model, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return statusFadeMsg{}
	})
}

// checkCmd issues an asynchronous validation check stamped with the
// generation it was requested for.
func (model Model) checkCmd(generation int) tea.Cmd {
	doc := model.doc
	backend := model.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		errors, err := backend.Check(ctx, doc)
		return checkResultMsg{generation: generation, errors: errors, err: err}
	}
}
