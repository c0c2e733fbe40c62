// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import (
	"fmt"
	"strconv"

	"github.com/chatwright/chatwright/lib/document"
	"github.com/chatwright/chatwright/lib/recurrence"
	"github.com/chatwright/chatwright/lib/schema"
	"github.com/chatwright/chatwright/lib/validation"
)

// Row is one visible line of the structured form: a leaf editor, a
// container header, a union picker, or a diagnostic placeholder. Rows
// are rebuilt from the canonical document after every accepted
// change; they carry no editing state of their own.
type Row struct {
	// Segments address the row's subtree in the document; Path is
	// the same location as a slash-delimited instance path.
	Segments []document.Segment
	Path     string

	// Depth is the indentation level.
	Depth int

	// Kind selects the renderer and the edit behavior. For rows with
	// a non-empty Diagnostic, Kind is KindUnsupported.
	Kind schema.FieldKind

	// Schema is the resolved fragment for this row. Nil only for
	// diagnostic rows whose resolution failed.
	Schema *schema.Node

	// Label is the display name: schema title, property name, or an
	// indexed item label.
	Label string

	// Value is the document value at this row's path (read-only
	// snapshot).
	Value any

	// Errors are the validation errors filed at exactly this path.
	Errors []validation.Error

	// Diagnostic is the inline placeholder text for fragments the
	// form cannot interpret. One bad field never blocks the rest of
	// the document.
	Diagnostic string

	// Recurrence is true for string leaves with the "recurrence"
	// format, which edit through the structured picker.
	Recurrence bool

	// Collapsible container state. Containers with Collapsed true
	// render only their header.
	Collapsible bool
	Collapsed   bool

	// ItemIndex is the row's position in its parent array, or -1
	// when the row is not an array item. Array rows re-key children
	// by position, so a remove or move rebuilds every item row.
	ItemIndex int

	// UnionPicker marks the selector row of a discriminated union.
	UnionPicker bool
}

// ItemCount returns the number of elements for an array header row.
func (row Row) ItemCount() int {
	array, _ := row.Value.([]any)
	return len(array)
}

// treeBuilder accumulates rows during the schema walk. Explicit
// context passed down the walk; no ambient shared state.
type treeBuilder struct {
	defs      schema.Definitions
	errors    *validation.Index
	collapsed map[string]bool
	rows      []Row
}

// buildRows derives the visible form rows from the canonical
// {schema, document, errors} triple. The walk resolves references
// one level at a time, classifies each fragment, and recurses through
// containers; a fragment that fails resolution or classification
// becomes a diagnostic row in place.
func buildRows(root *schema.Root, doc any, errors *validation.Index, collapsed map[string]bool) []Row {
	builder := &treeBuilder{
		defs:      root.Defs,
		errors:    errors,
		collapsed: collapsed,
	}
	builder.walk(root.Node, nil, "", doc, 0, -1)
	return builder.rows
}

// walk dispatches one schema fragment. segments and depth locate the
// fragment in the document and on screen; itemIndex is the fragment's
// position when it is an array element.
func (builder *treeBuilder) walk(node *schema.Node, segments []document.Segment, label string, value any, depth int, itemIndex int) {
	resolved, err := schema.Resolve(node, builder.defs)
	if err != nil {
		builder.emitDiagnostic(segments, label, depth, itemIndex, err.Error())
		return
	}

	switch schema.Classify(resolved) {
	case schema.KindObject:
		builder.walkObject(resolved, segments, label, value, depth, itemIndex)
	case schema.KindArray:
		builder.walkArray(resolved, segments, label, value, depth, itemIndex)
	case schema.KindUnion:
		builder.walkUnion(resolved, segments, label, value, depth, itemIndex)
	case schema.KindString, schema.KindNumber, schema.KindBoolean:
		builder.emitLeaf(resolved, segments, label, value, depth, itemIndex)
	default:
		builder.emitDiagnostic(segments, label, depth, itemIndex,
			fmt.Sprintf("unsupported field shape (type %q)", resolved.Type))
	}
}

// walkObject emits a header row (except for the root object) and one
// row per visible property in schema declaration order.
func (builder *treeBuilder) walkObject(node *schema.Node, segments []document.Segment, label string, value any, depth int, itemIndex int) {
	childDepth := depth
	if len(segments) > 0 {
		path := document.PathOf(segments)
		collapsed := builder.collapsed[path]
		builder.rows = append(builder.rows, Row{
			Segments:    segments,
			Path:        path,
			Depth:       depth,
			Kind:        schema.KindObject,
			Schema:      node,
			Label:       displayLabel(node, label),
			Value:       value,
			Errors:      builder.errors.At(path),
			Collapsible: true,
			Collapsed:   collapsed,
			ItemIndex:   itemIndex,
		})
		if collapsed {
			return
		}
		childDepth = depth + 1
	}

	object, _ := value.(map[string]any)
	for _, property := range node.Properties {
		if property.Schema == nil || property.Schema.Hidden {
			continue
		}
		if !visibleWithSiblings(property.Schema, object) {
			continue
		}
		childSegments := appendSegment(segments, document.Property(property.Name))
		builder.walk(property.Schema, childSegments, property.Name, object[property.Name], childDepth, -1)
	}
}

// visibleWithSiblings applies the one-off conditional visibility
// rule: a property with a VisibleWhen annotation renders only while
// the named sibling equals the declared value.
func visibleWithSiblings(node *schema.Node, siblings map[string]any) bool {
	rule := node.VisibleWhen
	if rule == nil {
		return true
	}
	return siblings[rule.Property] == rule.Equals
}

// walkArray emits the array header and, when expanded, an indexed row
// per element. Children are keyed by position: a splice renumbers
// everything after it, and the rebuilt rows carry no stale editor
// state because rows never hold editor state.
func (builder *treeBuilder) walkArray(node *schema.Node, segments []document.Segment, label string, value any, depth int, itemIndex int) {
	path := document.PathOf(segments)
	collapsed := builder.collapsed[path]
	builder.rows = append(builder.rows, Row{
		Segments:    segments,
		Path:        path,
		Depth:       depth,
		Kind:        schema.KindArray,
		Schema:      node,
		Label:       displayLabel(node, label),
		Value:       value,
		Errors:      builder.errors.At(path),
		Collapsible: true,
		Collapsed:   collapsed,
		ItemIndex:   itemIndex,
	})
	if collapsed || node.Items == nil {
		return
	}

	array, _ := value.([]any)
	for index, element := range array {
		childSegments := appendSegment(segments, document.Index(index))
		builder.walk(node.Items, childSegments, label+"["+strconv.Itoa(index)+"]", element, depth+1, index)
	}
}

// walkUnion emits the discriminator picker row and, when an
// alternative matches the document's discriminator value, that
// alternative's properties beneath it. With no match (including an
// empty or new document) only the picker shows.
func (builder *treeBuilder) walkUnion(node *schema.Node, segments []document.Segment, label string, value any, depth int, itemIndex int) {
	path := document.PathOf(segments)
	builder.rows = append(builder.rows, Row{
		Segments:    segments,
		Path:        path,
		Depth:       depth,
		Kind:        schema.KindUnion,
		Schema:      node,
		Label:       displayLabel(node, label),
		Value:       value,
		Errors:      builder.errors.At(path),
		ItemIndex:   itemIndex,
		UnionPicker: true,
	})

	active := schema.ActiveAlternative(node, value)
	if active < 0 {
		return
	}

	alternative, err := schema.Resolve(node.OneOf[active], builder.defs)
	if err != nil {
		builder.emitDiagnostic(segments, label, depth+1, -1, err.Error())
		return
	}

	object, _ := value.(map[string]any)
	for _, property := range alternative.Properties {
		if property.Schema == nil || property.Schema.Hidden {
			continue
		}
		// The discriminator itself is represented by the picker row.
		if property.Name == schema.DiscriminatorProperty {
			continue
		}
		if !visibleWithSiblings(property.Schema, object) {
			continue
		}
		childSegments := appendSegment(segments, document.Property(property.Name))
		builder.walk(property.Schema, childSegments, property.Name, object[property.Name], depth+1, -1)
	}
}

// emitLeaf emits a scalar editor row.
func (builder *treeBuilder) emitLeaf(node *schema.Node, segments []document.Segment, label string, value any, depth int, itemIndex int) {
	path := document.PathOf(segments)
	builder.rows = append(builder.rows, Row{
		Segments:   segments,
		Path:       path,
		Depth:      depth,
		Kind:       schema.Classify(node),
		Schema:     node,
		Label:      displayLabel(node, label),
		Value:      value,
		Errors:     builder.errors.At(path),
		ItemIndex:  itemIndex,
		Recurrence: node.Type == "string" && node.Format == "recurrence",
	})
}

// emitDiagnostic emits an inline placeholder for a fragment the form
// cannot interpret.
func (builder *treeBuilder) emitDiagnostic(segments []document.Segment, label string, depth, itemIndex int, message string) {
	path := document.PathOf(segments)
	builder.rows = append(builder.rows, Row{
		Segments:   segments,
		Path:       path,
		Depth:      depth,
		Kind:       schema.KindUnsupported,
		Label:      label,
		Errors:     builder.errors.At(path),
		Diagnostic: message,
		ItemIndex:  itemIndex,
	})
}

// displayLabel prefers the schema title over the raw property name.
func displayLabel(node *schema.Node, fallback string) string {
	if node.Title != "" {
		return node.Title
	}
	if fallback == "" {
		return "document"
	}
	return fallback
}

// appendSegment copies before appending so sibling walks never share
// a backing array.
func appendSegment(segments []document.Segment, next document.Segment) []document.Segment {
	combined := make([]document.Segment, len(segments), len(segments)+1)
	copy(combined, segments)
	return append(combined, next)
}

// alternativeLabel names a union alternative for the picker: its
// title if declared, else its discriminator const.
func alternativeLabel(alternative *schema.Node, defs schema.Definitions) string {
	resolved, err := schema.Resolve(alternative, defs)
	if err != nil {
		return "(unresolvable)"
	}
	if resolved.Title != "" {
		return resolved.Title
	}
	if constant, ok := schema.DiscriminatorConst(resolved); ok {
		return fmt.Sprintf("%v", constant)
	}
	return "(unnamed)"
}

// emptyValue returns the value a new array item takes when its schema
// declares no default.
func emptyValue(node *schema.Node) any {
	switch schema.Classify(node) {
	case schema.KindObject:
		return map[string]any{}
	case schema.KindArray:
		return []any{}
	case schema.KindString:
		return ""
	case schema.KindNumber:
		return 0.0
	case schema.KindBoolean:
		return false
	default:
		return nil
	}
}

// recurrenceSummary renders the display line for a recurrence leaf:
// the human sentence for daily/weekly shapes, the raw expression
// verbatim for anything else.
func recurrenceSummary(value any) string {
	text, _ := value.(string)
	if text == "" {
		return "(unset)"
	}
	return recurrence.Summary(recurrence.Classify(text))
}
