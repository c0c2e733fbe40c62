// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package formui

import (
	"encoding/json"
	"testing"

	"github.com/chatwright/chatwright/lib/schema"
	"github.com/chatwright/chatwright/lib/validation"
)

// accountSchema is the shared fixture: one top-level object
// exercising every field shape the form renders.
const accountSchema = `{
	"title": "Account",
	"type": "object",
	"required": ["name", "secret"],
	"properties": {
		"name": {"type": "string", "title": "Name"},
		"port": {"type": "integer"},
		"enabled": {"type": "boolean"},
		"secret": {"type": "string", "uiHidden": true},
		"proxy": {
			"type": "string",
			"uiVisibleWhen": {"property": "enabled", "equals": true}
		},
		"schedule": {"type": "string", "format": "recurrence"},
		"level": {"type": "string", "enum": ["debug", "info", "warn"]},
		"tags": {"type": "array", "items": {"type": "string"}},
		"delivery": {
			"title": "Delivery",
			"oneOf": [
				{
					"type": "object",
					"title": "Webhook",
					"properties": {
						"source": {"const": "webhook"},
						"url": {"type": "string", "default": "https://example.com/hook"}
					}
				},
				{
					"type": "object",
					"title": "Polling",
					"properties": {
						"source": {"const": "polling"},
						"interval": {"type": "integer", "default": 30}
					}
				}
			]
		}
	}
}`

func parseRoot(t *testing.T, text string) *schema.Root {
	t.Helper()
	var root schema.Root
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		t.Fatalf("parsing schema: %v", err)
	}
	return &root
}

func accountDocument() map[string]any {
	return map[string]any{
		"name":     "support-bot",
		"port":     float64(8080),
		"enabled":  false,
		"secret":   "hunter2",
		"schedule": "30 08 * * *",
		"level":    "info",
		"tags":     []any{"alpha", "beta", "gamma"},
		"delivery": map[string]any{
			"source": "webhook",
			"url":    "https://example.com/hook",
		},
	}
}

func findRow(rows []Row, path string) *Row {
	for index := range rows {
		if rows[index].Path == path {
			return &rows[index]
		}
	}
	return nil
}

func TestBuildRowsSkipsHiddenProperties(t *testing.T) {
	root := parseRoot(t, accountSchema)
	errors := validation.NewIndex([]validation.Error{
		{InstancePath: "/secret", Message: "must not be empty"},
	})

	rows := buildRows(root, accountDocument(), errors, map[string]bool{})

	if row := findRow(rows, "/secret"); row != nil {
		t.Fatalf("hidden property rendered as row %+v", *row)
	}
	// The error targeting the hidden field must not surface on any
	// other row either.
	for _, row := range rows {
		for _, problem := range row.Errors {
			if problem.InstancePath == "/secret" {
				t.Fatalf("hidden-field error surfaced on row %q", row.Path)
			}
		}
	}
}

func TestBuildRowsHiddenRequiredPropertyGetsNoAnnotation(t *testing.T) {
	root := parseRoot(t, accountSchema)
	doc := accountDocument()
	delete(doc, "secret")

	// The validator reports the missing required property at the
	// parent; re-targeting moves it to /secret, which is hidden. No
	// row exists for it and the annotation must not surface anywhere.
	errors := validation.NewIndex([]validation.Error{{
		InstancePath: "",
		Message:      "must have required property 'secret'",
		Keyword:      validation.KeywordRequired,
		Params:       map[string]any{"missingProperty": "secret"},
	}})

	rows := buildRows(root, doc, errors, map[string]bool{})
	if row := findRow(rows, "/secret"); row != nil {
		t.Fatalf("hidden required property rendered as row %+v", *row)
	}
	for _, row := range rows {
		if len(row.Errors) != 0 {
			t.Fatalf("required annotation for hidden property surfaced on row %q: %+v",
				row.Path, row.Errors)
		}
	}
}

func TestBuildRowsConditionalVisibility(t *testing.T) {
	root := parseRoot(t, accountSchema)
	doc := accountDocument()

	rows := buildRows(root, doc, validation.NewIndex(nil), map[string]bool{})
	if findRow(rows, "/proxy") != nil {
		t.Fatal("proxy rendered while enabled is false")
	}

	doc["enabled"] = true
	rows = buildRows(root, doc, validation.NewIndex(nil), map[string]bool{})
	if findRow(rows, "/proxy") == nil {
		t.Fatal("proxy not rendered while enabled is true")
	}
}

func TestBuildRowsUnion(t *testing.T) {
	root := parseRoot(t, accountSchema)
	rows := buildRows(root, accountDocument(), validation.NewIndex(nil), map[string]bool{})

	picker := findRow(rows, "/delivery")
	if picker == nil || !picker.UnionPicker {
		t.Fatal("no union picker row at /delivery")
	}
	if findRow(rows, "/delivery/url") == nil {
		t.Fatal("active alternative's url property not rendered")
	}
	if findRow(rows, "/delivery/source") != nil {
		t.Fatal("discriminator property rendered as its own row")
	}
	if findRow(rows, "/delivery/interval") != nil {
		t.Fatal("inactive alternative's property rendered")
	}
}

func TestBuildRowsUnionWithoutMatch(t *testing.T) {
	root := parseRoot(t, accountSchema)
	doc := accountDocument()
	doc["delivery"] = map[string]any{}

	rows := buildRows(root, doc, validation.NewIndex(nil), map[string]bool{})
	if findRow(rows, "/delivery") == nil {
		t.Fatal("picker row missing for empty union value")
	}
	if findRow(rows, "/delivery/url") != nil {
		t.Fatal("alternative properties rendered with no discriminator")
	}
}

func TestBuildRowsArrayItems(t *testing.T) {
	root := parseRoot(t, accountSchema)
	rows := buildRows(root, accountDocument(), validation.NewIndex(nil), map[string]bool{})

	header := findRow(rows, "/tags")
	if header == nil || !header.Collapsible {
		t.Fatal("no collapsible array header at /tags")
	}
	if got := header.ItemCount(); got != 3 {
		t.Fatalf("ItemCount = %d, want 3", got)
	}

	first := findRow(rows, "/tags/0")
	if first == nil {
		t.Fatal("no row for first array item")
	}
	if first.Label != "tags[0]" {
		t.Fatalf("item label = %q, want tags[0]", first.Label)
	}
	if first.ItemIndex != 0 {
		t.Fatalf("ItemIndex = %d, want 0", first.ItemIndex)
	}
}

func TestBuildRowsCollapsedContainerHidesChildren(t *testing.T) {
	root := parseRoot(t, accountSchema)
	collapsed := map[string]bool{"/tags": true}

	rows := buildRows(root, accountDocument(), validation.NewIndex(nil), collapsed)
	header := findRow(rows, "/tags")
	if header == nil || !header.Collapsed {
		t.Fatal("array header not marked collapsed")
	}
	if findRow(rows, "/tags/0") != nil {
		t.Fatal("collapsed array still rendered its items")
	}
}

func TestBuildRowsRecurrenceLeaf(t *testing.T) {
	root := parseRoot(t, accountSchema)
	rows := buildRows(root, accountDocument(), validation.NewIndex(nil), map[string]bool{})

	row := findRow(rows, "/schedule")
	if row == nil {
		t.Fatal("no row at /schedule")
	}
	if !row.Recurrence {
		t.Fatal("recurrence format not flagged on row")
	}
}

func TestBuildRowsDiagnosticForBadRef(t *testing.T) {
	root := parseRoot(t, `{
		"type": "object",
		"properties": {
			"good": {"type": "string"},
			"broken": {"$ref": "#/$defs/missing"}
		}
	}`)

	rows := buildRows(root, map[string]any{}, validation.NewIndex(nil), map[string]bool{})

	broken := findRow(rows, "/broken")
	if broken == nil || broken.Diagnostic == "" {
		t.Fatal("unresolvable reference did not produce a diagnostic row")
	}
	// One bad field never blocks the rest of the document.
	if findRow(rows, "/good") == nil {
		t.Fatal("sibling of diagnostic row missing")
	}
}

func TestBuildRowsErrorAttachment(t *testing.T) {
	root := parseRoot(t, accountSchema)
	errors := validation.NewIndex([]validation.Error{
		{InstancePath: "/port", Message: "must be <= 65535"},
	})

	rows := buildRows(root, accountDocument(), errors, map[string]bool{})
	row := findRow(rows, "/port")
	if row == nil {
		t.Fatal("no row at /port")
	}
	if len(row.Errors) != 1 || row.Errors[0].Message != "must be <= 65535" {
		t.Fatalf("row errors = %+v", row.Errors)
	}
	// Errors attach at exactly one path.
	if name := findRow(rows, "/name"); len(name.Errors) != 0 {
		t.Fatalf("unrelated row carries errors: %+v", name.Errors)
	}
}
