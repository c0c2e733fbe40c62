// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"strings"
	"testing"
)

func TestChildEscaping(t *testing.T) {
	tests := []struct {
		parent string
		name   string
		want   string
	}{
		{"", "features", "/features"},
		{"/features", "chat_system_prompt", "/features/chat_system_prompt"},
		{"", "a/b", "/a~1b"},
		{"", "a~b", "/a~0b"},
		{"", "~/", "/~0~1"},
	}
	for _, test := range tests {
		if got := Child(test.parent, test.name); got != test.want {
			t.Errorf("Child(%q, %q) = %q, want %q", test.parent, test.name, got, test.want)
		}
	}
}

func TestElement(t *testing.T) {
	if got := Element("/groups", 2); got != "/groups/2" {
		t.Errorf("Element = %q, want /groups/2", got)
	}
}

func TestWithPropertyCopyOnWrite(t *testing.T) {
	original := map[string]any{"name": "support-bot", "enabled": true}
	edited := WithProperty(original, "enabled", false)

	if edited["enabled"] != false || edited["name"] != "support-bot" {
		t.Errorf("edited = %v", edited)
	}
	if original["enabled"] != true {
		t.Error("WithProperty mutated its input")
	}
}

func TestWithPropertyOnNil(t *testing.T) {
	edited := WithProperty(nil, "name", "x")
	if len(edited) != 1 || edited["name"] != "x" {
		t.Errorf("edited = %v", edited)
	}
}

func TestWithoutProperty(t *testing.T) {
	original := map[string]any{"a": 1.0, "b": 2.0}
	edited := WithoutProperty(original, "a")
	if _, present := edited["a"]; present {
		t.Error("key a still present")
	}
	if original["a"] != 1.0 {
		t.Error("WithoutProperty mutated its input")
	}
}

func TestRemoveElementPreservesOrder(t *testing.T) {
	original := []any{"a", "b", "c", "d"}
	edited := RemoveElement(original, 1)

	if len(edited) != 3 {
		t.Fatalf("length = %d, want 3", len(edited))
	}
	for index, want := range []string{"a", "c", "d"} {
		if edited[index] != want {
			t.Errorf("edited[%d] = %v, want %q", index, edited[index], want)
		}
	}
	if len(original) != 4 || original[1] != "b" {
		t.Error("RemoveElement mutated its input")
	}
}

func TestRemoveElementOutOfRange(t *testing.T) {
	original := []any{"a"}
	if got := RemoveElement(original, 5); len(got) != 1 {
		t.Errorf("out-of-range remove changed the array: %v", got)
	}
	if got := RemoveElement(original, -1); len(got) != 1 {
		t.Errorf("negative-index remove changed the array: %v", got)
	}
}

func TestMoveElementBoundariesAreNoOps(t *testing.T) {
	original := []any{"a", "b", "c"}

	// First item cannot move up, last cannot move down.
	if got := MoveElement(original, 0, -1); !Equal(got, []any{"a", "b", "c"}) {
		t.Errorf("move first up = %v, want unchanged", got)
	}
	if got := MoveElement(original, 2, 3); !Equal(got, []any{"a", "b", "c"}) {
		t.Errorf("move last down = %v, want unchanged", got)
	}

	moved := MoveElement(original, 0, 1)
	if !Equal(moved, []any{"b", "a", "c"}) {
		t.Errorf("move = %v, want [b a c]", moved)
	}
	if !Equal(original, []any{"a", "b", "c"}) {
		t.Error("MoveElement mutated its input")
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := map[string]any{
		"groups": []any{map[string]any{"name": "ops"}},
	}
	cloned := Clone(original).(map[string]any)
	cloned["groups"].([]any)[0].(map[string]any)["name"] = "changed"

	if original["groups"].([]any)[0].(map[string]any)["name"] != "ops" {
		t.Error("Clone shares nested structure with its input")
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	original := map[string]any{
		"name":    "support-bot",
		"enabled": true,
		"features": map[string]any{
			"chat_system_prompt": "be nice",
			"max_groups":         5.0,
		},
		"groups": []any{"ops", "dev"},
		"track":  map[string]any{"schedule": "30 08 * * *"},
	}

	text, err := Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	parsed, err := ParseText(text)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if !Equal(parsed, original) {
		t.Errorf("round trip diverged:\noriginal: %v\nparsed:   %v", original, parsed)
	}
}

func TestSerializeStableOutput(t *testing.T) {
	value := map[string]any{"b": 1.0, "a": 2.0, "c": 3.0}
	first, err := Serialize(value)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	second, err := Serialize(value)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Serialize output is not stable")
	}
	// Keys come out sorted, so the text form is canonical.
	if !strings.Contains(string(first), "\"a\": 2") {
		t.Errorf("unexpected serialization: %s", first)
	}
}

func TestParseTextJSONC(t *testing.T) {
	parsed, err := ParseText([]byte(`{
		// bot display name
		"name": "support-bot",
		"groups": ["ops",], /* trailing comma */
	}`))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	object := parsed.(map[string]any)
	if object["name"] != "support-bot" {
		t.Errorf("name = %v", object["name"])
	}
}

func TestParseTextErrors(t *testing.T) {
	for _, text := range []string{
		`{"name": `,
		`{"name" "x"}`,
		`{} {}`,
		``,
		// Trailing content that is not itself decodable is still
		// trailing content; the first value must not be accepted.
		`{"a": 1} zzz`,
		`{"a": 1} !!!`,
		`true @`,
	} {
		if _, err := ParseText([]byte(text)); err == nil {
			t.Errorf("ParseText(%q) = nil, want error", text)
		}
	}
}
