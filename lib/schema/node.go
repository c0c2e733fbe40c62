// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one schema fragment. Exactly one structural interpretation
// applies to a node at a time; Classify picks it. A zero Node
// classifies as unsupported.
type Node struct {
	// Type is the declared JSON type tag: "string", "number",
	// "integer", "boolean", "object", or "array". May be empty when
	// the producer omits it (objects are still recognized by a
	// non-empty property map).
	Type string

	// Title and Description are display metadata. Title falls back to
	// the property name in the form when empty.
	Title       string
	Description string

	// Default seeds new values: array items on add, union properties
	// on alternative switch.
	Default any

	// Const pins the node to a single value. Union alternatives use a
	// const on the discriminator property.
	Const any

	// Enum lists the allowed values for a string leaf. Non-empty Enum
	// renders as a dropdown instead of free text.
	Enum []any

	// Format is a display hint for string leaves. The one format the
	// form treats specially is "recurrence": a 5-field cron-style
	// expression edited through the structured picker.
	Format string

	// Properties are an object's members in schema declaration order.
	Properties []Property

	// Required lists property names the server validator enforces.
	Required []string

	// Items describes every element of an array.
	Items *Node

	// OneOf lists the alternatives of a discriminated union, each an
	// object schema carrying a const discriminator property. A
	// producer-side "anyOf" decodes into the same field.
	OneOf []*Node

	// Ref is a local reference ("#/$defs/<name>") to a shared
	// definition. When set, the other fields are sibling overrides
	// applied on top of the referenced definition.
	Ref string

	// Hidden excludes the property from rendering entirely. A hidden
	// property also never receives a required-error annotation.
	Hidden bool

	// VisibleWhen conditions rendering on a sibling property's value.
	// This is a single equality check, not a rule engine: the one use
	// is hiding a credential secret field unless the sibling source
	// selector equals the inline sentinel.
	VisibleWhen *VisibleWhen
}

// Property is a named member of an object schema.
type Property struct {
	Name   string
	Schema *Node
}

// VisibleWhen is a one-off cross-field visibility rule: the annotated
// property renders only while the named sibling property equals the
// given value.
type VisibleWhen struct {
	Property string `json:"property"`
	Equals   any    `json:"equals"`
}

// Root is the schema document served once per edit session: the top
// node plus the definitions table that $ref pointers resolve against.
type Root struct {
	Node *Node
	Defs Definitions
}

// Definitions maps definition names to their schema nodes. References
// resolve only against the root's own table; there are no
// cross-document references.
type Definitions map[string]*Node

// nodeWire is the decoding shadow of Node. Properties stays raw so
// the key order can be recovered by token scanning.
type nodeWire struct {
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Default     any             `json:"default"`
	Const       any             `json:"const"`
	Enum        []any           `json:"enum"`
	Format      string          `json:"format"`
	Properties  json.RawMessage `json:"properties"`
	Required    []string        `json:"required"`
	Items       *Node           `json:"items"`
	OneOf       []*Node         `json:"oneOf"`
	AnyOf       []*Node         `json:"anyOf"`
	Ref         string          `json:"$ref"`
	Hidden      bool            `json:"uiHidden"`
	VisibleWhen *VisibleWhen    `json:"uiVisibleWhen"`
}

// UnmarshalJSON decodes a schema node, preserving the declaration
// order of object properties. encoding/json's map decoding would
// destroy the order, so the properties object is re-scanned with a
// token decoder.
func (node *Node) UnmarshalJSON(data []byte) error {
	var wire nodeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	node.Type = wire.Type
	node.Title = wire.Title
	node.Description = wire.Description
	node.Default = wire.Default
	node.Const = wire.Const
	node.Enum = wire.Enum
	node.Format = wire.Format
	node.Required = wire.Required
	node.Items = wire.Items
	node.OneOf = wire.OneOf
	node.Ref = wire.Ref
	node.Hidden = wire.Hidden
	node.VisibleWhen = wire.VisibleWhen

	// A producer may use anyOf where oneOf is meant; both carry a
	// discriminated alternative list here.
	if len(node.OneOf) == 0 && len(wire.AnyOf) > 0 {
		node.OneOf = wire.AnyOf
	}

	if len(wire.Properties) > 0 {
		properties, err := decodeOrderedProperties(wire.Properties)
		if err != nil {
			return fmt.Errorf("properties: %w", err)
		}
		node.Properties = properties
	}

	return nil
}

// rootWire captures the "$defs" table of the schema endpoint
// response; the root node's own fields decode through Node.
type rootWire struct {
	Defs map[string]*Node `json:"$defs"`
}

// UnmarshalJSON decodes a root schema document. The top-level object
// is decoded twice: once as the root node, once for the "$defs"
// definitions table.
func (root *Root) UnmarshalJSON(data []byte) error {
	node := &Node{}
	if err := json.Unmarshal(data, node); err != nil {
		return err
	}
	var wire rootWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	root.Node = node
	root.Defs = wire.Defs
	return nil
}

// decodeOrderedProperties scans a raw JSON object and returns its
// members in declaration order.
func decodeOrderedProperties(raw json.RawMessage) ([]Property, error) {
	// First pass: plain map decode for the values.
	values := map[string]*Node{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}

	// Second pass: token scan for the key order. Only top-level keys
	// matter, so nested values are skipped wholesale.
	names, err := topLevelKeys(raw)
	if err != nil {
		return nil, err
	}

	properties := make([]Property, 0, len(names))
	for _, name := range names {
		properties = append(properties, Property{Name: name, Schema: values[name]})
	}
	return properties, nil
}

// topLevelKeys returns the keys of a JSON object in source order.
func topLevelKeys(raw json.RawMessage) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", token)
	}

	var names []string
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		name, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", token)
		}
		names = append(names, name)

		// Skip the value without materializing it.
		var discard json.RawMessage
		if err := decoder.Decode(&discard); err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}
	}
	return names, nil
}
