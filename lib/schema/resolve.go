// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedRef marks a $ref whose pointer is not of the local
// "#/$defs/<name>" form. The renderer treats the node as opaque and
// shows a diagnostic placeholder instead of crashing.
var ErrUnsupportedRef = errors.New("schema: unsupported reference format")

// ErrRefCycle marks a definition that references itself, directly or
// through other definitions. Resolution fails closed rather than
// recursing forever.
var ErrRefCycle = errors.New("schema: reference cycle")

// refPrefix is the only pointer form references may take.
const refPrefix = "#/$defs/"

// Resolve returns the node with any $ref replaced by the referenced
// definition. Non-reference nodes are returned unchanged.
//
// Resolution is shallow: exactly the node itself is resolved.
// References nested inside the resolved result (in properties, items,
// or oneOf alternatives) stay unresolved until their own consumer
// resolves them, which keeps recursive schemas representable.
//
// Sibling keys present alongside the $ref (title, description,
// default, the UI flags) override the same keys of the referenced
// definition.
//
// Chains of definitions that are themselves bare references are
// followed, with a visited set: revisiting a definition name returns
// ErrRefCycle.
func Resolve(node *Node, defs Definitions) (*Node, error) {
	if node == nil {
		return nil, errors.New("schema: nil node")
	}
	if node.Ref == "" {
		return node, nil
	}

	visited := map[string]bool{}
	current := node

	for current.Ref != "" {
		name, ok := strings.CutPrefix(current.Ref, refPrefix)
		if !ok || name == "" || strings.ContainsRune(name, '/') {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, current.Ref)
		}
		if visited[name] {
			return nil, fmt.Errorf("%w: %q revisits %q", ErrRefCycle, node.Ref, name)
		}
		visited[name] = true

		definition, found := defs[name]
		if !found {
			return nil, fmt.Errorf("schema: unknown definition %q", name)
		}
		if definition == nil {
			return nil, fmt.Errorf("schema: definition %q is empty", name)
		}

		merged := *definition
		overlaySiblings(&merged, current)
		merged.Ref = definition.Ref
		current = &merged
	}

	return current, nil
}

// overlaySiblings copies the non-zero metadata fields of the
// referencing node over the referenced definition. Structural fields
// (type, properties, items, oneOf) always come from the definition;
// only display and UI metadata may be overridden at the use site.
func overlaySiblings(base, overlay *Node) {
	if overlay.Title != "" {
		base.Title = overlay.Title
	}
	if overlay.Description != "" {
		base.Description = overlay.Description
	}
	if overlay.Default != nil {
		base.Default = overlay.Default
	}
	if overlay.Format != "" {
		base.Format = overlay.Format
	}
	if overlay.Hidden {
		base.Hidden = true
	}
	if overlay.VisibleWhen != nil {
		base.VisibleWhen = overlay.VisibleWhen
	}
}
