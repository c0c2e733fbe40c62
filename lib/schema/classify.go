// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// FieldKind is the closed set of shapes the form can render. Adding a
// shape means adding a variant here and a case at every switch over
// FieldKind, which the compiler surfaces.
type FieldKind int

const (
	// KindUnsupported is the fallback for shapes outside the known
	// set. It renders a visible inline diagnostic; one bad field must
	// not block editing of the rest of the document.
	KindUnsupported FieldKind = iota
	// KindString covers free-text and enum string leaves.
	KindString
	// KindNumber covers both "number" and "integer" leaves.
	KindNumber
	// KindBoolean is a toggle leaf.
	KindBoolean
	// KindObject recurses over named properties.
	KindObject
	// KindArray edits a list of items sharing one item schema.
	KindArray
	// KindUnion selects among oneOf alternatives by discriminator.
	KindUnion
)

// String returns a short name for debugging and diagnostics.
func (kind FieldKind) String() string {
	switch kind {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	default:
		return "unsupported"
	}
}

// Classify maps a resolved node to its field kind. Order matters:
// a node may satisfy several structural tests, and the first match
// wins.
//
//  1. A oneOf/anyOf list makes a union regardless of other keys.
//  2. A declared object type, or a non-empty property map without any
//     type tag, makes an object (some producers omit the tag).
//  3. A declared array type makes an array.
//  4. The scalar types map one to one.
//
// Unresolved references and everything else are unsupported. Callers
// must Resolve before classifying; a ref node here means resolution
// failed and the placeholder diagnostic is the right rendering.
func Classify(node *Node) FieldKind {
	if node == nil || node.Ref != "" {
		return KindUnsupported
	}

	if len(node.OneOf) > 0 {
		return KindUnion
	}

	if node.Type == "object" || (node.Type == "" && len(node.Properties) > 0) {
		return KindObject
	}

	switch node.Type {
	case "array":
		return KindArray
	case "string":
		return KindString
	case "number", "integer":
		return KindNumber
	case "boolean":
		return KindBoolean
	}

	return KindUnsupported
}
