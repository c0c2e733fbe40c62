// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// DiscriminatorProperty is the fixed property name that selects among
// a union's alternatives. It is a well-known name shared by every
// union the console serves (credential-source selection and the
// like), not derived per schema. Every alternative declares it with a
// const value.
const DiscriminatorProperty = "source"

// DiscriminatorConst returns the constant discriminator value an
// alternative declares, or false when the alternative has no
// discriminator property or no const on it.
func DiscriminatorConst(alternative *Node) (any, bool) {
	if alternative == nil {
		return nil, false
	}
	for _, property := range alternative.Properties {
		if property.Name != DiscriminatorProperty || property.Schema == nil {
			continue
		}
		if property.Schema.Const == nil {
			return nil, false
		}
		return property.Schema.Const, true
	}
	return nil, false
}

// ActiveAlternative returns the index of the alternative whose
// discriminator const equals the document's current discriminator
// value, or -1 when none matches (including empty or new documents,
// where the union shows only the picker).
func ActiveAlternative(union *Node, document any) int {
	object, ok := document.(map[string]any)
	if !ok {
		return -1
	}
	current, present := object[DiscriminatorProperty]
	if !present {
		return -1
	}
	for index, alternative := range union.OneOf {
		constant, ok := DiscriminatorConst(alternative)
		if ok && constant == current {
			return index
		}
	}
	return -1
}

// SeedObject builds the fresh document value for a newly selected
// union alternative. The result is keyed only by the alternative's
// own property names: each property gets its declared const if any,
// else its declared default, else stays unset. Values from the
// previously selected alternative are discarded, even for same-named
// properties: alternatives do not share semantics for a field name.
// This data loss on switch is a behavioral contract, not an accident.
func SeedObject(alternative *Node) map[string]any {
	object := map[string]any{}
	for _, property := range alternative.Properties {
		if property.Schema == nil {
			continue
		}
		if property.Schema.Const != nil {
			object[property.Name] = property.Schema.Const
			continue
		}
		if property.Schema.Default != nil {
			object[property.Name] = property.Schema.Default
		}
	}
	return object
}
