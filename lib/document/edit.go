// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package document

import "reflect"

// WithProperty returns a new object equal to object with one key
// replaced. The input may be nil (treated as an empty object) or a
// non-object value (discarded and replaced by a fresh object, which
// happens when a field's previous value had the wrong shape).
func WithProperty(object any, key string, value any) map[string]any {
	previous, _ := object.(map[string]any)
	next := make(map[string]any, len(previous)+1)
	for name, existing := range previous {
		next[name] = existing
	}
	next[key] = value
	return next
}

// WithoutProperty returns a new object equal to object with one key
// removed.
func WithoutProperty(object any, key string) map[string]any {
	previous, _ := object.(map[string]any)
	next := make(map[string]any, len(previous))
	for name, existing := range previous {
		if name != key {
			next[name] = existing
		}
	}
	return next
}

// AppendElement returns a new array with value appended. A nil or
// non-array input is treated as empty.
func AppendElement(array any, value any) []any {
	previous, _ := array.([]any)
	next := make([]any, 0, len(previous)+1)
	next = append(next, previous...)
	return append(next, value)
}

// RemoveElement returns a new array with the element at index spliced
// out, preserving the order and relative indices of the rest. An
// out-of-range index returns the input unchanged.
func RemoveElement(array any, index int) []any {
	previous, _ := array.([]any)
	if index < 0 || index >= len(previous) {
		return previous
	}
	next := make([]any, 0, len(previous)-1)
	next = append(next, previous[:index]...)
	return append(next, previous[index+1:]...)
}

// ReplaceElement returns a new array with the element at index
// replaced. An out-of-range index returns the input unchanged.
func ReplaceElement(array any, index int, value any) []any {
	previous, _ := array.([]any)
	if index < 0 || index >= len(previous) {
		return previous
	}
	next := make([]any, len(previous))
	copy(next, previous)
	next[index] = value
	return next
}

// MoveElement returns a new array with the elements at from and to
// swapped (used for move-up/move-down by one position). Moves past
// either boundary are no-ops returning the input unchanged, never a
// wrap and never an error.
func MoveElement(array any, from, to int) []any {
	previous, _ := array.([]any)
	if from < 0 || from >= len(previous) || to < 0 || to >= len(previous) || from == to {
		return previous
	}
	next := make([]any, len(previous))
	copy(next, previous)
	next[from], next[to] = next[to], next[from]
	return next
}

// Clone returns a deep copy of a document value. Scalars are returned
// as-is (they are immutable); maps and arrays are copied recursively.
func Clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		next := make(map[string]any, len(typed))
		for key, element := range typed {
			next[key] = Clone(element)
		}
		return next
	case []any:
		next := make([]any, len(typed))
		for index, element := range typed {
			next[index] = Clone(element)
		}
		return next
	default:
		return value
	}
}

// Equal reports deep equality of two document values.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
