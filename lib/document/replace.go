// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package document

// Segment addresses one step into a document: a property name or an
// array index.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// Property returns a Segment addressing a named property.
func Property(name string) Segment {
	return Segment{Name: name}
}

// Index returns a Segment addressing an array element.
func Index(index int) Segment {
	return Segment{Index: index, IsIndex: true}
}

// Get walks the document along segments and returns the value there.
// Missing properties, out-of-range indices, and shape mismatches
// return nil: an absent value, which renderers display as unset.
func Get(root any, segments []Segment) any {
	current := root
	for _, segment := range segments {
		if segment.IsIndex {
			array, ok := current.([]any)
			if !ok || segment.Index < 0 || segment.Index >= len(array) {
				return nil
			}
			current = array[segment.Index]
			continue
		}
		object, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = object[segment.Name]
	}
	return current
}

// ReplaceAt returns a new document equal to root with the value at
// segments replaced. Every container along the path is copied, so the
// input document is never mutated: callers holding the old value keep
// a consistent snapshot. Intermediate containers that are missing or
// of the wrong shape are created as needed for property segments.
// Arrays are never grown: an out-of-range index leaves the array
// unchanged.
func ReplaceAt(root any, segments []Segment, value any) any {
	if len(segments) == 0 {
		return value
	}

	head, rest := segments[0], segments[1:]

	if head.IsIndex {
		array, _ := root.([]any)
		if head.Index < 0 || head.Index >= len(array) {
			return root
		}
		return ReplaceElement(array, head.Index, ReplaceAt(array[head.Index], rest, value))
	}

	object, _ := root.(map[string]any)
	return WithProperty(object, head.Name, ReplaceAt(object[head.Name], rest, value))
}

// PathOf renders segments as a slash-delimited instance path matching
// the paths the server validator reports.
func PathOf(segments []Segment) string {
	path := ""
	for _, segment := range segments {
		if segment.IsIndex {
			path = Element(path, segment.Index)
		} else {
			path = Child(path, segment.Name)
		}
	}
	return path
}
