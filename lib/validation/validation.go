// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"github.com/chatwright/chatwright/lib/document"
)

// Error is one entry of the structured error list the console API
// returns. InstancePath is slash-delimited and matches the document
// structure; Keyword and Params carry the machine-readable cause when
// the validator provides one (for "required" errors, Params holds
// the missing property name).
type Error struct {
	InstancePath string         `json:"instancePath"`
	Message      string         `json:"message"`
	Keyword      string         `json:"keyword,omitempty"`
	Params       map[string]any `json:"params,omitempty"`
}

// KeywordRequired is the validator keyword for a missing required
// property, reported at the parent object's path with the property
// name in Params["missingProperty"].
const KeywordRequired = "required"

// Index groups validation errors by the instance path of the field
// that should display them. Build one per validation pass and discard
// it with the pass; an Index is never patched.
type Index struct {
	byPath map[string][]Error
}

// NewIndex builds an Index from a validation pass. Most errors file
// under their own instance path. Required errors re-target: an error
// at /features with missing property "chat_system_prompt" files
// under /features/chat_system_prompt, so the annotation lands on the
// missing field rather than its parent.
func NewIndex(errors []Error) *Index {
	index := &Index{byPath: make(map[string][]Error, len(errors))}
	for _, entry := range errors {
		path := entry.InstancePath
		if entry.Keyword == KeywordRequired {
			if missing, ok := entry.Params["missingProperty"].(string); ok && missing != "" {
				path = document.Child(entry.InstancePath, missing)
			}
		}
		index.byPath[path] = append(index.byPath[path], entry)
	}
	return index
}

// At returns the errors filed for an exact instance path. A field
// with no matching error renders clean even when sibling fields fail.
func (index *Index) At(path string) []Error {
	if index == nil {
		return nil
	}
	return index.byPath[path]
}

// Empty reports whether the pass produced no errors at all.
func (index *Index) Empty() bool {
	return index == nil || len(index.byPath) == 0
}

// Total returns the number of errors across all paths, for the status
// line.
func (index *Index) Total() int {
	if index == nil {
		return 0
	}
	total := 0
	for _, entries := range index.byPath {
		total += len(entries)
	}
	return total
}
