// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
)

// Serialize renders the canonical document as the raw-text view:
// two-space indented JSON with stable key order (encoding/json sorts
// map keys). The raw pane is always regenerated from the canonical
// document by this function, never patched from previous text, so
// the structured and textual views cannot silently diverge.
func Serialize(value any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, fmt.Errorf("document: serialize: %w", err)
	}
	// Encoder appends a trailing newline; the raw pane supplies its
	// own line handling.
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// ParseText parses a raw-text edit into a document value. The text
// may use JSONC conveniences (// comments, /* block comments */,
// trailing commas); they are stripped before unmarshalling. A parse
// failure returns an error and the caller keeps the previous
// canonical document unchanged.
func ParseText(text []byte) (any, error) {
	stripped := jsonc.ToJSON(text)

	decoder := json.NewDecoder(bytes.NewReader(stripped))

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}

	// Anything after the first value makes the text invalid, whether
	// or not it decodes ("{} {}" and "{} zzz" alike). Only a clean
	// end of input is acceptable.
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("document: parse: unexpected content after document")
	}

	return value, nil
}
