// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"strconv"
	"strings"
)

// Child returns the instance path of a named property under parent.
// The root path is the empty string, so Child("", "features") is
// "/features". Names containing "~" or "/" are escaped per RFC 6901.
func Child(parent, name string) string {
	escaped := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return parent + "/" + escaped
}

// Element returns the instance path of an array element under parent.
func Element(parent string, index int) string {
	return parent + "/" + strconv.Itoa(index)
}
