// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package document holds the canonical configuration document and the
// operations the form engine performs on it.
//
// A document is an arbitrary nested value (map[string]any, []any,
// string, float64, bool, nil) conforming at every path to the schema
// at that path. The synchronizer owns the canonical value; every
// field renderer sees a read-only snapshot and proposes changes as
// whole replacement values for its subtree. All edit helpers are
// copy-on-write: they return a new value and never mutate their
// input, so a rejected edit costs nothing and the old document can be
// compared against the new one.
//
// Instance paths are slash-delimited with RFC 6901 escaping ("~0" for
// "~", "~1" for "/"), matching the paths the server validator reports
// errors against.
package document
