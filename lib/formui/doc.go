// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package formui is the schema-driven configuration form: a bubbletea
// model that renders an editable structured view of a configuration
// document next to a raw JSON view of the same document, and keeps
// the two in lockstep.
//
// The Model is the form/document synchronizer. It owns the canonical
// {schema, document, errors} triple; everything on screen is derived
// from it. Structured edits and raw-text edits both funnel into the
// same replacement path: an accepted change installs a new canonical
// document, regenerates the raw view by serialization (never by
// patching the previous text), rebuilds the visible field rows, and
// schedules a debounced server validation check. A rejected raw edit
// changes nothing except the parse-error notice; the raw pane keeps
// the user's text so it can be fixed in place.
//
// The field rows are produced by a recursive walk that resolves
// schema references one level at a time, classifies each fragment,
// and dispatches to the per-kind builders: leaf editors for strings,
// numbers, and booleans; a property walk for objects; add/remove/move
// for arrays; a discriminator-driven picker for unions; and the
// structured recurrence picker for string leaves with the
// "recurrence" format. A fragment the walk cannot interpret becomes a
// diagnostic placeholder row; it never takes the rest of the form
// down with it.
package formui
