// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package consoleapi is the HTTP client for the console API, the
// external collaborator that serves the configuration schema, serves
// and persists configuration documents, and validates documents
// server-side.
//
// The form engine only ever needs four calls per edit session: one
// schema fetch, one document fetch, any number of validation checks
// (driven by the debounced checker), and a save. All calls take a
// context and go through a caller-supplied [http.Client], so tests
// inject an httptest server and commands control timeouts.
//
// Validation failures are not transport errors: a 422 response
// decodes into the structured error list of [validation.Error] and
// returns with a nil error. Anything else non-2xx is a session-level
// error surfaced as a single message.
package consoleapi
