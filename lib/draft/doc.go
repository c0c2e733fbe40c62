// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package draft persists in-progress configuration documents to local
// disk so that no failure mode costs the user their edits: a crashed
// terminal, a failed save, or a lost connection all leave a draft
// behind that the next session offers to restore.
//
// Drafts are encoded with CBOR Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same logical draft always produces
// identical bytes, so rewriting an unchanged draft is a no-op at the
// filesystem level.
package draft
