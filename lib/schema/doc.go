// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema models the configuration schema served by the
// console API and the two operations the form engine performs on it:
// resolving internal $ref pointers against the root's definitions
// table, and classifying a resolved fragment into the closed set of
// field kinds the form knows how to render.
//
// The supported vocabulary is deliberately the subset the console
// actually serves: string (with optional enum/const), number, integer,
// boolean, object, array, oneOf with a constant discriminator
// property, and local $ref pointers of the form "#/$defs/<name>".
// Anything else classifies as KindUnsupported, which renders an
// inline diagnostic placeholder instead of failing the whole form.
//
// Property order matters: the form renders object properties in the
// order the schema declares them, so Node preserves the JSON key
// order of "properties" during decoding.
package schema
