// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package validation models the structured error list the console API
// returns from a validation pass and maps each error onto the nested
// field it belongs to.
//
// Errors are immutable once produced: every validation pass replaces
// the previous set wholesale, even when the new set is empty. The one
// transformation applied is required re-targeting: the validator
// reports a missing property at the parent object's path, but the
// form must annotate the missing child itself, so Index moves
// "required" errors down one level using the missing property name
// the validator includes in its params.
package validation
