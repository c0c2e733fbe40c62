// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// Package recurrence parses, classifies, generates, and validates the
// 5-field cron-style expressions that drive scheduled group-tracking
// jobs (minute, hour, day-of-month, month, day-of-week).
//
// Two representations coexist:
//
//   - Schedule: the full cron semantics (wildcards, ranges, steps,
//     lists) parsed into per-field bitsets, used to compute the next
//     fire time for the schedule preview.
//   - State: the structured picker form (daily, weekly, custom) shown
//     in the configuration form. Daily and weekly shapes convert
//     losslessly between State and expression text; anything else is
//     carried as an opaque raw string and displayed verbatim.
//
// CheckExpression is the sole gate an expression must pass before a
// document containing it may be saved. It applies equally to
// hand-typed and generated text.
package recurrence
