// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package recurrence

import "testing"

func TestClassifyDaily(t *testing.T) {
	state := Classify("30 08 * * *")
	if state.Mode != ModeDaily {
		t.Fatalf("mode = %s, want daily", state.Mode)
	}
	if state.Time != "08:30" {
		t.Errorf("time = %q, want 08:30", state.Time)
	}
	if Summary(state) != "Daily at 08:30" {
		t.Errorf("summary = %q, want \"Daily at 08:30\"", Summary(state))
	}
}

func TestClassifyDailyEditedTime(t *testing.T) {
	// Editing the picked time regenerates the expression text.
	state := Classify("30 08 * * *")
	state.Time = "10:30"
	if got := Build(state); got != "30 10 * * *" {
		t.Errorf("Build = %q, want \"30 10 * * *\"", got)
	}
}

func TestClassifyWeekly(t *testing.T) {
	state := Classify("00 09 * * 1,3")
	if state.Mode != ModeWeekly {
		t.Fatalf("mode = %s, want weekly", state.Mode)
	}
	if state.Time != "09:00" {
		t.Errorf("time = %q, want 09:00", state.Time)
	}
	if !state.Weekdays.Has(1) || !state.Weekdays.Has(3) {
		t.Errorf("weekdays = %v, want {1, 3}", state.Weekdays.Days())
	}
	if len(state.Weekdays.Days()) != 2 {
		t.Errorf("weekdays = %v, want exactly 2 members", state.Weekdays.Days())
	}
	if Summary(state) != "Weekly on Mon, Wed at 09:00" {
		t.Errorf("summary = %q, want \"Weekly on Mon, Wed at 09:00\"", Summary(state))
	}
}

func TestClassifyCustom(t *testing.T) {
	expressions := []string{
		"*/15 * * * *",    // Step in minute forces custom.
		"30 8-10 * * *",   // Range in hour forces custom.
		"0,30 9 * * *",    // List in minute forces custom.
		"30 08 1 * *",     // Restricted day-of-month.
		"30 08 * 6 *",     // Restricted month.
		"30 08 * * x",     // Non-numeric weekday.
		"30 08 * * 9",     // Out-of-range weekday.
		"75 08 * * *",     // Out-of-range minute.
		"30 25 * * *",     // Out-of-range hour.
		"not a cron",      // Wrong field count.
		"",                // Empty.
		"30 08 * * 1 * *", // Too many fields.
	}
	for _, expression := range expressions {
		t.Run(expression, func(t *testing.T) {
			state := Classify(expression)
			if state.Mode != ModeCustom {
				t.Fatalf("Classify(%q).Mode = %s, want custom", expression, state.Mode)
			}
			if state.Raw != expression {
				t.Errorf("raw = %q, want input preserved verbatim", state.Raw)
			}
			// Custom expressions pass through Build and Summary
			// untouched.
			if Build(state) != expression {
				t.Errorf("Build = %q, want %q", Build(state), expression)
			}
			if Summary(state) != expression {
				t.Errorf("Summary = %q, want %q", Summary(state), expression)
			}
		})
	}
}

func TestRoundTripDailyWeekly(t *testing.T) {
	states := []State{
		{Mode: ModeDaily, Time: "00:00"},
		{Mode: ModeDaily, Time: "08:30"},
		{Mode: ModeDaily, Time: "23:59"},
		{Mode: ModeWeekly, Time: "09:00", Weekdays: WeekdaySet(0).With(1).With(3)},
		{Mode: ModeWeekly, Time: "18:45", Weekdays: WeekdaySet(0).With(0).With(6)},
		{Mode: ModeWeekly, Time: "12:00", Weekdays: WeekdaySet(0).With(0).With(1).With(2).With(3).With(4).With(5).With(6)},
	}
	for _, state := range states {
		t.Run(Build(state), func(t *testing.T) {
			got := Classify(Build(state))
			if got != state {
				t.Errorf("Classify(Build(%+v)) = %+v", state, got)
			}
		})
	}
}

func TestBuildWeeklyEmptySet(t *testing.T) {
	// An empty weekday set degrades to a wildcard day-of-week field.
	state := State{Mode: ModeWeekly, Time: "09:00"}
	if got := Build(state); got != "00 09 * * *" {
		t.Errorf("Build = %q, want \"00 09 * * *\"", got)
	}
}

func TestBuildWeeklySortsWeekdays(t *testing.T) {
	state := State{Mode: ModeWeekly, Time: "09:00", Weekdays: WeekdaySet(0).With(5).With(1).With(3)}
	if got := Build(state); got != "00 09 * * 1,3,5" {
		t.Errorf("Build = %q, want ascending weekday list", got)
	}
}

func TestCheckExpression(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantValid  bool
	}{
		{"wildcard", "* * * * *", true},
		{"daily", "30 08 * * *", true},
		{"weekly_list", "00 09 * * 1,3", true},
		{"step_and_range", "*/15 0-6 1,15 * 1-5", true},
		{"four_fields", "* * * *", false},
		{"six_fields", "* * * * * *", false},
		{"empty", "", false},
		{"letters", "30 08 * * mon", false},
		{"at_macro", "@daily", false},
		{"question_mark", "30 08 ? * *", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := CheckExpression(test.expression)
			if test.wantValid && err != nil {
				t.Errorf("CheckExpression(%q) = %v, want nil", test.expression, err)
			}
			if !test.wantValid && err == nil {
				t.Errorf("CheckExpression(%q) = nil, want error", test.expression)
			}
		})
	}
}

func TestCheckExpressionAcceptsGeneratedOutput(t *testing.T) {
	// Everything Build produces for structured states must pass the
	// save gate.
	states := []State{
		{Mode: ModeDaily, Time: "08:30"},
		{Mode: ModeWeekly, Time: "09:00", Weekdays: WeekdaySet(0).With(1).With(3)},
		{Mode: ModeWeekly, Time: "06:15"},
	}
	for _, state := range states {
		expression := Build(state)
		if err := CheckExpression(expression); err != nil {
			t.Errorf("CheckExpression(%q) = %v, want nil", expression, err)
		}
	}
}
