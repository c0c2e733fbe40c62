// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

package recurrence

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode classifies an expression for the structured picker.
type Mode string

const (
	// ModeDaily is "every day at a fixed time": fields 3-5 are * * *.
	ModeDaily Mode = "daily"
	// ModeWeekly is "fixed time on selected weekdays": fields 3-4 are
	// wildcards and field 5 is a comma list of weekday numbers.
	ModeWeekly Mode = "weekly"
	// ModeCustom is any expression outside the daily/weekly shape. It
	// is carried as an opaque raw string and never restructured.
	ModeCustom Mode = "custom"
)

// WeekdaySet is a compact set of weekday numbers 0-6 (Sunday = 0).
type WeekdaySet uint8

// Has reports whether day is in the set.
func (set WeekdaySet) Has(day int) bool { return set&(1<<uint(day)) != 0 }

// With returns the set with day added.
func (set WeekdaySet) With(day int) WeekdaySet { return set | (1 << uint(day)) }

// Without returns the set with day removed.
func (set WeekdaySet) Without(day int) WeekdaySet { return set &^ (1 << uint(day)) }

// Days returns the members in ascending order.
func (set WeekdaySet) Days() []int {
	var days []int
	for day := 0; day <= 6; day++ {
		if set.Has(day) {
			days = append(days, day)
		}
	}
	return days
}

// State is the structured picker form of an expression. For daily and
// weekly modes, Time holds "HH:MM" and (for weekly) Weekdays holds the
// selected days; Raw is empty. For custom mode, Raw holds the original
// expression text verbatim and the other fields are zero.
type State struct {
	Mode     Mode
	Time     string
	Weekdays WeekdaySet
	Raw      string
}

// weekdayNames are the short labels used in summaries, indexed by
// cron weekday number (Sunday = 0).
var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Classify derives the structured picker state from expression text.
// Expressions outside the exact daily/weekly shape (including
// anything with range/step/list syntax in the minute or hour field)
// come back as ModeCustom with the text preserved verbatim, so that
// Build can reproduce them without loss.
func Classify(text string) State {
	custom := State{Mode: ModeCustom, Raw: text}

	fields := strings.Fields(text)
	if len(fields) != 5 {
		return custom
	}

	// Structured display needs a single concrete time-of-day: minute
	// and hour must each be a plain integer in range.
	minute, ok := plainInt(fields[0], 59)
	if !ok {
		return custom
	}
	hour, ok := plainInt(fields[1], 23)
	if !ok {
		return custom
	}

	if fields[2] != "*" || fields[3] != "*" {
		return custom
	}

	clock := fmt.Sprintf("%02d:%02d", hour, minute)

	if fields[4] == "*" {
		return State{Mode: ModeDaily, Time: clock}
	}

	var weekdays WeekdaySet
	for _, part := range strings.Split(fields[4], ",") {
		day, ok := plainInt(part, 6)
		if !ok {
			return custom
		}
		weekdays = weekdays.With(day)
	}
	return State{Mode: ModeWeekly, Time: clock, Weekdays: weekdays}
}

// Build generates expression text from picker state. Daily and weekly
// states produce canonical zero-padded expressions; custom states
// return the raw text verbatim, unmodified.
func Build(state State) string {
	switch state.Mode {
	case ModeDaily:
		minute, hour := splitClock(state.Time)
		return fmt.Sprintf("%02d %02d * * *", minute, hour)
	case ModeWeekly:
		minute, hour := splitClock(state.Time)
		dayField := "*"
		if days := state.Weekdays.Days(); len(days) > 0 {
			parts := make([]string, len(days))
			for index, day := range days {
				parts[index] = strconv.Itoa(day)
			}
			dayField = strings.Join(parts, ",")
		}
		return fmt.Sprintf("%02d %02d * * %s", minute, hour, dayField)
	default:
		return state.Raw
	}
}

// CheckExpression is the save gate for recurrence fields: the text
// must contain exactly 5 whitespace-separated fields, each drawn only
// from the characters 0-9 * / , -. It applies uniformly to hand-typed
// and generated expressions.
func CheckExpression(text string) error {
	fields := strings.Fields(text)
	if len(fields) != 5 {
		return fmt.Errorf("recurrence: expected 5 fields, got %d", len(fields))
	}
	for index, field := range fields {
		for _, character := range field {
			if character >= '0' && character <= '9' {
				continue
			}
			switch character {
			case '*', '/', ',', '-':
				continue
			}
			return fmt.Errorf("recurrence: field %d contains invalid character %q", index+1, character)
		}
	}
	return nil
}

// Summary renders a human sentence for daily and weekly states
// ("Daily at 08:30", "Weekly on Mon, Wed at 09:00"). Custom states
// render the raw string verbatim, never a partially-interpreted
// hybrid.
func Summary(state State) string {
	switch state.Mode {
	case ModeDaily:
		return "Daily at " + state.Time
	case ModeWeekly:
		days := state.Weekdays.Days()
		if len(days) == 0 {
			return "Weekly at " + state.Time
		}
		names := make([]string, len(days))
		for index, day := range days {
			names[index] = weekdayNames[day]
		}
		return "Weekly on " + strings.Join(names, ", ") + " at " + state.Time
	default:
		return state.Raw
	}
}

// plainInt parses a field that must be a bare non-negative integer no
// greater than maximum. Any other syntax (ranges, steps, lists, signs)
// fails.
func plainInt(field string, maximum int) (int, bool) {
	if field == "" {
		return 0, false
	}
	for _, character := range field {
		if character < '0' || character > '9' {
			return 0, false
		}
	}
	value, err := strconv.Atoi(field)
	if err != nil || value > maximum {
		return 0, false
	}
	return value, true
}

// splitClock parses an "HH:MM" string into minute and hour. Malformed
// input yields 00:00; the picker validates clock text before commit,
// so this is a backstop rather than an error path.
func splitClock(clock string) (minute, hour int) {
	colon := strings.IndexByte(clock, ':')
	if colon < 0 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(clock[:colon])
	minute, _ = strconv.Atoi(clock[colon+1:])
	if hour < 0 || hour > 23 {
		hour = 0
	}
	if minute < 0 || minute > 59 {
		minute = 0
	}
	return minute, hour
}
