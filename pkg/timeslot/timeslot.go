// Package timeslot provides helpers for the "HH:MM" clock-time strings used
// by availability slots and slot input templates.
package timeslot

import (
	"fmt"
	"time"
)

// Layout is the clock-time layout used across the system.
const Layout = "15:04"

// Minutes converts a "HH:MM" value to minutes since midnight.
func Minutes(value string) (int, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Format converts minutes since midnight back to a "HH:MM" value.
func Format(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Valid reports whether value parses as a "HH:MM" clock time.
func Valid(value string) bool {
	_, err := time.Parse(Layout, value)
	return err == nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Zero-padded "HH:MM" strings compare correctly
// as plain strings.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// At combines a calendar date with a "HH:MM" clock time.
func At(date time.Time, value string) (time.Time, error) {
	m, err := Minutes(value)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, date.Location()), nil
}

// EndsAfter reports whether date+end is strictly after now. Used as the
// past-slot guard in generation and booking.
func EndsAfter(date time.Time, end string, now time.Time) bool {
	at, err := At(date, end)
	if err != nil {
		return false
	}
	return at.After(now)
}

// DateOnly truncates t to midnight in its location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole days from a to b (negative if b is before a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
