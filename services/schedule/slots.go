// Package schedule computes which catalog times remain bookable for a date.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSlots is returned when every catalog entry has already passed; callers
// must surface an explicit "no available slots" state rather than an empty
// list.
var ErrNoSlots = errors.New("no available slots for the selected date")

// DefaultCatalog is the fixed daily schedule offered for every staff member.
var DefaultCatalog = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"4:00 PM",
}

// clockLayout parses 12-hour times with AM/PM, tolerating a missing leading
// zero ("4:00 PM"). Noon is 12 PM, midnight 12 AM.
const clockLayout = "3:04 PM"

// ParseSlot converts a catalog entry into an instant on the given date, in
// that date's location.
func ParseSlot(entry string, date time.Time) (time.Time, error) {
	t, err := time.Parse(clockLayout, entry)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot %q: %w", entry, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// AvailableSlots returns the subset of catalog times still bookable on date.
// Dates other than today carry no time-of-day constraint and return the full
// catalog unfiltered. For today, only entries at or after now are kept. The
// function is pure and deterministic given now.
func AvailableSlots(catalog []string, date, now time.Time) ([]string, error) {
	if len(catalog) == 0 {
		return nil, ErrNoSlots
	}

	if !sameDay(date, now) {
		out := make([]string, len(catalog))
		copy(out, catalog)
		return out, nil
	}

	var out []string
	for _, entry := range catalog {
		at, err := ParseSlot(entry, date)
		if err != nil {
			return nil, err
		}
		if !at.Before(now) {
			out = append(out, entry)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoSlots
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
