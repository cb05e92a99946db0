// Package timezone provides the calendar primitives for the business's fixed
// home timezone: local calendar dates, day stepping, and conversion of
// wall-clock times to UTC instants with a deterministic DST policy.
package timezone

import (
	"fmt"
	"time"
)

// DefaultName is the business timezone all session wall-clock times are
// defined in.
const DefaultName = "Australia/Sydney"

// Load resolves a timezone name, defaulting to the business timezone.
func Load(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultName
	}
	return time.LoadLocation(name)
}

// Date is a plain calendar date with no time-of-day or zone attached. All
// range iteration steps through Dates so DST shifts can never skip or repeat
// a day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a normalized Date (out-of-range components roll over the way
// time.Date does).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf returns the calendar date of the instant as observed in loc. This is
// the only correct way to derive a date key: truncating the UTC instant would
// misattribute evenings near the UTC midnight boundary.
func DateOf(t time.Time, loc *time.Location) Date {
	local := t.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// midnightUTC anchors the date in UTC for pure calendar arithmetic. UTC has
// no transitions, so AddDate here always moves exactly one calendar day.
func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of week for the date.
func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	t := d.midnightUTC().AddDate(0, 0, 1)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// AddDays returns the date n calendar days later (earlier when negative).
func (d Date) AddDays(n int) Date {
	t := d.midnightUTC().AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.midnightUTC().After(other.midnightUTC())
}

// DaysUntil counts the calendar days from d to other (negative when other is
// earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()) / (24 * time.Hour))
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Resolve converts a wall-clock time on a local calendar date into a UTC
// instant. The two DST transition days are handled deterministically:
//
//   - an ambiguous wall-clock time (clocks fell back) resolves to the earlier
//     of its two instants;
//   - a nonexistent wall-clock time (clocks sprang forward) shifts forward by
//     the size of the gap.
//
// Resolve never fails: every (date, wall-clock) pair maps to exactly one
// instant.
func Resolve(d Date, hour, minute int, loc *time.Location) time.Time {
	naive := time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, time.UTC)

	var valid []time.Time
	for _, offset := range candidateOffsets(naive, loc) {
		instant := naive.Add(-time.Duration(offset) * time.Second)
		local := instant.In(loc)
		if local.Year() == d.Year && local.Month() == d.Month && local.Day() == d.Day &&
			local.Hour() == hour && local.Minute() == minute {
			valid = append(valid, instant)
		}
	}

	if len(valid) > 0 {
		earliest := valid[0]
		for _, instant := range valid[1:] {
			if instant.Before(earliest) {
				earliest = instant
			}
		}
		return earliest.UTC()
	}

	// The wall-clock time does not exist on this date. Interpreting it with
	// the pre-transition (smaller) offset lands after the transition, shifted
	// forward by exactly the gap size.
	minOffset := 0
	for i, offset := range candidateOffsets(naive, loc) {
		if i == 0 || offset < minOffset {
			minOffset = offset
		}
	}
	return naive.Add(-time.Duration(minOffset) * time.Second).UTC()
}

// candidateOffsets returns the distinct zone offsets in force within a day of
// the naive wall-clock time, covering both sides of any transition.
func candidateOffsets(naive time.Time, loc *time.Location) []int {
	probes := []time.Time{
		naive.Add(-24 * time.Hour),
		naive,
		naive.Add(24 * time.Hour),
	}

	var offsets []int
	for _, probe := range probes {
		_, offset := probe.In(loc).Zone()
		seen := false
		for _, existing := range offsets {
			if existing == offset {
				seen = true
				break
			}
		}
		if !seen {
			offsets = append(offsets, offset)
		}
	}
	return offsets
}
