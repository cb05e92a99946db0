package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := Load("")
	require.NoError(t, err)
	return loc
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.March, Day: 5}, d)
	assert.Equal(t, "2025-03-05", d.String())
	assert.Equal(t, time.Wednesday, d.Weekday())

	_, err = ParseDate("05/03/2025")
	assert.Error(t, err)
}

func TestNextStepsOneCalendarDay(t *testing.T) {
	d := NewDate(2025, time.March, 31)
	assert.Equal(t, NewDate(2025, time.April, 1), d.Next())

	// Stepping across both Sydney transitions never skips or repeats a day.
	d = NewDate(2025, time.April, 5)
	assert.Equal(t, NewDate(2025, time.April, 6), d.Next())
	assert.Equal(t, NewDate(2025, time.April, 7), d.Next().Next())

	d = NewDate(2025, time.October, 4)
	assert.Equal(t, NewDate(2025, time.October, 5), d.Next())
	assert.Equal(t, NewDate(2025, time.October, 6), d.Next().Next())
}

func TestDaysUntil(t *testing.T) {
	from := NewDate(2025, time.March, 1)
	to := NewDate(2025, time.March, 31)
	assert.Equal(t, 30, from.DaysUntil(to))
	assert.Equal(t, -30, to.DaysUntil(from))
	assert.Equal(t, 0, from.DaysUntil(from))

	// Spans a DST transition; still exact calendar days.
	assert.Equal(t, 7, NewDate(2025, time.October, 1).DaysUntil(NewDate(2025, time.October, 8)))
}

func TestDateOfUsesLocalCalendar(t *testing.T) {
	loc := sydney(t)

	// 15:00 UTC on March 4 is already March 5 in Sydney (AEDT, +11).
	instant := time.Date(2025, time.March, 4, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2025, time.March, 5), DateOf(instant, loc))

	// 12:00 UTC the same day is still March 4 locally.
	instant = time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2025, time.March, 4), DateOf(instant, loc))
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("15:30")
	require.NoError(t, err)
	assert.Equal(t, 15, h)
	assert.Equal(t, 30, m)

	_, _, err = ParseClock("25:00")
	assert.Error(t, err)
	_, _, err = ParseClock("3pm")
	assert.Error(t, err)
}

func TestResolveDaylightTime(t *testing.T) {
	loc := sydney(t)

	// March is AEDT (+11): 15:30 local is 04:30 UTC.
	instant := Resolve(NewDate(2025, time.March, 5), 15, 30, loc)
	assert.Equal(t, time.Date(2025, time.March, 5, 4, 30, 0, 0, time.UTC), instant)
}

func TestResolveStandardTime(t *testing.T) {
	loc := sydney(t)

	// July is AEST (+10): 15:30 local is 05:30 UTC.
	instant := Resolve(NewDate(2025, time.July, 9), 15, 30, loc)
	assert.Equal(t, time.Date(2025, time.July, 9, 5, 30, 0, 0, time.UTC), instant)
}

func TestResolveAmbiguousPrefersEarlierInstant(t *testing.T) {
	loc := sydney(t)

	// Sydney clocks fall back 03:00->02:00 on 2025-04-06, so 02:30 occurs
	// twice. The earlier occurrence is the daylight (+11) one: 15:30 UTC on
	// April 5.
	instant := Resolve(NewDate(2025, time.April, 6), 2, 30, loc)
	assert.Equal(t, time.Date(2025, time.April, 5, 15, 30, 0, 0, time.UTC), instant)
}

func TestResolveNonexistentShiftsForwardByGap(t *testing.T) {
	loc := sydney(t)

	// Sydney clocks spring forward 02:00->03:00 on 2025-10-05, so 02:30 does
	// not exist. It resolves as 03:30 AEDT (+11): 16:30 UTC on October 4.
	instant := Resolve(NewDate(2025, time.October, 5), 2, 30, loc)
	assert.Equal(t, time.Date(2025, time.October, 4, 16, 30, 0, 0, time.UTC), instant)

	// Round-trip confirms the wall clock landed one gap later.
	local := instant.In(loc)
	assert.Equal(t, 3, local.Hour())
	assert.Equal(t, 30, local.Minute())
}

func TestResolveSpringForwardShiftsAfternoonSessionByOneHour(t *testing.T) {
	loc := sydney(t)

	// A 15:30 session the Sunday before the October transition starts at
	// 05:30 UTC (+10); the Sunday of the transition it starts at 04:30 UTC
	// (+11): exactly one hour apart after accounting for the seven days.
	before := Resolve(NewDate(2025, time.September, 28), 15, 30, loc)
	after := Resolve(NewDate(2025, time.October, 5), 15, 30, loc)

	assert.Equal(t, time.Date(2025, time.September, 28, 5, 30, 0, 0, time.UTC), before)
	assert.Equal(t, time.Date(2025, time.October, 5, 4, 30, 0, 0, time.UTC), after)
	assert.Equal(t, 7*24*time.Hour-time.Hour, after.Sub(before))
}

func TestResolveIsDeterministic(t *testing.T) {
	loc := sydney(t)
	d := NewDate(2025, time.April, 6)
	first := Resolve(d, 2, 30, loc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Resolve(d, 2, 30, loc))
	}
}
