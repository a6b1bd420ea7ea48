package period

import (
	"fmt"
	"time"
)

// DefaultTimezone is the reference zone that decides what "today" is for every user.
const DefaultTimezone = "America/New_York"

// Clock resolves "now" in a fixed reference timezone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a Clock reading the system time in the named zone.
// PRE: tz is an IANA zone name; empty means DefaultTimezone
// POST: Returns a ready clock or an error if the zone is unknown
func NewClock(tz string) (Clock, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Clock{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return Clock{loc: loc, now: time.Now}, nil
}

// FixedClock returns a Clock frozen at instant t, viewed in loc.
func FixedClock(t time.Time, loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc, now: func() time.Time { return t }}
}

// Now returns the current instant in the reference zone.
func (c Clock) Now() time.Time {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	loc := c.loc
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// Location returns the reference zone.
func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Today returns the current calendar date (YYYY-MM-DD) in the reference zone.
func (c Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// CurrentMonth returns the whole calendar month containing today.
func (c Clock) CurrentMonth() Period {
	n := c.Now()
	return Month(n.Year(), n.Month())
}

// MonthToDate returns [first of this month, today].
func (c Clock) MonthToDate() Period {
	n := c.Now()
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return Period{Start: time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, time.UTC), End: today}
}
