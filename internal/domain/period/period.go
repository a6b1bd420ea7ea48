package period

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrInvalidDate   = errors.New("date must be formatted as YYYY-MM-DD")
	ErrMissingDate   = errors.New("both start and end dates are required")
	ErrStartAfterEnd = errors.New("start date must not be after end date")
)

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC.
// PRE: none
// POST: Returns the date or an error wrapping ErrInvalidDate
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// Period is a closed interval of calendar days [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// New builds a Period from two YYYY-MM-DD strings.
// PRE: none
// POST: Returns a Period with Start <= End, or a validation error
// INVARIANT: ErrStartAfterEnd is returned before any caller can query storage
func New(start, end string) (Period, error) {
	if start == "" || end == "" {
		return Period{}, ErrMissingDate
	}
	s, err := ParseDate(start)
	if err != nil {
		return Period{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Period{}, err
	}
	if s.After(e) {
		return Period{}, fmt.Errorf("%w: %s > %s", ErrStartAfterEnd, start, end)
	}
	return Period{Start: s, End: e}, nil
}

// Month returns the whole calendar month containing d.
func Month(year int, month time.Month) Period {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Period{Start: first, End: last}
}

// ParseMonth parses "YYYY-MM" into the whole calendar month.
func ParseMonth(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("month must be formatted as YYYY-MM: %q", s)
	}
	return Month(t.Year(), t.Month()), nil
}

// Days returns the inclusive number of calendar days in the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// StartDate returns Start as YYYY-MM-DD.
func (p Period) StartDate() string { return p.Start.Format(DateLayout) }

// EndDate returns End as YYYY-MM-DD.
func (p Period) EndDate() string { return p.End.Format(DateLayout) }

// Contains reports whether the YYYY-MM-DD date falls inside the period.
// Lexical comparison is valid because the layout is zero-padded.
func (p Period) Contains(date string) bool {
	return date >= p.StartDate() && date <= p.EndDate()
}

// String renders the period as "start..end".
func (p Period) String() string {
	return p.StartDate() + ".." + p.EndDate()
}
