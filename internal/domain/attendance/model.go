package attendance

import (
	"errors"
	"strings"
	"time"

	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

// Domain errors
var (
	ErrEmptyPersonID = errors.New("attendance must be associated with a person")
	ErrInvalidKind   = errors.New("attendance tipo must be member or friend")
	ErrEmptyName     = errors.New("person_name cannot be empty")
)

// Record is one person's attendance on one calendar date.
// Records are unique per (Kind, PersonID, Date); a later save overwrites the earlier one.
type Record struct {
	ID         string
	Kind       person.Kind
	PersonID   string
	PersonName string
	Date       string // YYYY-MM-DD format
	Present    bool
	CreatedAt  time.Time
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Kind is canonical, PersonID set, Date is YYYY-MM-DD
func (r *Record) Validate() error {
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(r.PersonID) == "" {
		return ErrEmptyPersonID
	}
	if strings.TrimSpace(r.PersonName) == "" {
		return ErrEmptyName
	}
	if _, err := period.ParseDate(r.Date); err != nil {
		return err
	}
	return nil
}

// Key returns the roster key of the person this record refers to.
func (r Record) Key() person.Key {
	return person.NewKey(r.Kind, r.PersonID)
}

// Mark returns the explicit state carried by this record.
func (r Record) Mark() Mark {
	return MarkOf(r.Present)
}

// Mark is the attendance state of a roster entry on a day.
// Unmarked means no record exists; it is never treated as Absent.
type Mark uint8

const (
	Unmarked Mark = iota
	Present
	Absent
)

// MarkOf converts a checkbox value into an explicit mark.
func MarkOf(present bool) Mark {
	if present {
		return Present
	}
	return Absent
}

// IsSet reports whether the mark was explicitly recorded.
func (m Mark) IsSet() bool {
	return m == Present || m == Absent
}

// String returns a short label for display.
func (m Mark) String() string {
	switch m {
	case Present:
		return "present"
	case Absent:
		return "absent"
	}
	return "unmarked"
}
