package projections

import (
	"context"

	"diaconisas/internal/adapters/storage/attendance"
	domainAttendance "diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

// GetAttendanceByDateQuery carries query parameters.
type GetAttendanceByDateQuery struct {
	Date string // empty means today per Clock
}

// GetAttendanceByDateDeps holds dependencies for GetAttendanceByDate.
type GetAttendanceByDateDeps struct {
	AttendanceStore AttendanceStore
	Clock           period.Clock
}

// GetAttendanceByDateResult carries the records of one day.
type GetAttendanceByDateResult struct {
	Date    string
	Records []domainAttendance.Record
}

// QueryGetAttendanceByDate retrieves every record of one date, present or not.
// PRE: Date is empty or YYYY-MM-DD
// POST: Returns the day's records; an absent person has no record at all
func QueryGetAttendanceByDate(ctx context.Context, query GetAttendanceByDateQuery, deps GetAttendanceByDateDeps) (GetAttendanceByDateResult, error) {
	date := query.Date
	if date == "" {
		date = deps.Clock.Today()
	}
	if _, err := period.ParseDate(date); err != nil {
		return GetAttendanceByDateResult{}, err
	}

	records, err := deps.AttendanceStore.List(ctx, attendance.Filter{Date: date})
	if err != nil {
		return GetAttendanceByDateResult{}, err
	}
	return GetAttendanceByDateResult{Date: date, Records: records}, nil
}

// GetPersonAttendanceQuery carries query parameters.
type GetPersonAttendanceQuery struct {
	Kind     person.Kind
	PersonID string
}

// GetPersonAttendanceDeps holds dependencies for GetPersonAttendance.
type GetPersonAttendanceDeps struct {
	AttendanceStore AttendanceStore
}

// QueryGetPersonAttendance retrieves every record of one person.
// PRE: Kind is Member or Friend
// POST: Returns records ordered by date, either friend label included
func QueryGetPersonAttendance(ctx context.Context, query GetPersonAttendanceQuery, deps GetPersonAttendanceDeps) ([]domainAttendance.Record, error) {
	if !query.Kind.Valid() {
		return nil, person.ErrUnknownKind
	}
	return deps.AttendanceStore.List(ctx, attendance.Filter{Kind: query.Kind, PersonID: query.PersonID})
}
