package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/person"
)

// AttendanceStoreForRecord defines the store interface needed by RecordAttendance.
type AttendanceStoreForRecord interface {
	Upsert(ctx context.Context, r attendance.Record) (attendance.Record, error)
}

// RecordAttendanceInput carries one explicit mark.
type RecordAttendanceInput struct {
	Kind       person.Kind
	PersonID   string
	PersonName string
	Date       string
	Present    bool
}

// RecordAttendanceDeps holds dependencies for RecordAttendance.
type RecordAttendanceDeps struct {
	AttendanceStore AttendanceStoreForRecord
}

// ExecuteRecordAttendance stores a mark keyed on (kind, person, date).
// PRE: Kind is Member or Friend, Date is YYYY-MM-DD
// POST: Exactly one record exists for the key, holding Present
// INVARIANT: Repeating the same input leaves the same persisted state
func ExecuteRecordAttendance(ctx context.Context, input RecordAttendanceInput, deps RecordAttendanceDeps) (attendance.Record, error) {
	r := attendance.Record{
		Kind:       input.Kind,
		PersonID:   strings.TrimSpace(input.PersonID),
		PersonName: strings.TrimSpace(input.PersonName),
		Date:       input.Date,
		Present:    input.Present,
	}
	if err := r.Validate(); err != nil {
		return attendance.Record{}, err
	}

	stored, err := deps.AttendanceStore.Upsert(ctx, r)
	if err != nil {
		return attendance.Record{}, err
	}

	slog.Info("attendance_event", "event", "attendance_recorded",
		"key", stored.Key().String(),
		"fecha", stored.Date,
		"presente", stored.Present,
	)
	return stored, nil
}
