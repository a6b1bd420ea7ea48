package wire

import (
	"time"

	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/person"
)

// AttendanceInput is the body of POST /api/attendance.
// Tipo accepts "member", "friend" and the legacy "visitor".
type AttendanceInput struct {
	Tipo       string `json:"tipo" validate:"required,tipo"`
	PersonID   string `json:"person_id" validate:"required,notblank"`
	PersonName string `json:"person_name" validate:"required,notblank"`
	Fecha      string `json:"fecha" validate:"required,fecha"`
	Presente   *bool  `json:"presente" validate:"required"`
}

// AttendanceRecord is a stored record as returned by the API.
// Tipo is always emitted canonically; decoding accepts the legacy label.
type AttendanceRecord struct {
	ID         string      `json:"id"`
	Tipo       person.Kind `json:"tipo"`
	PersonID   string      `json:"person_id"`
	PersonName string      `json:"person_name"`
	Fecha      string      `json:"fecha"`
	Presente   bool        `json:"presente"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FromRecord converts a domain record.
func FromRecord(r attendance.Record) AttendanceRecord {
	return AttendanceRecord{
		ID:         r.ID,
		Tipo:       r.Kind,
		PersonID:   r.PersonID,
		PersonName: r.PersonName,
		Fecha:      r.Date,
		Presente:   r.Present,
		CreatedAt:  r.CreatedAt,
	}
}

// FromRecords converts a slice, never returning nil.
func FromRecords(rs []attendance.Record) []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromRecord(r))
	}
	return out
}

// Domain converts back to the domain type.
func (r AttendanceRecord) Domain() attendance.Record {
	return attendance.Record{
		ID:         r.ID,
		Kind:       r.Tipo,
		PersonID:   r.PersonID,
		PersonName: r.PersonName,
		Date:       r.Fecha,
		Present:    r.Presente,
		CreatedAt:  r.CreatedAt,
	}
}

// Records converts a slice of API records to domain records.
func Records(rs []AttendanceRecord) []attendance.Record {
	out := make([]attendance.Record, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Domain())
	}
	return out
}
