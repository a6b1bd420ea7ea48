package attendance_test

import (
	"testing"

	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/person"
)

// TestRecordValidate tests validation of attendance records.
func TestRecordValidate(t *testing.T) {
	valid := attendance.Record{Kind: person.Member, PersonID: "m1", PersonName: "Ana Pérez", Date: "2024-03-10", Present: true}

	tests := []struct {
		name    string
		mutate  func(r *attendance.Record)
		wantErr bool
	}{
		{"valid", func(r *attendance.Record) {}, false},
		{"friend kind", func(r *attendance.Record) { r.Kind = person.Friend }, false},
		{"unknown kind", func(r *attendance.Record) { r.Kind = person.KindUnknown }, true},
		{"missing person", func(r *attendance.Record) { r.PersonID = "" }, true},
		{"missing name", func(r *attendance.Record) { r.PersonName = " " }, true},
		{"bad date", func(r *attendance.Record) { r.Date = "2024-3-10" }, true},
		{"date with time", func(r *attendance.Record) { r.Date = "2024-03-10T10:00:00Z" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestMark tests the three-state mark.
func TestMark(t *testing.T) {
	if attendance.Unmarked.IsSet() {
		t.Error("Unmarked must not be set")
	}
	if attendance.MarkOf(false) != attendance.Absent || !attendance.Absent.IsSet() {
		t.Error("MarkOf(false) must be an explicit Absent")
	}
	if attendance.MarkOf(true) != attendance.Present {
		t.Error("MarkOf(true) must be Present")
	}
	r := attendance.Record{Kind: person.Friend, PersonID: "f1", Present: false}
	if r.Mark() != attendance.Absent {
		t.Errorf("Mark() = %v", r.Mark())
	}
	if r.Key() != person.NewKey(person.Friend, "f1") {
		t.Errorf("Key() = %v", r.Key())
	}
}
