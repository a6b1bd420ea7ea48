package report

import (
	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/stats"
)

// PreviewLimit caps the number of records shown in a detail preview.
const PreviewLimit = 50

// Summary counts the records of a detail report.
type Summary struct {
	Total          int
	Present        int
	Absent         int
	AttendanceRate float64 // present / total × 100, two decimals
}

// Summarize counts present and absent records.
// AttendanceRate is relative to the records, not the roster, and is 0 for no records.
func Summarize(records []attendance.Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.Present {
			s.Present++
		}
	}
	s.Absent = s.Total - s.Present
	if s.Total > 0 {
		s.AttendanceRate = stats.Round(float64(s.Present)/float64(s.Total)*100, 2)
	}
	return s
}

// Detail is the date-range presence/absence report.
type Detail struct {
	Records []attendance.Record
	Present []attendance.Record
	Absent  []attendance.Record
	Summary Summary
	Preview []attendance.Record
}

// NewDetail partitions records into present and absent.
// PRE: records are in backend order
// POST: Preview holds at most PreviewLimit records in input order
func NewDetail(records []attendance.Record, summary Summary) Detail {
	d := Detail{
		Records: records,
		Present: make([]attendance.Record, 0),
		Absent:  make([]attendance.Record, 0),
		Summary: summary,
	}
	for _, r := range records {
		if r.Present {
			d.Present = append(d.Present, r)
		} else {
			d.Absent = append(d.Absent, r)
		}
	}
	n := len(records)
	if n > PreviewLimit {
		n = PreviewLimit
	}
	d.Preview = records[:n:n]
	return d
}
