package report

import (
	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/friend"
	"diaconisas/internal/domain/person"
)

// VisitorEntry is one friend present on a day.
type VisitorEntry struct {
	PersonID string
	Name     string
	Origin   string
	Known    bool // false when the friend no longer exists
}

// VisitorsOfDay lists the friends present on date, enriched with their origin.
// A friend deleted after attending keeps the recorded name and an unspecified origin.
// PRE: date is YYYY-MM-DD
// POST: Entries follow record order; only present friend records on date are included
func VisitorsOfDay(records []attendance.Record, friends []friend.Friend, date string) []VisitorEntry {
	byID := make(map[string]friend.Friend, len(friends))
	for _, f := range friends {
		byID[f.ID] = f
	}

	entries := make([]VisitorEntry, 0)
	for _, r := range records {
		if r.Kind != person.Friend || !r.Present || r.Date != date {
			continue
		}
		e := VisitorEntry{PersonID: r.PersonID, Name: r.PersonName, Origin: friend.OriginUnspecified}
		if f, ok := byID[r.PersonID]; ok {
			e.Origin = f.Origin()
			e.Known = true
		}
		entries = append(entries, e)
	}
	return entries
}
