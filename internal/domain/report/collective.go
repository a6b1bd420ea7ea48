package report

import (
	"sort"

	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

// DayCount is the number of present records on one date.
type DayCount struct {
	Members int
	Friends int
	Total   int
}

// Collective is the per-date aggregation of a period.
type Collective struct {
	Period       period.Period
	ByDate       map[string]DayCount
	TotalRecords int
	TotalPresent int
}

// GroupByDate builds the collective report.
// Every date carrying a record appears in ByDate, even when nobody was present.
// Records of an unknown kind count in the totals but in no day bucket.
// INVARIANT: Total == Members + Friends for every date
func GroupByDate(records []attendance.Record, p period.Period) Collective {
	c := Collective{Period: p, ByDate: make(map[string]DayCount)}
	for _, r := range records {
		if !p.Contains(r.Date) {
			continue
		}
		c.TotalRecords++
		day := c.ByDate[r.Date]
		if r.Present {
			c.TotalPresent++
			switch r.Kind {
			case person.Member:
				day.Members++
				day.Total++
			case person.Friend:
				day.Friends++
				day.Total++
			}
		}
		c.ByDate[r.Date] = day
	}
	return c
}

// Point is one date of a chartable series.
type Point struct {
	Date string
	DayCount
}

// Series converts a by-date map into points sorted by date.
func Series(byDate map[string]DayCount) []Point {
	points := make([]Point, 0, len(byDate))
	for date, count := range byDate {
		points = append(points, Point{Date: date, DayCount: count})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}
