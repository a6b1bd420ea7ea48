package wire

import (
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
	"diaconisas/internal/domain/report"
	"diaconisas/internal/domain/stats"
)

// DateRange echoes the period a report covers.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromPeriod converts a period.
func FromPeriod(p period.Period) DateRange {
	return DateRange{Start: p.StartDate(), End: p.EndDate()}
}

// Summary is the record-relative statistics block of detail and individual reports.
type Summary struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// FromSummary converts a report summary.
func FromSummary(s report.Summary) Summary {
	return Summary(s)
}

// Domain converts back to the domain type.
func (s Summary) Domain() report.Summary {
	return report.Summary(s)
}

// DateRangeReport is the body of GET /api/reports/by-date-range.
type DateRangeReport struct {
	Records    []AttendanceRecord `json:"records"`
	Statistics Summary            `json:"statistics"`
}

// FromDetail converts a detail report.
func FromDetail(d report.Detail) DateRangeReport {
	return DateRangeReport{Records: FromRecords(d.Records), Statistics: FromSummary(d.Summary)}
}

// Domain rebuilds the detail report, partitions and preview included.
func (r DateRangeReport) Domain() report.Detail {
	return report.NewDetail(Records(r.Records), r.Statistics.Domain())
}

// IndividualReport is the body of GET /api/reports/individual/{id}.
type IndividualReport struct {
	PersonID   string             `json:"person_id"`
	Tipo       person.Kind        `json:"tipo"`
	Records    []AttendanceRecord `json:"records"`
	Statistics Summary            `json:"statistics"`
}

// DayCount is one entry of the collective report's by_date map.
// Visitors mirrors Friends for clients that predate the rename.
type DayCount struct {
	Members  int `json:"members"`
	Friends  int `json:"friends"`
	Visitors int `json:"visitors"`
	Total    int `json:"total"`
}

// FromDayCount converts a domain day count.
func FromDayCount(d report.DayCount) DayCount {
	return DayCount{Members: d.Members, Friends: d.Friends, Visitors: d.Friends, Total: d.Total}
}

// Domain converts back, falling back to Visitors when Friends is absent.
func (d DayCount) Domain() report.DayCount {
	friends := d.Friends
	if friends == 0 {
		friends = d.Visitors
	}
	return report.DayCount{Members: d.Members, Friends: friends, Total: d.Total}
}

// CollectiveReport is the body of GET /api/reports/collective.
type CollectiveReport struct {
	DateRange    DateRange           `json:"date_range"`
	ByDate       map[string]DayCount `json:"by_date"`
	TotalRecords int                 `json:"total_records"`
	TotalPresent int                 `json:"total_present"`
}

// FromCollective converts a collective report.
func FromCollective(c report.Collective) CollectiveReport {
	byDate := make(map[string]DayCount, len(c.ByDate))
	for date, d := range c.ByDate {
		byDate[date] = FromDayCount(d)
	}
	return CollectiveReport{
		DateRange:    FromPeriod(c.Period),
		ByDate:       byDate,
		TotalRecords: c.TotalRecords,
		TotalPresent: c.TotalPresent,
	}
}

// Series returns the by-date map as a date-sorted series.
func (c CollectiveReport) Series() []report.Point {
	byDate := make(map[string]report.DayCount, len(c.ByDate))
	for date, d := range c.ByDate {
		byDate[date] = d.Domain()
	}
	return report.Series(byDate)
}

// Statistics is the body of GET /api/reports/statistics.
type Statistics struct {
	DateRange        DateRange `json:"date_range"`
	TotalMembers     int       `json:"total_members"`
	TotalFriends     int       `json:"total_friends"`
	TotalPeople      int       `json:"total_people"`
	MemberAttendance int       `json:"member_attendance"`
	FriendAttendance int       `json:"friend_attendance"`
	TotalAttendance  int       `json:"total_attendance"`
	MemberRate       float64   `json:"member_rate"`
	FriendRate       float64   `json:"friend_rate"`
	OverallRate      float64   `json:"overall_rate"`
	DaysInPeriod     int       `json:"days_in_period"`
	AbsentMembers    []Member  `json:"absent_members"`
}

// FromStatistics converts period statistics.
func FromStatistics(p period.Period, s stats.Statistics) Statistics {
	return Statistics{
		DateRange:        FromPeriod(p),
		TotalMembers:     s.TotalMembers,
		TotalFriends:     s.TotalFriends,
		TotalPeople:      s.TotalPeople,
		MemberAttendance: s.MemberAttendance,
		FriendAttendance: s.FriendAttendance,
		TotalAttendance:  s.TotalAttendance,
		MemberRate:       s.MemberRate,
		FriendRate:       s.FriendRate,
		OverallRate:      s.OverallRate,
		DaysInPeriod:     s.DaysInPeriod,
		AbsentMembers:    FromMembers(s.AbsentMembers),
	}
}

// Visitor is one entry of the visitors-of-the-day report.
type Visitor struct {
	PersonID     string `json:"person_id"`
	Nombre       string `json:"nombre"`
	DeDondeViene string `json:"de_donde_viene"`
	Known        bool   `json:"known"`
}

// VisitorsOfDay is the body of GET /api/reports/visitors-of-day.
type VisitorsOfDay struct {
	Fecha    string    `json:"fecha"`
	Visitors []Visitor `json:"visitors"`
}

// FromVisitors converts visitor entries.
func FromVisitors(date string, entries []report.VisitorEntry) VisitorsOfDay {
	out := VisitorsOfDay{Fecha: date, Visitors: make([]Visitor, 0, len(entries))}
	for _, e := range entries {
		out.Visitors = append(out.Visitors, Visitor{PersonID: e.PersonID, Nombre: e.Name, DeDondeViene: e.Origin, Known: e.Known})
	}
	return out
}

// AbsentMembers is the JSON rendition of the absent-members report.
type AbsentMembers struct {
	DateRange     DateRange `json:"date_range"`
	TotalMembers  int       `json:"total_members"`
	AbsentMembers []Member  `json:"absent_members"`
}

// FromAbsent converts the absent-members report.
func FromAbsent(a report.Absent) AbsentMembers {
	return AbsentMembers{DateRange: FromPeriod(a.Period), TotalMembers: a.TotalMembers, AbsentMembers: FromMembers(a.Members)}
}

// SendAbsentReportInput is the body of POST /api/reports/absent-members/send.
type SendAbsentReportInput struct {
	Start string   `json:"start" validate:"required,fecha"`
	End   string   `json:"end" validate:"required,fecha"`
	To    []string `json:"to" validate:"required,min=1,dive,email"`
}

// SendAbsentReportResult acknowledges a delivered report.
type SendAbsentReportResult struct {
	MessageID string `json:"message_id"`
	Absent    int    `json:"absent"`
}
