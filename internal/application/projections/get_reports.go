package projections

import (
	"context"

	"diaconisas/internal/adapters/storage/attendance"
	domainAttendance "diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
	"diaconisas/internal/domain/report"
)

// GetDateRangeReportQuery carries query parameters.
type GetDateRangeReportQuery struct {
	Start string
	End   string
	Kind  person.Kind // KindUnknown selects every kind
}

// GetDateRangeReportDeps holds dependencies for GetDateRangeReport.
type GetDateRangeReportDeps struct {
	AttendanceStore AttendanceStore
}

// QueryGetDateRangeReport builds the detail report of a period.
// PRE: Start <= End, both YYYY-MM-DD
// POST: Returns a validation error before touching storage when the period is invalid
func QueryGetDateRangeReport(ctx context.Context, query GetDateRangeReportQuery, deps GetDateRangeReportDeps) (report.Detail, error) {
	p, err := period.New(query.Start, query.End)
	if err != nil {
		return report.Detail{}, err
	}

	records, err := rangeRecords(ctx, deps.AttendanceStore, p, attendance.Filter{Kind: query.Kind})
	if err != nil {
		return report.Detail{}, err
	}
	return report.NewDetail(records, report.Summarize(records)), nil
}

// GetIndividualReportQuery carries query parameters.
type GetIndividualReportQuery struct {
	Kind     person.Kind
	PersonID string
	Start    string // optional, applied only together with End
	End      string
}

// GetIndividualReportDeps holds dependencies for GetIndividualReport.
type GetIndividualReportDeps struct {
	AttendanceStore AttendanceStore
}

// GetIndividualReportResult is one person's attendance history.
type GetIndividualReportResult struct {
	Kind     person.Kind
	PersonID string
	Records  []domainAttendance.Record
	Summary  report.Summary
}

// QueryGetIndividualReport summarizes the records of one person.
// PRE: Kind is Member or Friend
// POST: The date range is applied only when both Start and End are given
func QueryGetIndividualReport(ctx context.Context, query GetIndividualReportQuery, deps GetIndividualReportDeps) (GetIndividualReportResult, error) {
	if !query.Kind.Valid() {
		return GetIndividualReportResult{}, person.ErrUnknownKind
	}

	filter := attendance.Filter{Kind: query.Kind, PersonID: query.PersonID}
	if query.Start != "" && query.End != "" {
		p, err := period.New(query.Start, query.End)
		if err != nil {
			return GetIndividualReportResult{}, err
		}
		filter.Start = p.StartDate()
		filter.End = p.EndDate()
	}

	records, err := deps.AttendanceStore.List(ctx, filter)
	if err != nil {
		return GetIndividualReportResult{}, err
	}
	return GetIndividualReportResult{
		Kind:     query.Kind,
		PersonID: query.PersonID,
		Records:  records,
		Summary:  report.Summarize(records),
	}, nil
}

// GetCollectiveReportQuery carries query parameters.
type GetCollectiveReportQuery struct {
	Start string
	End   string
}

// GetCollectiveReportDeps holds dependencies for GetCollectiveReport.
type GetCollectiveReportDeps struct {
	AttendanceStore AttendanceStore
}

// QueryGetCollectiveReport groups the present records of a period by date.
// PRE: Start <= End
// POST: ByDate holds every date that has at least one record
func QueryGetCollectiveReport(ctx context.Context, query GetCollectiveReportQuery, deps GetCollectiveReportDeps) (report.Collective, error) {
	p, err := period.New(query.Start, query.End)
	if err != nil {
		return report.Collective{}, err
	}

	records, err := rangeRecords(ctx, deps.AttendanceStore, p, attendance.Filter{})
	if err != nil {
		return report.Collective{}, err
	}
	return report.GroupByDate(records, p), nil
}

// GetVisitorsOfDayQuery carries query parameters.
type GetVisitorsOfDayQuery struct {
	Date string // empty means today per Clock
}

// GetVisitorsOfDayDeps holds dependencies for GetVisitorsOfDay.
type GetVisitorsOfDayDeps struct {
	AttendanceStore AttendanceStore
	FriendStore     FriendStore
	Clock           period.Clock
}

// GetVisitorsOfDayResult lists the friends present on one date.
type GetVisitorsOfDayResult struct {
	Date     string
	Visitors []report.VisitorEntry
}

// QueryGetVisitorsOfDay lists present friends of a day with their origin.
// PRE: Date is empty or YYYY-MM-DD
// POST: Deleted friends keep their recorded name with an unspecified origin
func QueryGetVisitorsOfDay(ctx context.Context, query GetVisitorsOfDayQuery, deps GetVisitorsOfDayDeps) (GetVisitorsOfDayResult, error) {
	date := query.Date
	if date == "" {
		date = deps.Clock.Today()
	}
	if _, err := period.ParseDate(date); err != nil {
		return GetVisitorsOfDayResult{}, err
	}

	records, err := deps.AttendanceStore.List(ctx, attendance.Filter{Date: date, Kind: person.Friend, PresentOnly: true})
	if err != nil {
		return GetVisitorsOfDayResult{}, err
	}
	friends, err := deps.FriendStore.List(ctx, friendListAll)
	if err != nil {
		return GetVisitorsOfDayResult{}, err
	}
	return GetVisitorsOfDayResult{Date: date, Visitors: report.VisitorsOfDay(records, friends, date)}, nil
}
