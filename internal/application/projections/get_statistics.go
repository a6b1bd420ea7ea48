package projections

import (
	"context"

	"diaconisas/internal/adapters/storage/attendance"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/report"
	"diaconisas/internal/domain/stats"
)

// GetPeriodStatisticsQuery carries query parameters.
type GetPeriodStatisticsQuery struct {
	Start string
	End   string
}

// GetPeriodStatisticsDeps holds dependencies for GetPeriodStatistics.
type GetPeriodStatisticsDeps struct {
	MemberStore     MemberStore
	FriendStore     FriendStore
	AttendanceStore AttendanceStore
}

// QueryGetPeriodStatistics computes attendance statistics over a closed date interval.
// PRE: Start <= End
// POST: One roster snapshot and one range query feed the computation
func QueryGetPeriodStatistics(ctx context.Context, query GetPeriodStatisticsQuery, deps GetPeriodStatisticsDeps) (stats.Statistics, error) {
	p, err := period.New(query.Start, query.End)
	if err != nil {
		return stats.Statistics{}, err
	}
	return periodStatistics(ctx, p, deps)
}

func periodStatistics(ctx context.Context, p period.Period, deps GetPeriodStatisticsDeps) (stats.Statistics, error) {
	roster, err := loadRoster(ctx, deps.MemberStore, deps.FriendStore)
	if err != nil {
		return stats.Statistics{}, err
	}
	records, err := rangeRecords(ctx, deps.AttendanceStore, p, attendance.Filter{PresentOnly: true})
	if err != nil {
		return stats.Statistics{}, err
	}
	return stats.Compute(roster, records, p), nil
}

// GetAbsentMembersQuery carries query parameters.
type GetAbsentMembersQuery struct {
	Start string
	End   string
}

// QueryGetAbsentMembers lists the members with no present record in a period.
// PRE: Start <= End
// POST: Members keep roster order
func QueryGetAbsentMembers(ctx context.Context, query GetAbsentMembersQuery, deps GetPeriodStatisticsDeps) (report.Absent, error) {
	p, err := period.New(query.Start, query.End)
	if err != nil {
		return report.Absent{}, err
	}
	s, err := periodStatistics(ctx, p, deps)
	if err != nil {
		return report.Absent{}, err
	}
	return report.Absent{Period: p, Members: s.AbsentMembers, TotalMembers: s.TotalMembers}, nil
}
