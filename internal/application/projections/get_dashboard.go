package projections

import (
	"context"

	"diaconisas/internal/adapters/storage/attendance"
	"diaconisas/internal/domain/period"
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct{}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore     MemberStore
	FriendStore     FriendStore
	AttendanceStore AttendanceStore
	Clock           period.Clock
}

// GetDashboardResult carries the headline counts.
type GetDashboardResult struct {
	TotalMembers    int
	TotalFriends    int
	TodayAttendance int
	MonthAttendance int
	Today           string
}

// QueryGetDashboard counts the roster and the present records of today and of the month so far.
// PRE: Clock is configured with the reference timezone
// POST: Attendance counts include present records only
func QueryGetDashboard(ctx context.Context, _ GetDashboardQuery, deps GetDashboardDeps) (GetDashboardResult, error) {
	var result GetDashboardResult
	var err error

	if result.TotalMembers, err = deps.MemberStore.Count(ctx); err != nil {
		return GetDashboardResult{}, err
	}
	if result.TotalFriends, err = deps.FriendStore.Count(ctx); err != nil {
		return GetDashboardResult{}, err
	}

	result.Today = deps.Clock.Today()
	if result.TodayAttendance, err = deps.AttendanceStore.Count(ctx, attendance.Filter{Date: result.Today, PresentOnly: true}); err != nil {
		return GetDashboardResult{}, err
	}

	month := deps.Clock.MonthToDate()
	result.MonthAttendance, err = deps.AttendanceStore.Count(ctx, attendance.Filter{
		Start:       month.StartDate(),
		End:         month.EndDate(),
		PresentOnly: true,
	})
	if err != nil {
		return GetDashboardResult{}, err
	}
	return result, nil
}
