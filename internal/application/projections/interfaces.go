package projections

import (
	"context"

	"diaconisas/internal/adapters/storage/attendance"
	"diaconisas/internal/adapters/storage/friend"
	"diaconisas/internal/adapters/storage/member"
	domainAttendance "diaconisas/internal/domain/attendance"
	domainFriend "diaconisas/internal/domain/friend"
	domainMember "diaconisas/internal/domain/member"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/stats"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (domainMember.Member, error)
	List(ctx context.Context, filter member.ListFilter) ([]domainMember.Member, error)
	Count(ctx context.Context) (int, error)
}

// FriendStore interface for friend queries.
type FriendStore interface {
	GetByID(ctx context.Context, id string) (domainFriend.Friend, error)
	List(ctx context.Context, filter friend.ListFilter) ([]domainFriend.Friend, error)
	Count(ctx context.Context) (int, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	List(ctx context.Context, filter attendance.Filter) ([]domainAttendance.Record, error)
	Count(ctx context.Context, filter attendance.Filter) (int, error)
}

var friendListAll = friend.ListFilter{}

// loadRoster fetches the full member and friend lists.
func loadRoster(ctx context.Context, members MemberStore, friends FriendStore) (stats.Roster, error) {
	m, err := members.List(ctx, member.ListFilter{})
	if err != nil {
		return stats.Roster{}, err
	}
	f, err := friends.List(ctx, friendListAll)
	if err != nil {
		return stats.Roster{}, err
	}
	return stats.Roster{Members: m, Friends: f}, nil
}

// rangeRecords fetches every record in p with a single range query.
func rangeRecords(ctx context.Context, store AttendanceStore, p period.Period, filter attendance.Filter) ([]domainAttendance.Record, error) {
	filter.Start = p.StartDate()
	filter.End = p.EndDate()
	return store.List(ctx, filter)
}
