package projections

import (
	"context"
	"errors"
	"time"
	_ "time/tzdata"

	"diaconisas/internal/adapters/storage"
	"diaconisas/internal/adapters/storage/attendance"
	"diaconisas/internal/adapters/storage/friend"
	"diaconisas/internal/adapters/storage/member"
	domainAttendance "diaconisas/internal/domain/attendance"
	domainFriend "diaconisas/internal/domain/friend"
	domainMember "diaconisas/internal/domain/member"
	"diaconisas/internal/domain/period"
)

var errStore = errors.New("store unavailable")

// mockMemberStore implements MemberStore for testing.
type mockMemberStore struct {
	members []domainMember.Member
	err     error
}

// GetByID implements MemberStore.
// POST: returns the member or storage.ErrNotFound
func (m *mockMemberStore) GetByID(_ context.Context, id string) (domainMember.Member, error) {
	for _, mem := range m.members {
		if mem.ID == id {
			return mem, nil
		}
	}
	return domainMember.Member{}, storage.ErrNotFound
}

// List implements MemberStore.
// POST: returns every member, ignoring the filter
func (m *mockMemberStore) List(_ context.Context, _ member.ListFilter) ([]domainMember.Member, error) {
	return m.members, m.err
}

// Count implements MemberStore.
func (m *mockMemberStore) Count(_ context.Context) (int, error) {
	return len(m.members), m.err
}

// mockFriendStore implements FriendStore for testing.
type mockFriendStore struct {
	friends []domainFriend.Friend
}

// GetByID implements FriendStore.
func (m *mockFriendStore) GetByID(_ context.Context, id string) (domainFriend.Friend, error) {
	for _, f := range m.friends {
		if f.ID == id {
			return f, nil
		}
	}
	return domainFriend.Friend{}, storage.ErrNotFound
}

// List implements FriendStore.
func (m *mockFriendStore) List(_ context.Context, _ friend.ListFilter) ([]domainFriend.Friend, error) {
	return m.friends, nil
}

// Count implements FriendStore.
func (m *mockFriendStore) Count(_ context.Context) (int, error) {
	return len(m.friends), nil
}

// mockAttendanceStore implements AttendanceStore, applying filters in memory.
type mockAttendanceStore struct {
	records []domainAttendance.Record
	filters []attendance.Filter
}

// List implements AttendanceStore.
// POST: returns records matching every non-zero filter field, in insertion order
func (m *mockAttendanceStore) List(_ context.Context, f attendance.Filter) ([]domainAttendance.Record, error) {
	m.filters = append(m.filters, f)
	var out []domainAttendance.Record
	for _, r := range m.records {
		if f.Date != "" && r.Date != f.Date {
			continue
		}
		if f.Start != "" && r.Date < f.Start {
			continue
		}
		if f.End != "" && r.Date > f.End {
			continue
		}
		if f.Kind.Valid() && r.Kind != f.Kind {
			continue
		}
		if f.PersonID != "" && r.PersonID != f.PersonID {
			continue
		}
		if f.PresentOnly && !r.Present {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Count implements AttendanceStore.
func (m *mockAttendanceStore) Count(ctx context.Context, f attendance.Filter) (int, error) {
	rs, err := m.List(ctx, f)
	return len(rs), err
}

// testClock is frozen at 2024-03-10 23:30 New York time, already 2024-03-11 in UTC.
func testClock() period.Clock {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return period.FixedClock(time.Date(2024, 3, 11, 3, 30, 0, 0, time.UTC), loc)
}
