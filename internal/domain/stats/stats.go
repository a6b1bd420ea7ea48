package stats

import (
	"math"

	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/friend"
	"diaconisas/internal/domain/member"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

// Statistics is the aggregate attendance picture of a closed period.
// It is derived on every query and never persisted.
type Statistics struct {
	TotalMembers     int
	TotalFriends     int
	TotalPeople      int
	MemberAttendance int
	FriendAttendance int
	TotalAttendance  int
	MemberRate       float64
	FriendRate       float64
	OverallRate      float64
	DaysInPeriod     int
	AbsentMembers    []member.Member
}

// Roster is a snapshot of everyone who could attend.
type Roster struct {
	Members []member.Member
	Friends []friend.Friend
}

// Size returns the combined number of people on the roster.
func (r Roster) Size() int {
	return len(r.Members) + len(r.Friends)
}

// Compute derives period statistics from a roster snapshot and the records of the period.
// Records outside the period are ignored.
// PRE: p was built by period.New, so Start <= End
// POST: Rates are percentages rounded to one decimal, 0 for an empty roster
// INVARIANT: "visitor" and "friend" records are both counted as friend attendance
func Compute(roster Roster, records []attendance.Record, p period.Period) Statistics {
	days := p.Days()

	var memberCount, friendCount int
	presentMembers := make(map[string]bool)
	for _, r := range records {
		if !r.Present || !p.Contains(r.Date) {
			continue
		}
		switch r.Kind {
		case person.Member:
			memberCount++
			presentMembers[r.PersonID] = true
		case person.Friend:
			friendCount++
		}
	}

	return Statistics{
		TotalMembers:     len(roster.Members),
		TotalFriends:     len(roster.Friends),
		TotalPeople:      roster.Size(),
		MemberAttendance: memberCount,
		FriendAttendance: friendCount,
		TotalAttendance:  memberCount + friendCount,
		MemberRate:       Rate(memberCount, len(roster.Members), days),
		FriendRate:       Rate(friendCount, len(roster.Friends), days),
		OverallRate:      Rate(memberCount+friendCount, roster.Size(), days),
		DaysInPeriod:     days,
		AbsentMembers:    absentMembers(roster.Members, presentMembers),
	}
}

// Rate returns count / (rosterSize × days) × 100 rounded to one decimal.
// Returns 0 when rosterSize or days is not positive.
func Rate(count, rosterSize, days int) float64 {
	if rosterSize <= 0 || days <= 0 {
		return 0
	}
	return Round(float64(count)/float64(rosterSize*days)*100, 1)
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// AbsentMembers returns the members with no present member record among records.
// Roster order is preserved.
func AbsentMembers(members []member.Member, records []attendance.Record) []member.Member {
	present := make(map[string]bool)
	for _, r := range records {
		if r.Present && r.Kind == person.Member {
			present[r.PersonID] = true
		}
	}
	return absentMembers(members, present)
}

func absentMembers(members []member.Member, present map[string]bool) []member.Member {
	absent := make([]member.Member, 0)
	for _, m := range members {
		if !present[m.ID] {
			absent = append(absent, m)
		}
	}
	return absent
}
