// Package reconcile merges a roster with one day's attendance records and
// persists the marks a user explicitly changed.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/friend"
	"diaconisas/internal/domain/member"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

// Domain errors
var (
	ErrNotOnRoster = errors.New("person is not on the roster")
	ErrNoDay       = errors.New("no day loaded")
)

// RosterSource lists everyone who can attend.
type RosterSource interface {
	ListMembers(ctx context.Context) ([]member.Member, error)
	ListFriends(ctx context.Context) ([]friend.Friend, error)
}

// AttendanceAPI reads and writes attendance records.
type AttendanceAPI interface {
	AttendanceByDate(ctx context.Context, date string) ([]attendance.Record, error)
	AttendanceToday(ctx context.Context) ([]attendance.Record, error)
	RecordAttendance(ctx context.Context, r attendance.Record) (attendance.Record, error)
}

// Entry is one roster person on the loaded day.
type Entry struct {
	Key     person.Key
	Name    string
	Origin  string // friends only
	Mark    attendance.Mark
	Touched bool
}

// Day is the reconciled state of one date.
type Day struct {
	Date    string
	Entries []Entry // members first, then friends, in roster order
	marks   map[person.Key]attendance.Mark
}

// Marked returns the keys carrying a record on this date, including people no longer on the roster.
func (d Day) Marked() map[person.Key]attendance.Mark {
	out := make(map[person.Key]attendance.Mark, len(d.marks))
	for k, m := range d.marks {
		out[k] = m
	}
	return out
}

// Entry returns the roster entry for key.
func (d Day) Entry(key person.Key) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

func (d Day) clone() Day {
	c := Day{Date: d.Date, Entries: make([]Entry, len(d.Entries)), marks: d.Marked()}
	copy(c.Entries, d.Entries)
	return c
}

// Reconciler holds the working state of one attendance sheet.
// It is safe for concurrent use.
type Reconciler struct {
	roster RosterSource
	api    AttendanceAPI
	writer *BatchWriter

	mu    sync.Mutex
	day   Day
	index map[person.Key]int
}

// New returns a Reconciler. A nil writer means sequential writes with DefaultWriteDelay.
func New(roster RosterSource, api AttendanceAPI, writer *BatchWriter) *Reconciler {
	if writer == nil {
		writer = NewBatchWriter(1, DefaultWriteDelay)
	}
	return &Reconciler{roster: roster, api: api, writer: writer}
}

// LoadDay fetches the roster and the records of date and rebuilds the sheet.
// PRE: date is YYYY-MM-DD
// POST: An entry is marked exactly when a record exists for it on date; nothing is touched.
// On a fetch failure the sheet is reset to an empty day and the error is returned.
func (r *Reconciler) LoadDay(ctx context.Context, date string) (Day, error) {
	if _, err := period.ParseDate(date); err != nil {
		return Day{}, err
	}

	day, err := r.fetchDay(ctx, date)
	if err != nil {
		slog.Warn("reconcile_event", "event", "load_failed", "fecha", date, "error", err)
		day = Day{Date: date, Entries: []Entry{}, marks: map[person.Key]attendance.Mark{}}
	}

	index := make(map[person.Key]int, len(day.Entries))
	for i, e := range day.Entries {
		index[e.Key] = i
	}

	r.mu.Lock()
	r.day = day
	r.index = index
	out := day.clone()
	r.mu.Unlock()
	return out, err
}

func (r *Reconciler) fetchDay(ctx context.Context, date string) (Day, error) {
	members, err := r.roster.ListMembers(ctx)
	if err != nil {
		return Day{}, fmt.Errorf("load members: %w", err)
	}
	friends, err := r.roster.ListFriends(ctx)
	if err != nil {
		return Day{}, fmt.Errorf("load friends: %w", err)
	}
	records, err := r.api.AttendanceByDate(ctx, date)
	if err != nil {
		return Day{}, fmt.Errorf("load attendance: %w", err)
	}

	marks := make(map[person.Key]attendance.Mark, len(records))
	for _, rec := range records {
		if rec.Date != date || !rec.Kind.Valid() {
			continue
		}
		marks[rec.Key()] = rec.Mark()
	}

	entries := make([]Entry, 0, len(members)+len(friends))
	for _, m := range members {
		key := person.NewKey(person.Member, m.ID)
		entries = append(entries, Entry{Key: key, Name: m.FullName(), Mark: marks[key]})
	}
	for _, f := range friends {
		key := person.NewKey(person.Friend, f.ID)
		entries = append(entries, Entry{Key: key, Name: strings.TrimSpace(f.Nombre), Origin: f.Origin(), Mark: marks[key]})
	}
	return Day{Date: date, Entries: entries, marks: marks}, nil
}

// Day returns a copy of the current sheet.
func (r *Reconciler) Day() Day {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.day.clone()
}

// Toggle sets an entry's mark and flags it for the next commit. No network call is made.
// PRE: a day is loaded; kind is Member or Friend
// POST: the entry is Present or Absent and Touched
func (r *Reconciler) Toggle(kind person.Kind, personID string, checked bool) error {
	key := person.NewKey(kind, personID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.day.Date == "" {
		return ErrNoDay
	}
	i, ok := r.index[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOnRoster, key)
	}
	mark := attendance.MarkOf(checked)
	r.day.Entries[i].Mark = mark
	r.day.Entries[i].Touched = true
	r.day.marks[key] = mark
	return nil
}

// Failure is one write that did not go through.
type Failure struct {
	Key  person.Key
	Name string
	Err  error
}

// CommitSummary reports the outcome of a commit.
type CommitSummary struct {
	Date      string
	Attempted int
	Saved     int
	Failures  []Failure
}

// String renders "N of M saved".
func (s CommitSummary) String() string {
	return fmt.Sprintf("%d of %d saved", s.Saved, s.Attempted)
}

// OK reports whether every attempted write succeeded.
func (s CommitSummary) OK() bool {
	return s.Saved == s.Attempted
}

// Commit writes one upsert per touched entry and none for untouched ones.
// Touched entries stay touched, so a second commit resends the same marks.
// PRE: a day is loaded
// POST: Saved + len(Failures) == Attempted; successful writes are never rolled back
func (r *Reconciler) Commit(ctx context.Context) (CommitSummary, error) {
	r.mu.Lock()
	if r.day.Date == "" {
		r.mu.Unlock()
		return CommitSummary{}, ErrNoDay
	}
	date := r.day.Date
	var pending []Entry
	for _, e := range r.day.Entries {
		if e.Touched {
			pending = append(pending, e)
		}
	}
	r.mu.Unlock()

	summary := CommitSummary{Date: date, Attempted: len(pending)}
	errs := r.writer.Run(ctx, len(pending), func(ctx context.Context, i int) error {
		e := pending[i]
		_, err := r.api.RecordAttendance(ctx, attendance.Record{
			Kind:       e.Key.Kind,
			PersonID:   e.Key.PersonID,
			PersonName: e.Name,
			Date:       date,
			Present:    e.Mark == attendance.Present,
		})
		return err
	})
	for i, err := range errs {
		if err != nil {
			summary.Failures = append(summary.Failures, Failure{Key: pending[i].Key, Name: pending[i].Name, Err: err})
			continue
		}
		summary.Saved++
	}

	slog.Info("reconcile_event", "event", "commit", "fecha", date, "saved", summary.Saved, "attempted", summary.Attempted)
	return summary, nil
}

// MarkedSet is the set of people with any record on a date.
type MarkedSet map[person.Key]bool

// Has reports whether the person referenced by a wire label has a record.
// "visitor" and "friend" address the same entry.
func (s MarkedSet) Has(label, personID string) bool {
	kind, err := person.ParseKind(label)
	if err != nil {
		return false
	}
	return s[person.NewKey(kind, personID)]
}

// TodayMarkedSet fetches the keys that already have a record on the server's current date.
func (r *Reconciler) TodayMarkedSet(ctx context.Context) (MarkedSet, error) {
	records, err := r.api.AttendanceToday(ctx)
	if err != nil {
		return MarkedSet{}, err
	}
	set := make(MarkedSet, len(records))
	for _, rec := range records {
		if rec.Kind.Valid() {
			set[rec.Key()] = true
		}
	}
	return set, nil
}
