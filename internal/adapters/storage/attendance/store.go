package attendance

import (
	"context"

	domain "diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/person"
)

// Store persists attendance records.
// Implementations must treat the legacy "visitor" label as Friend on reads and on upsert matching.
type Store interface {
	Upsert(ctx context.Context, r domain.Record) (domain.Record, error)
	List(ctx context.Context, filter Filter) ([]domain.Record, error)
	Count(ctx context.Context, filter Filter) (int, error)
}

// Filter selects attendance records. Zero-valued fields do not filter.
type Filter struct {
	Date        string      // exact YYYY-MM-DD
	Start       string      // inclusive lower bound
	End         string      // inclusive upper bound
	Kind        person.Kind // KindUnknown selects every kind
	PersonID    string
	PresentOnly bool
	Limit       int
}

// Labels returns every stored tipo value that denotes kind.
func Labels(kind person.Kind) []string {
	switch kind {
	case person.Member:
		return []string{person.LabelMember}
	case person.Friend:
		return []string{person.LabelFriend, person.LabelVisitor}
	}
	return nil
}
