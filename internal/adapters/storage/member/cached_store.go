package member

import (
	"context"
	"time"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/member"
)

// CachedStore serves the full member roster from a TTL cache.
// Filtered lists and single lookups go straight to the wrapped store.
type CachedStore struct {
	Store
	cache *storage.ListCache[domain.Member]
}

// NewCachedStore wraps next with a roster cache of the given TTL.
func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: next, cache: storage.NewListCache[domain.Member](ttl)}
}

// List returns the cached roster when the filter is empty.
func (s *CachedStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	if !filter.IsZero() {
		return s.Store.List(ctx, filter)
	}
	items, err := s.cache.Get(ctx, func(ctx context.Context) ([]domain.Member, error) {
		return s.Store.List(ctx, filter)
	})
	if items == nil && err == nil {
		items = []domain.Member{}
	}
	return items, err
}

// Count is derived from the cached roster.
func (s *CachedStore) Count(ctx context.Context) (int, error) {
	items, err := s.List(ctx, ListFilter{})
	return len(items), err
}

// Save writes through and invalidates the roster.
func (s *CachedStore) Save(ctx context.Context, value domain.Member) error {
	defer s.cache.Invalidate()
	return s.Store.Save(ctx, value)
}

// Delete writes through and invalidates the roster.
func (s *CachedStore) Delete(ctx context.Context, id string) error {
	defer s.cache.Invalidate()
	return s.Store.Delete(ctx, id)
}
