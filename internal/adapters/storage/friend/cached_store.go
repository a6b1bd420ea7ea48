package friend

import (
	"context"
	"time"

	"diaconisas/internal/adapters/storage"
	domain "diaconisas/internal/domain/friend"
)

// CachedStore serves the full friend roster from a TTL cache.
type CachedStore struct {
	Store
	cache *storage.ListCache[domain.Friend]
}

// NewCachedStore wraps next with a roster cache of the given TTL.
func NewCachedStore(next Store, ttl time.Duration) *CachedStore {
	return &CachedStore{Store: next, cache: storage.NewListCache[domain.Friend](ttl)}
}

// List returns the cached roster when the filter is empty.
func (s *CachedStore) List(ctx context.Context, filter ListFilter) ([]domain.Friend, error) {
	if !filter.IsZero() {
		return s.Store.List(ctx, filter)
	}
	items, err := s.cache.Get(ctx, func(ctx context.Context) ([]domain.Friend, error) {
		return s.Store.List(ctx, filter)
	})
	if items == nil && err == nil {
		items = []domain.Friend{}
	}
	return items, err
}

// Count is derived from the cached roster.
func (s *CachedStore) Count(ctx context.Context) (int, error) {
	items, err := s.List(ctx, ListFilter{})
	return len(items), err
}

// Save writes through and invalidates the roster.
func (s *CachedStore) Save(ctx context.Context, value domain.Friend) error {
	defer s.cache.Invalidate()
	return s.Store.Save(ctx, value)
}

// Delete writes through and invalidates the roster.
func (s *CachedStore) Delete(ctx context.Context, id string) error {
	defer s.cache.Invalidate()
	return s.Store.Delete(ctx, id)
}
