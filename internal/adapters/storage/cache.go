package storage

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a cached roster list stays fresh.
const DefaultCacheTTL = 30 * time.Second

// ListCache holds one list result for a fixed TTL.
// It is safe for concurrent use. Writers call Invalidate after every mutation.
type ListCache[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	items    []T
	loadedAt time.Time
	valid    bool
}

// NewListCache creates a cache with the given TTL. A ttl <= 0 disables caching.
func NewListCache[T any](ttl time.Duration) *ListCache[T] {
	return &ListCache[T]{ttl: ttl, now: time.Now}
}

// Get returns the cached list or calls load and caches its result.
// PRE: load is non-nil
// POST: a failed load leaves the cache untouched
// INVARIANT: callers receive a copy and cannot mutate the cached slice
func (c *ListCache[T]) Get(ctx context.Context, load func(ctx context.Context) ([]T, error)) ([]T, error) {
	if c.ttl <= 0 {
		return load(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.loadedAt) < c.ttl {
		return append([]T(nil), c.items...), nil
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.items = items
	c.loadedAt = c.now()
	c.valid = true
	return append([]T(nil), items...), nil
}

// Invalidate drops the cached list.
func (c *ListCache[T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.items = nil
	c.mu.Unlock()
}
