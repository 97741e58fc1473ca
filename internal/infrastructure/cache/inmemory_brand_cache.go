package cache

import (
	"context"
	"sync"
	"time"

	"github.com/raqueto/backend/internal/domain/brand"
)

// cacheEntry wraps a cached value with expiration time
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *cacheEntry[T]) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryBrandCache keeps the active brand list in process memory.
// It serves single-instance deployments and tests.
type InMemoryBrandCache struct {
	mu    sync.RWMutex
	entry *cacheEntry[[]brand.Brand]
	ttl   time.Duration
	now   func() time.Time
}

// NewInMemoryBrandCache creates an in-memory brand list cache
func NewInMemoryBrandCache(ttl time.Duration) *InMemoryBrandCache {
	return &InMemoryBrandCache{ttl: ttl, now: time.Now}
}

// GetActive returns the cached list unless it has expired
func (c *InMemoryBrandCache) GetActive(_ context.Context) ([]brand.Brand, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil || c.entry.isExpired(c.now()) {
		return nil, false, nil
	}
	out := make([]brand.Brand, len(c.entry.value))
	copy(out, c.entry.value)
	return out, true, nil
}

// SetActive stores a copy of the list
func (c *InMemoryBrandCache) SetActive(_ context.Context, brands []brand.Brand) error {
	stored := make([]brand.Brand, len(brands))
	copy(stored, brands)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &cacheEntry[[]brand.Brand]{value: stored, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Invalidate drops the cached list
func (c *InMemoryBrandCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
	return nil
}

var _ brand.ListCache = (*InMemoryBrandCache)(nil)
