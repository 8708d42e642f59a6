// Package memory is an in-process DecompositionCache with per-entry expiry.
package memory

import (
	"context"
	"sync"
	"time"

	"recipekit/internal/domain"
	"recipekit/internal/port"
)

type entry struct {
	value     domain.RawDecomposition
	expiresAt time.Time
}

// Cache is a map guarded by a RWMutex. Expired entries are dropped lazily on
// read and swept on write.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ port.DecompositionCache = (*Cache)(nil)

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a Cache. A non-positive ttl keeps entries forever.
func New(ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) GetMany(_ context.Context, keys []string) (map[string]domain.RawDecomposition, error) {
	now := c.now()
	out := make(map[string]domain.RawDecomposition, len(keys))
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, k := range keys {
		e, ok := c.entries[k]
		if !ok || c.expired(e, now) {
			continue
		}
		out[k] = e.value
	}
	return out, nil
}

func (c *Cache) SetMany(_ context.Context, entries map[string]domain.RawDecomposition) error {
	now := c.now()
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = now.Add(c.ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
		}
	}
	for k, v := range entries {
		c.entries[k] = entry{value: v, expiresAt: expiresAt}
	}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) expired(e entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}
