package reputation

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a verdict stays served from memory.
const DefaultTTL = 600 * time.Second

type entry struct {
	checkedAt time.Time
	banned    bool
}

// Cache serves ban-status lookups, refreshing through the underlying Checker
// once an entry's TTL has elapsed. Expired entries are evicted lazily at the
// next access; nothing sweeps the map proactively. Concurrent lookups for the
// same user may both miss and both refresh, which is accepted over per-key
// locking.
type Cache struct {
	checker Checker
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

func NewCache(checker Checker) *Cache {
	return &Cache{
		checker: checker,
		ttl:     DefaultTTL,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Lookup returns the cached verdict and its age, or a fresh verdict with age
// zero. A failed refresh returns the error as-is; no stale verdict is served.
func (c *Cache) Lookup(ctx context.Context, userID string) (time.Duration, bool, error) {
	c.mu.Lock()
	if e, ok := c.entries[userID]; ok {
		age := c.now().Sub(e.checkedAt)
		if age <= c.ttl {
			c.mu.Unlock()
			return age, e.banned, nil
		}
		delete(c.entries, userID)
	}
	c.mu.Unlock()

	banned, err := c.checker.Check(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	c.mu.Lock()
	c.entries[userID] = entry{checkedAt: c.now(), banned: banned}
	c.mu.Unlock()
	return 0, banned, nil
}
