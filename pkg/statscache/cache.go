// Package statscache keeps recently computed progress stats per user
// and word set. It is the only process-local cache in the service and
// is invalidated exclusively through review.CacheInvalidator.
package statscache

import (
	"sync"
	"time"

	"github.com/vocab-tools/tg-vocab-review/pkg/review"
)

const DefaultTTL = 5 * time.Minute

type entry struct {
	stats    *review.Stats
	storedAt time.Time
}

type Cache struct {
	mu      sync.Mutex
	entries map[int64]map[uint]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ review.CacheInvalidator = (*Cache)(nil)

func New(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[int64]map[uint]entry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *Cache) Get(userID int64, setID uint) (*review.Stats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sets, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	e, ok := sets[setID]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(sets, setID)
		return nil, false
	}
	return e.stats, true
}

func (c *Cache) Put(userID int64, setID uint, stats *review.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sets, ok := c.entries[userID]
	if !ok {
		sets = make(map[uint]entry)
		c.entries[userID] = sets
	}
	sets[setID] = entry{stats: stats, storedAt: c.now()}
}

// Invalidate implements review.CacheInvalidator. The user-global
// sentinel drops every entry for the user; a concrete set id drops that
// entry plus the user-global one, which aggregates it.
func (c *Cache) Invalidate(userID int64, setID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if setID == review.UserScope {
		delete(c.entries, userID)
		return nil
	}
	if sets, ok := c.entries[userID]; ok {
		delete(sets, setID)
		delete(sets, review.UserScope)
	}
	return nil
}
