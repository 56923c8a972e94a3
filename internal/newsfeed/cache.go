package newsfeed

import (
	"sync"
	"time"

	"metalcast/internal/domain"
)

// snapshot is an immutable view of one aggregation pass. Replaced wholesale,
// never mutated in place.
type snapshot struct {
	articles  []domain.Article
	fetchedAt time.Time
}

// Cache holds the latest article snapshot behind a TTL. Readers inside the
// window get the cached slice without triggering any fetch.
type Cache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	snap *snapshot
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &Cache{ttl: ttl}
}

// Get returns the cached articles when a snapshot exists and is fresh at
// now. The returned slice is the snapshot's own; callers treat it read-only.
func (c *Cache) Get(now time.Time) ([]domain.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil || now.Sub(c.snap.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.snap.articles, true
}

// Replace atomically installs a new snapshot. An empty article set still
// replaces, so an all-sources-down period does not force a refresh attempt
// on every call inside the TTL window. fetchedAt never regresses.
func (c *Cache) Replace(articles []domain.Article, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil && now.Before(c.snap.fetchedAt) {
		now = c.snap.fetchedAt
	}
	c.snap = &snapshot{articles: articles, fetchedAt: now}
}

// Latest returns the current snapshot regardless of freshness. Read-only
// surfaces prefer stale articles over none.
func (c *Cache) Latest() []domain.Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil
	}
	return c.snap.articles
}

// FetchedAt reports the timestamp of the current snapshot, zero when none.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return time.Time{}
	}
	return c.snap.fetchedAt
}
