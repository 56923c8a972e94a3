package commentary

import (
	"sync"
	"time"

	"metalcast/internal/domain"
)

// Cooldowns gates the generator categories that must not fire every cycle.
// A category that has never fired is always eligible. MarkFired is called
// only when a category actually produced items, so an eligible category
// with no signal is retried on the very next cycle.
type Cooldowns struct {
	mu        sync.Mutex
	durations map[string]time.Duration
	lastFired map[string]time.Time
}

func NewCooldowns(price, news, status time.Duration) *Cooldowns {
	return &Cooldowns{
		durations: map[string]time.Duration{
			domain.CooldownPriceUpdate:  price,
			domain.CooldownNewsUpdate:   news,
			domain.CooldownMarketStatus: status,
		},
		lastFired: make(map[string]time.Time),
	}
}

// Eligible reports whether the category's cooldown has elapsed at now.
func (c *Cooldowns) Eligible(key string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.lastFired[key]
	if !ok {
		return true
	}
	return now.Sub(last) >= c.durations[key]
}

// MarkFired records the category as fired at now.
func (c *Cooldowns) MarkFired(key string, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFired[key] = now
}

// Snapshot copies the last-fired timestamps for the cycle log. Categories
// that have never fired are absent.
func (c *Cooldowns) Snapshot() map[string]time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]time.Time, len(c.lastFired))
	for key, last := range c.lastFired {
		out[key] = last
	}
	return out
}
