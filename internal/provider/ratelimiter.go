package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces API calls out to at most burst calls per interval.
// MetalPriceAPI's free tier throttles aggressively, so the client takes a
// token before every request.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	burst    int
	tokens   int
	last     time.Time

	nowFunc func() time.Time
}

func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		burst:    burst,
		tokens:   burst,
		last:     time.Now(),
		nowFunc:  time.Now,
	}
}

// Wait consumes a token, blocking until one accrues or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.interval):
		}
	}
}

func (r *RateLimiter) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	accrued := int(now.Sub(r.last) / r.interval)
	if accrued > 0 {
		r.tokens += accrued
		if r.tokens > r.burst {
			r.tokens = r.burst
		}
		r.last = r.last.Add(time.Duration(accrued) * r.interval)
	}
	if r.tokens == 0 {
		return false
	}
	r.tokens--
	return true
}
