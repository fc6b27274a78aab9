// Package ratelimit provides a per-client token-bucket admission gate.
//
// Each distinct client key gets its own bucket, created lazily at full
// capacity on first sight and refilled greedily (permits accrue
// continuously, not in bursts). The check-and-consume step is atomic, so
// concurrent requests sharing a key can never over-consume the budget.
//
// Buckets are never evicted: a client rotating keys sidesteps the limit and
// the map grows with the key space. Both are accepted trade-offs for an
// in-memory gate that resets on restart.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is an injected admission gate keyed by client identity.
type Limiter struct {
	buckets  sync.Map // map[string]*rate.Limiter
	limit    rate.Limit
	capacity int
}

// New returns a Limiter allowing capacity requests per window for each key.
func New(capacity int, window time.Duration) *Limiter {
	if capacity <= 0 {
		capacity = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		limit:    rate.Limit(float64(capacity) / window.Seconds()),
		capacity: capacity,
	}
}

// Allow consumes one permit from key's bucket, reporting whether the
// request is admitted. Rejections consume nothing.
func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	if v, ok := l.buckets.Load(key); ok {
		return v.(*rate.Limiter)
	}
	// LoadOrStore keeps exactly one bucket when two requests race on a
	// fresh key.
	v, _ := l.buckets.LoadOrStore(key, rate.NewLimiter(l.limit, l.capacity))
	return v.(*rate.Limiter)
}
