// Package ratelimit enforces a per-user request budget, grounded on the
// original service's ApiError::RateLimited variant: too many requests from
// one user within a window get a 429, not a queue.
package ratelimit

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Limiter holds one token-bucket rate.Limiter per user, created lazily on
// first use and safe for concurrent handler goroutines.
type Limiter struct {
	ratePerSecond rate.Limit
	burst         int
	buckets       sync.Map // uuid.UUID -> *rate.Limiter
}

// New returns a Limiter allowing ratePerSecond sustained requests per user
// with bursts up to burst.
func New(ratePerSecond float64, burst int) *Limiter {
	return &Limiter{ratePerSecond: rate.Limit(ratePerSecond), burst: burst}
}

// Allow reports whether userID may make a request right now, consuming one
// token from its bucket if so.
func (l *Limiter) Allow(userID uuid.UUID) bool {
	return l.bucketFor(userID).Allow()
}

func (l *Limiter) bucketFor(userID uuid.UUID) *rate.Limiter {
	if existing, ok := l.buckets.Load(userID); ok {
		return existing.(*rate.Limiter)
	}
	fresh := rate.NewLimiter(l.ratePerSecond, l.burst)
	actual, _ := l.buckets.LoadOrStore(userID, fresh)
	return actual.(*rate.Limiter)
}
