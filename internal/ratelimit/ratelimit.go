// Package ratelimit throttles keyword call execution.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative limit for no rate limiting.
func New(callsPerSecond float64) *Limiter {
	if callsPerSecond <= 0 {
		// No rate limiting - use a very high limit
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Allow burst of 1 call, meaning we can execute one call immediately
	// but subsequent calls must wait according to the rate limit
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(callsPerSecond), 1),
	}
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow is non-blocking and useful for checking throttling.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0 // Indicate no rate limiting
	}
	return float64(limit)
}
