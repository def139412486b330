package veil

import (
	"context"
	"sync"
	"time"
)

// Client-side token-bucket rate limiting. The platform throttles per
// account; a bot hammering quote/order endpoints gets its session calls
// rejected. Two buckets are kept: trade (quotes, orders, cancels) and read
// (markets, books, fills, feeds). Buckets refill continuously rather than
// in fixed windows so sustained callers never hit a hard edge.

// TokenBucket blocks callers in Wait until a token is available or the
// context is cancelled. Fractional tokens are allowed internally.
type TokenBucket struct {
	mu     sync.Mutex
	tokens float64
	burst  float64   // maximum burst size
	rate   float64   // tokens refilled per second
	last   time.Time // last refill timestamp
}

// NewTokenBucket creates a full bucket with the given burst and refill rate.
func NewTokenBucket(burst, ratePerSecond float64) *TokenBucket {
	return &TokenBucket{
		tokens: burst,
		burst:  burst,
		rate:   ratePerSecond,
		last:   time.Now(),
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (b *TokenBucket) Wait(ctx context.Context) error {
	for {
		b.mu.Lock()
		now := time.Now()
		b.tokens += now.Sub(b.last).Seconds() * b.rate
		if b.tokens > b.burst {
			b.tokens = b.burst
		}
		b.last = now

		if b.tokens >= 1 {
			b.tokens--
			b.mu.Unlock()
			return nil
		}
		wait := time.Duration((1 - b.tokens) / b.rate * float64(time.Second))
		b.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// RateLimiter groups the per-category buckets used by the client.
type RateLimiter struct {
	Trade *TokenBucket
	Read  *TokenBucket
}

// NewRateLimiter creates buckets sized for the platform's per-account
// limits with headroom to spare.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		Trade: NewTokenBucket(30, 10),
		Read:  NewTokenBucket(90, 30),
	}
}
