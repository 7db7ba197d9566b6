package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

// sweepThreshold is the bucket count past which a refill pass also
// drops idle buckets.
const sweepThreshold = 1024

// TokenBucket is an in-process token bucket limiter. Each key gets a
// bucket of burst capacity that refills continuously at rate tokens
// per interval. Bursts up to capacity pass immediately; sustained
// traffic is held to the average rate.
type TokenBucket struct {
	rate     int
	interval time.Duration
	burst    int

	mu      sync.Mutex
	buckets map[string]*bucketState
	now     func() time.Time
}

type bucketState struct {
	tokens     float64
	lastRefill time.Time
}

// TokenBucketOption configures a TokenBucket.
type TokenBucketOption func(*TokenBucket)

// WithBurst sets the bucket capacity. Values below the refill rate are
// raised to it so a full interval's worth of requests always fits.
func WithBurst(burst int) TokenBucketOption {
	return func(tb *TokenBucket) {
		if burst > 0 {
			tb.burst = burst
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) TokenBucketOption {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// NewTokenBucket creates a limiter that admits rate requests per
// interval per key, with bursts up to the configured capacity.
func NewTokenBucket(rate int, interval time.Duration, opts ...TokenBucketOption) (*TokenBucket, error) {
	if rate <= 0 {
		return nil, ErrInvalidLimit
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	tb := &TokenBucket{
		rate:     rate,
		interval: interval,
		burst:    rate,
		buckets:  make(map[string]*bucketState),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(tb)
	}
	if tb.burst < tb.rate {
		tb.burst = tb.rate
	}
	return tb, nil
}

// Allow checks if a single request is allowed for the given key.
func (tb *TokenBucket) Allow(ctx context.Context, key string) (*Result, error) {
	return tb.AllowN(ctx, key, 1)
}

// AllowN checks if n requests are allowed for the given key, consuming
// n tokens when they are.
func (tb *TokenBucket) AllowN(_ context.Context, key string, n int) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if n <= 0 {
		n = 1
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b := tb.bucket(key, now)

	res := &Result{Limit: tb.burst}
	if b.tokens >= float64(n) {
		b.tokens -= float64(n)
		res.Allowed = true
	}
	res.Remaining = int(b.tokens)
	res.ResetAt = tb.nextTokenAt(b, now)
	return res, nil
}

// Status reports the current state without consuming tokens.
func (tb *TokenBucket) Status(_ context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	b := tb.bucket(key, now)

	return &Result{
		Allowed:   b.tokens >= 1,
		Limit:     tb.burst,
		Remaining: int(b.tokens),
		ResetAt:   tb.nextTokenAt(b, now),
	}, nil
}

// Reset clears the state for the given key, restoring a full burst.
func (tb *TokenBucket) Reset(_ context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}

	tb.mu.Lock()
	delete(tb.buckets, key)
	tb.mu.Unlock()
	return nil
}

// bucket returns the refilled state for key, creating it full. Callers
// hold tb.mu.
func (tb *TokenBucket) bucket(key string, now time.Time) *bucketState {
	b, ok := tb.buckets[key]
	if !ok {
		if len(tb.buckets) >= sweepThreshold {
			tb.sweep(now)
		}
		b = &bucketState{tokens: float64(tb.burst), lastRefill: now}
		tb.buckets[key] = b
		return b
	}

	if elapsed := now.Sub(b.lastRefill); elapsed > 0 {
		b.tokens = math.Min(float64(tb.burst), b.tokens+elapsed.Seconds()*tb.perSecond())
		b.lastRefill = now
	}
	return b
}

// sweep refills every bucket and drops the full ones. A full bucket is
// indistinguishable from an absent one.
func (tb *TokenBucket) sweep(now time.Time) {
	for key, b := range tb.buckets {
		if elapsed := now.Sub(b.lastRefill); elapsed > 0 {
			b.tokens = math.Min(float64(tb.burst), b.tokens+elapsed.Seconds()*tb.perSecond())
			b.lastRefill = now
		}
		if b.tokens >= float64(tb.burst) {
			delete(tb.buckets, key)
		}
	}
}

func (tb *TokenBucket) perSecond() float64 {
	return float64(tb.rate) / tb.interval.Seconds()
}

// nextTokenAt reports when one whole token will be available.
func (tb *TokenBucket) nextTokenAt(b *bucketState, now time.Time) time.Time {
	if b.tokens >= 1 {
		return now
	}
	wait := (1 - b.tokens) / tb.perSecond()
	return now.Add(time.Duration(wait * float64(time.Second)))
}
