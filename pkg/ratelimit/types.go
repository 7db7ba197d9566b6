package ratelimit

import (
	"context"
	"time"
)

// Result contains the outcome of a rate limit check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Limit is the maximum burst the limiter permits.
	Limit int

	// Remaining is the number of requests left before throttling.
	Remaining int

	// ResetAt is when the next request will be allowed. For an allowed
	// request it is the current time.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is
// allowed. Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is the interface rate limiting implementations satisfy. The
// context rides along so that an implementation backed by a network
// store can honor cancellation; the in-memory token bucket ignores it.
type Limiter interface {
	// Allow checks if a single request is allowed for the given key and
	// consumes one token when it is.
	Allow(ctx context.Context, key string) (*Result, error)

	// AllowN checks if n requests are allowed for the given key and
	// consumes n tokens when they are.
	AllowN(ctx context.Context, key string, n int) (*Result, error)

	// Status reports the current state without consuming tokens.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset clears the rate limit state for the given key.
	Reset(ctx context.Context, key string) error
}
