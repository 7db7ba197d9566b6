// Package ratelimit provides an in-process token bucket rate limiter
// with HTTP middleware for protecting the administrative API.
//
// Each key owns a bucket of burst capacity that refills continuously at
// a configured rate. A short spike passes immediately, sustained traffic
// is held to the average rate:
//
//	limiter, err := ratelimit.NewTokenBucket(60, time.Minute,
//	    ratelimit.WithBurst(90),
//	)
//
// # Usage
//
// Import the package using its module-qualified path:
//
//	import "github.com/schooldesk/schoolkit/pkg/ratelimit"
//
// The middleware keys each request through a KeyFunc. Composite joins
// the non-empty extractor results into one key, so callers are tracked
// by actor and client address together:
//
//	mux.Use(ratelimit.Middleware(limiter, ratelimit.Composite(
//	    ratelimit.ByHeader("X-Actor-ID"),
//	    ratelimit.ByRemoteAddr(),
//	)))
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset headers. Rejected requests receive 429 with a
// Retry-After hint.
//
// # Failure policy
//
// The middleware fails open. Requests with an empty key and limiter
// errors pass through unthrottled, so a limiter fault slows nothing
// down. State lives in process memory and resets on restart, which is
// acceptable for an administrative surface behind authentication.
package ratelimit
