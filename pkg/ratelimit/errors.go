package ratelimit

import "errors"

var (
	// ErrInvalidLimit is returned when a limiter is created with a
	// non-positive rate.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrInvalidInterval is returned when a limiter is created with a
	// non-positive refill interval.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrKeyRequired is returned when a limiter method is called with
	// an empty key.
	ErrKeyRequired = errors.New("key is required")
)
