package ratelimit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/pkg/ratelimit"
)

func TestNewTokenBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rate        int
		interval    time.Duration
		expectError error
	}{
		{
			name:        "zero rate",
			rate:        0,
			interval:    time.Second,
			expectError: ratelimit.ErrInvalidLimit,
		},
		{
			name:        "negative rate",
			rate:        -5,
			interval:    time.Second,
			expectError: ratelimit.ErrInvalidLimit,
		},
		{
			name:        "zero interval",
			rate:        10,
			interval:    0,
			expectError: ratelimit.ErrInvalidInterval,
		},
		{
			name:     "valid configuration",
			rate:     10,
			interval: time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tb, err := ratelimit.NewTokenBucket(tt.rate, tt.interval)
			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, tb)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tb)
		})
	}
}

func TestTokenBucket_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty key is rejected", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(5, time.Second)
		require.NoError(t, err)

		result, err := tb.Allow(ctx, "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
		assert.Nil(t, result)
	})

	t.Run("burst passes then requests are denied", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		tb, err := ratelimit.NewTokenBucket(3, time.Second,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		for i := 3; i > 0; i-- {
			result, err := tb.Allow(ctx, "tenant-springfield")
			require.NoError(t, err)
			assert.True(t, result.Allowed)
			assert.Equal(t, 3, result.Limit)
			assert.Equal(t, i-1, result.Remaining)
		}

		result, err := tb.Allow(ctx, "tenant-springfield")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.True(t, result.ResetAt.After(now))
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		tb, err := ratelimit.NewTokenBucket(2, time.Second,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		for range 2 {
			result, err := tb.Allow(ctx, "tenant-shelbyville")
			require.NoError(t, err)
			require.True(t, result.Allowed)
		}

		// Half an interval restores one of the two tokens.
		now = now.Add(500 * time.Millisecond)

		result, err := tb.Allow(ctx, "tenant-shelbyville")
		require.NoError(t, err)
		assert.True(t, result.Allowed)

		result, err = tb.Allow(ctx, "tenant-shelbyville")
		require.NoError(t, err)
		assert.False(t, result.Allowed)

		// A full interval restores the whole burst.
		now = now.Add(time.Second)

		result, err = tb.Allow(ctx, "tenant-shelbyville")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 1, result.Remaining)
	})

	t.Run("keys are limited independently", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		tb, err := ratelimit.NewTokenBucket(1, time.Minute,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		result, err := tb.Allow(ctx, "tenant-springfield")
		require.NoError(t, err)
		require.True(t, result.Allowed)

		result, err = tb.Allow(ctx, "tenant-springfield")
		require.NoError(t, err)
		assert.False(t, result.Allowed)

		result, err = tb.Allow(ctx, "tenant-shelbyville")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})
}

func TestTokenBucket_AllowN(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("consumes n tokens at once", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(5, time.Minute,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		result, err := tb.AllowN(ctx, "bulk-import", 3)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2, result.Remaining)
	})

	t.Run("denies without consuming when n exceeds the balance", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(5, time.Minute,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		result, err := tb.AllowN(ctx, "bulk-import", 10)
		require.NoError(t, err)
		assert.False(t, result.Allowed)

		status, err := tb.Status(ctx, "bulk-import")
		require.NoError(t, err)
		assert.Equal(t, 5, status.Remaining)
	})

	t.Run("non-positive n counts as one", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(5, time.Minute,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		result, err := tb.AllowN(ctx, "bulk-import", 0)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 4, result.Remaining)
	})
}

func TestTokenBucket_Status(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("does not consume tokens", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(4, time.Minute,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		for range 3 {
			status, err := tb.Status(ctx, "tenant-springfield")
			require.NoError(t, err)
			assert.True(t, status.Allowed)
			assert.Equal(t, 4, status.Remaining)
		}
	})

	t.Run("reflects prior consumption", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(4, time.Minute,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = tb.AllowN(ctx, "tenant-springfield", 4)
		require.NoError(t, err)

		status, err := tb.Status(ctx, "tenant-springfield")
		require.NoError(t, err)
		assert.False(t, status.Allowed)
		assert.Equal(t, 0, status.Remaining)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(4, time.Minute)
		require.NoError(t, err)

		_, err = tb.Status(ctx, "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
	})
}

func TestTokenBucket_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("restores a full burst", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(2, time.Hour,
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		_, err = tb.AllowN(ctx, "tenant-springfield", 2)
		require.NoError(t, err)

		result, err := tb.Allow(ctx, "tenant-springfield")
		require.NoError(t, err)
		require.False(t, result.Allowed)

		require.NoError(t, tb.Reset(ctx, "tenant-springfield"))

		result, err = tb.Allow(ctx, "tenant-springfield")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 1, result.Remaining)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(2, time.Hour)
		require.NoError(t, err)

		assert.ErrorIs(t, tb.Reset(ctx, ""), ratelimit.ErrKeyRequired)
	})
}

func TestTokenBucket_WithBurst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("burst above rate allows a larger spike", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(1, time.Second,
			ratelimit.WithBurst(5),
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		for range 5 {
			result, err := tb.Allow(ctx, "tenant-springfield")
			require.NoError(t, err)
			assert.True(t, result.Allowed)
			assert.Equal(t, 5, result.Limit)
		}

		result, err := tb.Allow(ctx, "tenant-springfield")
		require.NoError(t, err)
		assert.False(t, result.Allowed)
	})

	t.Run("burst below rate is raised to the rate", func(t *testing.T) {
		t.Parallel()

		tb, err := ratelimit.NewTokenBucket(10, time.Second,
			ratelimit.WithBurst(2),
			ratelimit.WithClock(func() time.Time { return now }))
		require.NoError(t, err)

		status, err := tb.Status(ctx, "tenant-springfield")
		require.NoError(t, err)
		assert.Equal(t, 10, status.Limit)
		assert.Equal(t, 10, status.Remaining)
	})
}

func TestTokenBucket_RetryAfter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tb, err := ratelimit.NewTokenBucket(1, time.Hour)
	require.NoError(t, err)

	result, err := tb.Allow(ctx, "tenant-springfield")
	require.NoError(t, err)
	assert.Zero(t, result.RetryAfter())

	result, err = tb.Allow(ctx, "tenant-springfield")
	require.NoError(t, err)
	require.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter(), time.Duration(0))
	assert.LessOrEqual(t, result.RetryAfter(), time.Hour)
}

func TestTokenBucket_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tb, err := ratelimit.NewTokenBucket(100, time.Hour)
	require.NoError(t, err)

	const (
		goroutines = 20
		perWorker  = 10
	)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				result, err := tb.Allow(ctx, "shared")
				if err != nil {
					return
				}
				if result.Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	// 200 attempts against a burst of 100 with a one hour refill.
	assert.Equal(t, 100, allowed)
}
