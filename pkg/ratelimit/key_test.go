package ratelimit_test

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/pkg/ratelimit"
)

func TestByHeader(t *testing.T) {
	t.Parallel()

	keyFunc := ratelimit.ByHeader("X-Actor-ID")

	t.Run("returns the header value", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Actor-ID", "a7f3c2d1")

		assert.Equal(t, "a7f3c2d1", keyFunc(req))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Actor-ID", "  a7f3c2d1  ")

		assert.Equal(t, "a7f3c2d1", keyFunc(req))
	})

	t.Run("missing header yields an empty key", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Empty(t, keyFunc(req))
	})
}

func TestByRemoteAddr(t *testing.T) {
	t.Parallel()

	keyFunc := ratelimit.ByRemoteAddr()

	tests := []struct {
		name       string
		remoteAddr string
		expected   string
	}{
		{
			name:       "strips the port",
			remoteAddr: "203.0.113.7:49152",
			expected:   "203.0.113.7",
		},
		{
			name:       "bare address passes through",
			remoteAddr: "203.0.113.7",
			expected:   "203.0.113.7",
		},
		{
			name:       "ipv6 with port",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr

			assert.Equal(t, tt.expected, keyFunc(req))
		})
	}
}

func TestComposite(t *testing.T) {
	t.Parallel()

	actor := ratelimit.ByHeader("X-Actor-ID")
	addr := ratelimit.ByRemoteAddr()

	t.Run("single short key passes through unchanged", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Actor-ID", "a7f3c2d1")

		keyFunc := ratelimit.Composite(actor)
		assert.Equal(t, "a7f3c2d1", keyFunc(req))
	})

	t.Run("multiple keys are joined", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Actor-ID", "a7f3c2d1")
		req.RemoteAddr = "203.0.113.7:49152"

		keyFunc := ratelimit.Composite(actor, addr)
		assert.Equal(t, "a7f3c2d1:203.0.113.7", keyFunc(req))
	})

	t.Run("empty extractors are skipped", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:49152"

		keyFunc := ratelimit.Composite(actor, addr)
		assert.Equal(t, "203.0.113.7", keyFunc(req))
	})

	t.Run("all empty yields an empty key", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ""

		keyFunc := ratelimit.Composite(actor, addr)
		assert.Empty(t, keyFunc(req))
	})

	t.Run("long keys are hashed", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Actor-ID", strings.Repeat("a", 100))

		keyFunc := ratelimit.Composite(actor)
		key := keyFunc(req)

		assert.Len(t, key, 32)
		_, err := hex.DecodeString(key)
		require.NoError(t, err)

		// Hashing is deterministic and input sensitive.
		assert.Equal(t, key, keyFunc(req))

		other := httptest.NewRequest(http.MethodGet, "/", nil)
		other.Header.Set("X-Actor-ID", strings.Repeat("b", 100))
		assert.NotEqual(t, key, keyFunc(other))
	})
}
