package binder_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/pkg/binder"
)

type actionPayload struct {
	ActorID string   `json:"actor_id"`
	Reason  string   `json:"reason"`
	Tags    []string `json:"tags,omitempty"`
	Nested  *struct {
		Note string `json:"note"`
	} `json:"nested,omitempty"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	bind := binder.JSON()

	t.Run("binds a valid body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"actor_id":"a1","reason":"non-payment"}`))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		require.NoError(t, bind(r, &req))
		assert.Equal(t, "a1", req.ActorID)
		assert.Equal(t, "non-payment", req.Reason)
	})

	t.Run("accepts content type with charset", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"reason":"ok"}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		var req actionPayload
		require.NoError(t, bind(r, &req))
		assert.Equal(t, "ok", req.Reason)
	})

	t.Run("sanitizes string fields", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"reason":"  unpaid\u0000 invoices  ","tags":[" one ","two\u0000"]}`))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		require.NoError(t, bind(r, &req))
		assert.Equal(t, "unpaid invoices", req.Reason)
		assert.Equal(t, []string{"one", "two"}, req.Tags)
	})

	t.Run("sanitizes nested structs", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"nested":{"note":"  padded  "}}`))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		require.NoError(t, bind(r, &req))
		require.NotNil(t, req.Nested)
		assert.Equal(t, "padded", req.Nested.Note)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))

		var req actionPayload
		assert.ErrorIs(t, bind(r, &req), binder.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "text/plain")

		var req actionPayload
		assert.ErrorIs(t, bind(r, &req), binder.ErrUnsupportedMediaType)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"actor":"a1"}`))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		assert.ErrorIs(t, bind(r, &req), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"reason":"x"}{"reason":"y"}`))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		err := bind(r, &req)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "unexpected data")
	})

	t.Run("rejects empty body", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(""))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		err := bind(r, &req)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "empty body")
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		t.Parallel()

		big := `{"reason":"` + strings.Repeat("x", binder.DefaultMaxJSONSize) + `"}`
		r := httptest.NewRequest("POST", "/", strings.NewReader(big))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		err := bind(r, &req)
		require.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("POST", "/", strings.NewReader(`{"reason":`))
		r.Header.Set("Content-Type", "application/json")

		var req actionPayload
		assert.ErrorIs(t, bind(r, &req), binder.ErrFailedToParseJSON)
	})
}
