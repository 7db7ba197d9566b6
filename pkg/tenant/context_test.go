package tenant_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/pkg/tenant"
)

func TestWithTenant(t *testing.T) {
	t.Parallel()

	t.Run("adds record to context", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		ctx := tenant.WithTenant(context.Background(), record)

		retrieved, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, record, retrieved)
	})

	t.Run("overwrites existing record in context", func(t *testing.T) {
		t.Parallel()

		first := createTestRecord("acme", tenant.StatusActive)
		second := createTestRecord("globex", tenant.StatusActive)

		ctx := tenant.WithTenant(context.Background(), first)
		ctx = tenant.WithTenant(ctx, second)

		retrieved, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, second, retrieved)
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns nil and false for empty context", func(t *testing.T) {
		t.Parallel()

		retrieved, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, retrieved)
	})
}

func TestIDFromContext(t *testing.T) {
	t.Parallel()

	t.Run("retrieves tenant ID from context", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		ctx := tenant.WithTenant(context.Background(), record)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, record.ID, id)
	})

	t.Run("returns zero UUID and false for empty context", func(t *testing.T) {
		t.Parallel()

		id, ok := tenant.IDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, uuid.UUID{}, id)
	})

	t.Run("returns zero UUID and false for nil record", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), nil)

		id, ok := tenant.IDFromContext(ctx)
		assert.False(t, ok)
		assert.Equal(t, uuid.UUID{}, id)
	})
}

func TestMustFromContext(t *testing.T) {
	t.Parallel()

	t.Run("retrieves record from context", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		ctx := tenant.WithTenant(context.Background(), record)

		retrieved := tenant.MustFromContext(ctx)
		assert.Equal(t, record, retrieved)
	})

	t.Run("panics when no record in context", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "tenant: no tenant in context", func() {
			tenant.MustFromContext(context.Background())
		})
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extractor := tenant.LoggerExtractor()

	t.Run("extracts tenant id attr", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		ctx := tenant.WithTenant(context.Background(), record)

		attr, ok := extractor(ctx)

		require.True(t, ok)
		assert.Equal(t, "tenant_id", attr.Key)
		assert.Equal(t, slog.KindString, attr.Value.Kind())
		assert.Equal(t, record.ID.String(), attr.Value.String())
	})

	t.Run("no tenant means no attr", func(t *testing.T) {
		t.Parallel()

		_, ok := extractor(context.Background())

		assert.False(t, ok)
	})
}
