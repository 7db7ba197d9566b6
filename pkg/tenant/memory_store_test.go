package tenant_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/tenant"
	"github.com/schooldesk/schoolkit/pkg/validator"
)

func TestMemoryStore_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns seeded record", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		store := tenant.NewMemoryStore(record)

		got, err := store.Get(context.Background(), record.ID)

		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, "acme", got.Subdomain)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		store := tenant.NewMemoryStore()

		got, err := store.Get(context.Background(), uuid.New())

		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Nil(t, got)
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		store := tenant.NewMemoryStore(record)

		first, err := store.Get(context.Background(), record.ID)
		require.NoError(t, err)
		first.Metadata.DisableFeature(catalog.FeatureAIOCR)
		first.Status = tenant.StatusSuspended

		second, err := store.Get(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, tenant.StatusActive, second.Status)
		assert.Empty(t, second.Metadata.DisabledFeatures)
	})
}

func TestMemoryStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("persists mutation", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		store := tenant.NewMemoryStore(record)

		loaded, err := store.Get(context.Background(), record.ID)
		require.NoError(t, err)

		loaded.Status = tenant.StatusSuspended
		loaded.Metadata.SuspensionReason = "unpaid invoices"
		require.NoError(t, store.Update(context.Background(), loaded))

		got, err := store.Get(context.Background(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, tenant.StatusSuspended, got.Status)
		assert.Equal(t, "unpaid invoices", got.Metadata.SuspensionReason)
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("unknown tenant", func(t *testing.T) {
		t.Parallel()

		store := tenant.NewMemoryStore()

		err := store.Update(context.Background(), createTestRecord("ghost", tenant.StatusActive))

		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("rejects record that fails validation", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		store := tenant.NewMemoryStore(record)

		broken := record.Clone()
		broken.Name = ""
		err := store.Update(context.Background(), broken)

		assert.ErrorIs(t, err, tenant.ErrInvalidRecord)
		assert.True(t, validator.IsValidationError(err))

		got, getErr := store.Get(context.Background(), record.ID)
		require.NoError(t, getErr)
		assert.Equal(t, record.Name, got.Name)
	})

	t.Run("later mutation of the argument does not leak", func(t *testing.T) {
		t.Parallel()

		record := createTestRecord("acme", tenant.StatusActive)
		store := tenant.NewMemoryStore(record)

		update := record.Clone()
		require.NoError(t, store.Update(context.Background(), update))
		update.Metadata.ReadOnly = true

		got, err := store.Get(context.Background(), record.ID)
		require.NoError(t, err)
		assert.False(t, got.Metadata.ReadOnly)
	})
}

func TestMemoryStore_GetByIdentifier(t *testing.T) {
	t.Parallel()

	record := createTestRecord("acme", tenant.StatusActive)
	store := tenant.NewMemoryStore(record)

	t.Run("by id string", func(t *testing.T) {
		t.Parallel()

		got, err := store.GetByIdentifier(context.Background(), record.ID.String())

		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
	})

	t.Run("by subdomain", func(t *testing.T) {
		t.Parallel()

		got, err := store.GetByIdentifier(context.Background(), "acme")

		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
	})

	t.Run("empty identifier", func(t *testing.T) {
		t.Parallel()

		_, err := store.GetByIdentifier(context.Background(), "")

		assert.ErrorIs(t, err, tenant.ErrInvalidIdentifier)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		t.Parallel()

		_, err := store.GetByIdentifier(context.Background(), "nonexistent")

		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})
}
