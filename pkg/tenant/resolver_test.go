package tenant_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/pkg/tenant"
)

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts subdomain with suffix", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewSubdomainResolver(".schooldesk.app")
		req := httptest.NewRequest("GET", "http://acme.schooldesk.app/dashboard", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("ignores port", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewSubdomainResolver(".schooldesk.app")
		req := httptest.NewRequest("GET", "http://acme.schooldesk.app:8080/", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("bare domain has no tenant", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewSubdomainResolver(".schooldesk.app")
		req := httptest.NewRequest("GET", "http://schooldesk.app/", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("www is skipped", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://www.acme.com/", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("no suffix configured", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewSubdomainResolver("")
		req := httptest.NewRequest("GET", "http://acme.app.com/", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})
}

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	t.Run("reads configured header", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("X-School-ID")
		req := httptest.NewRequest("GET", "http://example.com/", nil)
		req.Header.Set("X-School-ID", "acme")

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("defaults to X-Tenant-ID", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("")
		req := httptest.NewRequest("GET", "http://example.com/", nil)
		req.Header.Set("X-Tenant-ID", "acme")

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("missing header yields empty", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewHeaderResolver("X-Tenant-ID")
		req := httptest.NewRequest("GET", "http://example.com/", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestPathResolver(t *testing.T) {
	t.Parallel()

	t.Run("extracts path segment", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewPathResolver(2)
		req := httptest.NewRequest("GET", "http://example.com/tenants/acme/dashboard", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("position beyond path yields empty", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewPathResolver(5)
		req := httptest.NewRequest("GET", "http://example.com/tenants/acme", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("invalid position errors", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewPathResolver(0)
		req := httptest.NewRequest("GET", "http://example.com/tenants/acme", nil)

		_, err := resolver.Resolve(req)

		assert.Error(t, err)
	})

	t.Run("root path yields empty", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewPathResolver(1)
		req := httptest.NewRequest("GET", "http://example.com/", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	t.Run("first non-empty result wins", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewCompositeResolver(
			tenant.NewSubdomainResolver(".schooldesk.app"),
			tenant.NewHeaderResolver("X-Tenant-ID"),
		)
		req := httptest.NewRequest("GET", "http://example.com/", nil)
		req.Header.Set("X-Tenant-ID", "from-header")

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "from-header", id)
	})

	t.Run("earlier resolver takes precedence", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewCompositeResolver(
			tenant.NewSubdomainResolver(".schooldesk.app"),
			tenant.NewHeaderResolver("X-Tenant-ID"),
		)
		req := httptest.NewRequest("GET", "http://acme.schooldesk.app/", nil)
		req.Header.Set("X-Tenant-ID", "from-header")

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("resolver errors are joined", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := tenant.ResolverFunc(func(r *http.Request) (string, error) {
			return "", boom
		})
		resolver := tenant.NewCompositeResolver(failing, tenant.NewHeaderResolver("X-Tenant-ID"))
		req := httptest.NewRequest("GET", "http://example.com/", nil)

		_, err := resolver.Resolve(req)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("all empty yields empty", func(t *testing.T) {
		t.Parallel()

		resolver := tenant.NewCompositeResolver(
			tenant.NewHeaderResolver("X-Tenant-ID"),
			tenant.NewPathResolver(3),
		)
		req := httptest.NewRequest("GET", "http://example.com/", nil)

		id, err := resolver.Resolve(req)

		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestResolverFunc(t *testing.T) {
	t.Parallel()

	resolver := tenant.ResolverFunc(func(r *http.Request) (string, error) {
		return "fixed", nil
	})
	req := httptest.NewRequest("GET", "http://example.com/", nil)

	id, err := resolver.Resolve(req)

	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}
