package tenant

import (
	"net/http"
	"strings"
)

// Middleware creates HTTP middleware that extracts tenant information
// from incoming requests and adds it to the request context.
//
// Records are loaded from the provider on every request; plan and feature
// lookups are cached downstream as entitlement snapshots, so the record
// read stays the single source of truth for middleware decisions.
func Middleware(resolver Resolver, provider Provider, opts ...Option) func(http.Handler) http.Handler {
	// Apply default configuration
	cfg := &config{
		errorHandler:  defaultErrorHandler,
		requireActive: true,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check if we should skip this path
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			identifier, err := resolver.Resolve(r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			// If no identifier found, continue without tenant
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			record, err := provider.GetByIdentifier(r.Context(), identifier)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}

			if cfg.requireActive && !record.IsServing() {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			ctx := WithTenant(r.Context(), record)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant creates middleware that ensures a tenant is present in the context.
// This is useful for protecting routes that require tenant context.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record, ok := FromContext(r.Context())
			if !ok || record == nil {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
