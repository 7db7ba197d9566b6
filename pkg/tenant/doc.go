// Package tenant provides the tenant subscription record and multi-tenancy
// plumbing: stores for loading and updating records, flexible tenant
// identification from HTTP requests, and context propagation.
//
// # Architecture
//
// The package is built around three core concepts:
//
// 1. Record - The subscription record with typed enforcement Metadata
// 2. Stores - Load and persist records (in-memory and PostgreSQL)
// 3. Resolvers and Middleware - Extract tenant identity from requests and put the record into context
//
// The Record couples subscription state (status, tier, trial window) with
// the mutable enforcement metadata: add-on features, administratively
// disabled features, read-only and emergency flags. Services never touch a
// raw metadata map; all access goes through the typed Metadata helpers, so
// the JSON shape stays an implementation detail of the stores.
//
// # Usage
//
//	import "github.com/schooldesk/schoolkit/pkg/tenant"
//
//	// Create a resolver (e.g., subdomain-based)
//	resolver := tenant.NewSubdomainResolver(".schooldesk.app")
//
//	// Stores implement the Provider interface used by the middleware
//	store := tenant.NewPostgresStore(pool)
//
//	mw := tenant.Middleware(resolver, store,
//		tenant.WithSkipPaths([]string{"/health", "/metrics"}),
//	)
//
//	// Apply to your router
//	router.Use(mw)
//
//	// Access tenant in handlers
//	func handler(w http.ResponseWriter, r *http.Request) {
//		record, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// Handle no tenant case
//			return
//		}
//		// Use record data
//	}
//
// # Resolver Strategies
//
// The package includes several built-in resolvers:
//
// - SubdomainResolver: Extracts tenant from subdomain (e.g., "acme" from "acme.schooldesk.app")
// - HeaderResolver: Reads tenant from HTTP header (e.g., "X-Tenant-ID")
// - PathResolver: Extracts from URL path segment (e.g., "/tenants/{id}/dashboard")
// - CompositeResolver: Tries multiple strategies in order
//
// Custom resolvers can be created by implementing the Resolver interface.
//
// # Error Handling
//
// The package defines specific errors for common failure scenarios:
//
//   - ErrTenantNotFound: Tenant does not exist
//   - ErrInactiveTenant: Tenant exists but is suspended or cancelled
//   - ErrNoTenantInContext: Required tenant is missing from context
//   - ErrInvalidIdentifier: Malformed tenant identifier
//
// Custom error handlers can be configured to return appropriate HTTP responses.
//
// # Caching
//
// The middleware loads the record on every request. Hot-path entitlement
// decisions are served from plan snapshots cached by the entitlement
// package, keeping this record load the single source of truth for
// middleware decisions.
package tenant
