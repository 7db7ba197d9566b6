// Package entitlement decides whether a tenant may use a feature right now.
//
// It flattens the tenant's plan tier, purchased add-ons, administratively
// disabled features, and suspension state into a single snapshot and answers
// feature checks against it. Snapshots are cached with a short TTL so the
// hot path stays off the tenant store.
//
// # Architecture
//
// The package is built around three pieces:
//
// 1. Snapshots - TenantPlanInfo, the flattened plan state for one tenant
// 2. Service - resolves snapshots and evaluates feature checks against them
// 3. SnapshotCache - pluggable cache (in-memory LRU by default, Redis for multi-instance deployments)
//
// Resolution order for a check: suspension denies everything, an
// administratively disabled feature is denied next, and only then is the
// effective feature set consulted. A feature missing from the plan produces
// a denial carrying the cheapest tier that would include it.
//
// # Usage
//
//	import "github.com/schooldesk/schoolkit/pkg/entitlement"
//
//	svc, err := entitlement.NewService(ctx, tenantStore, nil,
//		entitlement.WithCacheTTL(5*time.Minute),
//	)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	result := svc.CheckFeature(ctx, tenantID, catalog.FeatureAIGrading)
//	if !result.Available {
//		// result.Code, result.Reason, result.UpgradeTier describe the denial
//	}
//
//	// Gate routes on a feature
//	router.Use(entitlement.RequireFeature(svc, catalog.FeatureAPIAccess))
//
// # Failure Policy
//
// The service fails closed. If the tenant store is unreachable, checks are
// evaluated against an empty free-tier snapshot that grants nothing, the
// degradation is logged, and nothing is cached so recovery is immediate
// once the store returns. Resolve, in contrast, reports errors to the
// caller; it exists for code that needs to distinguish "denied" from
// "unknown".
//
// # Caching
//
// Snapshots are cached for DefaultCacheTTL (five minutes). Any mutation of
// a tenant record must call Invalidate afterwards so the next check
// observes the change; until then checks may serve the previous state.
// NewRedisCache shares one cache across instances, which makes an
// invalidation on one node visible everywhere.
package entitlement
