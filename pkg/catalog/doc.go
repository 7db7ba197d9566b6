// Package catalog defines the static plan tables of the platform: which
// features each subscription tier includes and how each metered resource
// is limited per tier.
//
// The catalog is configuration data, not tenant state. It is loaded once
// through a Source (built-in defaults, an in-memory definition, or a YAML
// file) and is immutable afterwards, so lookups need no synchronization.
//
// Key concepts:
//
//   - Tier: subscription level (free, starter, professional, enterprise);
//     custom tiers are negotiated per tenant and have no catalog entry
//   - FeatureCode: a gated capability such as ai_grading or bulk_import
//   - UsageLimit: metering policy for one resource within a tier, with a
//     soft or hard kind, a reset period, an overage rate and a warning
//     threshold (default 0.8)
//   - Category: a named feature group used for bulk operations
//
// Basic usage:
//
//	cat := catalog.Default()
//
//	if cat.HasFeature(catalog.TierStarter, catalog.FeatureBulkImport) {
//	    // tier includes the feature
//	}
//
//	if tier, ok := cat.MinimumTierFor(catalog.FeatureAIGrading); ok {
//	    // suggest upgrading to tier
//	}
//
//	limit, ok := cat.Limit(catalog.TierFree, catalog.UsageStudents)
//	if !ok {
//	    // no limit configured: resource is unlimited for this tier
//	}
//
// Loading from a file instead:
//
//	src := catalog.NewYAMLSource("/etc/schooldesk/plans.yaml")
//	cat, err := src.Load(ctx)
package catalog
