// Package usage meters per-tenant consumption against the tier limits of
// the plan catalog. It enforces soft and hard quotas, rolls counters over
// at period boundaries, and queues billing signals for overages.
//
// Key concepts:
//
//   - UsageRecord: Per-tenant, per-type counter for the current period
//   - Soft limit: Exceeding it is allowed and billed as overage
//   - Hard limit: Exceeding it blocks the operation outright
//   - BillingSignal: Queued event drained by an external billing consumer
//
// Rollover happens on access, not on a schedule: whenever a record is
// touched after its reset period elapsed, the counter is zeroed and the
// period start advances (first of the month for monthly, midnight UTC for
// daily). A stale record is indistinguishable from a fresh one.
//
// Basic usage:
//
//	tracker := usage.NewMemoryTracker(catalog.Default())
//
//	// Gate a metered operation
//	status, err := tracker.CheckUsage(ctx, tenantID, catalog.UsageAITokens, tier, 500)
//	if err != nil {
//	    return err
//	}
//	if status.Blocked {
//	    // Surface status.Message and status.Code to the caller
//	    return nil
//	}
//
//	// After the operation's side effects are confirmed
//	status, err = tracker.RecordUsage(ctx, tenantID, catalog.UsageAITokens, tier, 500)
//
//	// Drain billing signals from a periodic job
//	signals := tracker.BillingSignals()
//	tracker.ClearBillingSignals()
//
// Counters and the signal queue are process-local. Instances in a
// multi-node deployment meter independently; reconciliation against an
// authoritative store is the billing consumer's job.
package usage
