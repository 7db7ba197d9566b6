package usage

import (
	"context"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// Tracker maintains per-tenant usage counters against the tier limits of
// the plan catalog. The tier is supplied by the caller on every call, from
// the tenant's resolved plan snapshot, so the tracker itself never touches
// the tenant store.
//
// Errors cover invalid input only (negative amounts); a hard-limit block
// or a soft-limit overage is an ordinary result value the caller must
// inspect, never an error.
type Tracker interface {
	// CheckUsage reports whether recording amount more units would be
	// allowed, without mutating the counter. An amount of 0 is a valid
	// status poll.
	CheckUsage(ctx context.Context, tenantID uuid.UUID, typ catalog.UsageType, tier catalog.Tier, amount int64) (UsageCheckResult, error)

	// RecordUsage increments the counter by amount and returns the
	// post-mutation status. Hard limits that would be exceeded block the
	// recording and leave the counter untouched; soft limits record the
	// full amount and report the overage. Billing signals are emitted for
	// positive amounts that reach or exceed a limit.
	RecordUsage(ctx context.Context, tenantID uuid.UUID, typ catalog.UsageType, tier catalog.Tier, amount int64) (UsageCheckResult, error)

	// GetUsage returns the current status for one usage type. Equivalent
	// to a zero-amount CheckUsage.
	GetUsage(ctx context.Context, tenantID uuid.UUID, typ catalog.UsageType, tier catalog.Tier) (UsageCheckResult, error)

	// AllUsage returns the status of every usage type configured for the
	// tier, plus any leftover records from a previous tier.
	AllUsage(ctx context.Context, tenantID uuid.UUID, tier catalog.Tier) (map[catalog.UsageType]UsageCheckResult, error)

	// ResetUsage deletes the tenant's counters for the given types, or all
	// of them when none are named. The next access starts a fresh period.
	ResetUsage(ctx context.Context, tenantID uuid.UUID, types ...catalog.UsageType) error

	// BillingSignals returns queued signals, optionally filtered by
	// tenant. Pair with ClearBillingSignals to drain the queue.
	BillingSignals(tenantIDs ...uuid.UUID) []BillingSignal

	// ClearBillingSignals empties the signal queue.
	ClearBillingSignals()
}
