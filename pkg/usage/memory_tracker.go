package usage

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// DefaultSignalQueueSize bounds the billing signal queue. Signals beyond
// the bound push the oldest ones out.
const DefaultSignalQueueSize = 1000

type recordKey struct {
	tenantID uuid.UUID
	typ      catalog.UsageType
}

// memoryTracker keeps all counters and the signal queue in process memory.
// A single mutex serializes record access, so concurrent recordings for
// the same tenant and type never lose increments.
type memoryTracker struct {
	plans *catalog.Catalog

	mu      sync.Mutex
	records map[recordKey]*UsageRecord

	sigMu      sync.Mutex
	signals    []BillingSignal
	maxSignals int
	dropped    uint64

	now    func() time.Time
	logger *slog.Logger
}

// Option configures the tracker during construction.
type Option func(*memoryTracker)

// WithSignalQueueSize overrides the billing signal queue bound.
func WithSignalQueueSize(size int) Option {
	return func(t *memoryTracker) {
		if size > 0 {
			t.maxSignals = size
		}
	}
}

// WithLogger configures the logger used for queue overflow warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *memoryTracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithClock replaces the tracker's clock. Tests use it to cross period
// boundaries without waiting for one.
func WithClock(now func() time.Time) Option {
	return func(t *memoryTracker) {
		if now != nil {
			t.now = now
		}
	}
}

// NewMemoryTracker creates an in-process usage tracker over the given plan
// catalog. A nil catalog falls back to the built-in default. Counters and
// signals are process-local; instances in a multi-node deployment count
// independently.
func NewMemoryTracker(plans *catalog.Catalog, opts ...Option) Tracker {
	t := &memoryTracker{
		plans:      plans,
		records:    make(map[recordKey]*UsageRecord),
		maxSignals: DefaultSignalQueueSize,
		now:        time.Now,
		logger:     slog.Default(),
	}

	if t.plans == nil {
		t.plans = catalog.Default()
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *memoryTracker) CheckUsage(ctx context.Context, tenantID uuid.UUID, typ catalog.UsageType, tier catalog.Tier, amount int64) (UsageCheckResult, error) {
	if amount < 0 {
		return UsageCheckResult{}, ErrInvalidAmount
	}

	limit, configured := t.plans.Limit(tier, typ)

	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.fetch(tenantID, typ, limit.Reset)
	return t.evaluate(rec, limit, configured, amount), nil
}

func (t *memoryTracker) RecordUsage(ctx context.Context, tenantID uuid.UUID, typ catalog.UsageType, tier catalog.Tier, amount int64) (UsageCheckResult, error) {
	if amount < 0 {
		return UsageCheckResult{}, ErrInvalidAmount
	}

	limit, configured := t.plans.Limit(tier, typ)

	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.fetch(tenantID, typ, limit.Reset)
	result := t.evaluate(rec, limit, configured, amount)

	// Hard blocks leave the counter untouched. The block is recomputed
	// here rather than trusted from a prior check, so calling RecordUsage
	// directly is safe.
	if result.Blocked {
		if amount > 0 {
			t.emit(BillingSignal{
				Type:      SignalLimitReached,
				TenantID:  tenantID,
				UsageType: typ,
				Amount:    amount,
				CreatedAt: t.now(),
			})
		}
		return result, nil
	}

	rec.Count += amount
	rec.UpdatedAt = t.now()
	result.Current = rec.Count

	if result.Overage {
		rec.Overage = result.OverageAmount
		// Zero-amount recordings are status polls; they never signal.
		if amount > 0 {
			t.emit(BillingSignal{
				Type:      SignalOverage,
				TenantID:  tenantID,
				UsageType: typ,
				Amount:    result.OverageAmount,
				Cost:      result.OverageCost,
				CreatedAt: t.now(),
			})
		}
	}

	return result, nil
}

func (t *memoryTracker) GetUsage(ctx context.Context, tenantID uuid.UUID, typ catalog.UsageType, tier catalog.Tier) (UsageCheckResult, error) {
	return t.CheckUsage(ctx, tenantID, typ, tier, 0)
}

func (t *memoryTracker) AllUsage(ctx context.Context, tenantID uuid.UUID, tier catalog.Tier) (map[catalog.UsageType]UsageCheckResult, error) {
	limits := t.plans.Limits(tier)

	t.mu.Lock()
	defer t.mu.Unlock()

	results := make(map[catalog.UsageType]UsageCheckResult, len(limits))
	for typ, ul := range limits {
		rec := t.fetch(tenantID, typ, ul.Reset)
		results[typ] = t.evaluate(rec, ul, true, 0)
	}

	// Counters left over from a previous tier still report, as unlimited.
	for key, rec := range t.records {
		if key.tenantID != tenantID {
			continue
		}
		if _, ok := results[key.typ]; ok {
			continue
		}
		results[key.typ] = t.evaluate(rec, catalog.UsageLimit{}, false, 0)
	}

	return results, nil
}

func (t *memoryTracker) ResetUsage(ctx context.Context, tenantID uuid.UUID, types ...catalog.UsageType) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(types) == 0 {
		for key := range t.records {
			if key.tenantID == tenantID {
				delete(t.records, key)
			}
		}
		return nil
	}

	for _, typ := range types {
		delete(t.records, recordKey{tenantID: tenantID, typ: typ})
	}
	return nil
}

func (t *memoryTracker) BillingSignals(tenantIDs ...uuid.UUID) []BillingSignal {
	t.sigMu.Lock()
	defer t.sigMu.Unlock()

	if len(tenantIDs) == 0 {
		return slices.Clone(t.signals)
	}

	var filtered []BillingSignal
	for _, sig := range t.signals {
		if slices.Contains(tenantIDs, sig.TenantID) {
			filtered = append(filtered, sig)
		}
	}
	return filtered
}

func (t *memoryTracker) ClearBillingSignals() {
	t.sigMu.Lock()
	defer t.sigMu.Unlock()

	t.signals = nil
}

// fetch returns the live record for the pair, creating it lazily and
// rolling the period forward when it has elapsed. Callers hold t.mu.
func (t *memoryTracker) fetch(tenantID uuid.UUID, typ catalog.UsageType, reset catalog.ResetPeriod) *UsageRecord {
	key := recordKey{tenantID: tenantID, typ: typ}
	now := t.now()

	rec, ok := t.records[key]
	if !ok {
		rec = &UsageRecord{
			TenantID:    tenantID,
			Type:        typ,
			PeriodStart: periodStart(reset, now),
			UpdatedAt:   now,
		}
		t.records[key] = rec
		return rec
	}

	switch reset {
	case catalog.ResetMonthly, catalog.ResetDaily:
		if start := periodStart(reset, now); rec.PeriodStart.Before(start) {
			rec.Count = 0
			rec.Overage = 0
			rec.PeriodStart = start
			rec.UpdatedAt = now
		}
	}

	return rec
}

// evaluate computes the status of adding amount on top of the record
// without mutating anything. Current reports the stored counter; callers
// that mutate overwrite it with the post-increment value.
func (t *memoryTracker) evaluate(rec *UsageRecord, ul catalog.UsageLimit, configured bool, amount int64) UsageCheckResult {
	if !configured || ul.IsUnlimited() {
		return UsageCheckResult{
			Allowed:   true,
			Type:      rec.Type,
			Current:   rec.Count,
			Limit:     catalog.Unlimited,
			Remaining: catalog.Unlimited,
		}
	}

	projected := rec.Count + amount
	result := UsageCheckResult{
		Type:    rec.Type,
		Current: rec.Count,
		Limit:   ul.Limit,
	}

	if projected <= ul.Limit {
		result.Allowed = true
		result.Remaining = ul.Limit - projected
		result.PercentUsed = percentOf(projected, ul.Limit)
		if result.PercentUsed >= ul.WarnThreshold*100 {
			result.Warning = true
			result.Message = warningMessage(rec.Type, result.PercentUsed, projected, ul.Limit)
		}
		return result
	}

	overage := projected - ul.Limit

	if ul.Kind == catalog.LimitHard {
		result.Blocked = true
		result.Remaining = max(0, ul.Limit-rec.Count)
		result.PercentUsed = percentOf(rec.Count, ul.Limit)
		result.Code = CodeLimitExceeded
		result.Message = blockedMessage(rec.Type, amount, ul.Limit)
		return result
	}

	result.Allowed = true
	result.Remaining = 0
	result.PercentUsed = percentOf(projected, ul.Limit)
	result.Warning = true
	result.Overage = true
	result.OverageAmount = overage
	result.OverageCost = float64(overage) * ul.OverageRate
	result.Code = CodeOverage
	result.Message = overageMessage(rec.Type, overage, result.OverageCost)
	return result
}

func (t *memoryTracker) emit(sig BillingSignal) {
	t.sigMu.Lock()
	defer t.sigMu.Unlock()

	if len(t.signals) >= t.maxSignals {
		t.signals = t.signals[1:]
		t.dropped++
		t.logger.Warn("billing signal queue full, oldest dropped",
			slog.Int("queue_size", t.maxSignals),
			slog.Uint64("total_dropped", t.dropped),
		)
	}

	t.signals = append(t.signals, sig)
}

// periodStart returns the start of the period containing now: first of
// the month for monthly resets, midnight for daily, now itself otherwise.
// All period math is in UTC.
func periodStart(reset catalog.ResetPeriod, now time.Time) time.Time {
	now = now.UTC()
	switch reset {
	case catalog.ResetMonthly:
		y, m, _ := now.Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	case catalog.ResetDaily:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	default:
		return now
	}
}

func percentOf(count, limit int64) float64 {
	if limit <= 0 {
		return 0
	}
	return float64(count) / float64(limit) * 100
}
