package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/tenant"
)

// DefaultCacheTTL bounds how stale a cached snapshot may grow before the
// next check goes back to the tenant store.
const DefaultCacheTTL = 5 * time.Minute

// Service answers feature availability questions for tenants. Answers are
// computed from plan snapshots that combine the static catalog with the
// tenant's stored overrides (add-ons, disabled features, suspension).
type Service interface {
	// CheckFeature reports whether a tenant may use a feature right now.
	// Storage failures degrade to a deny-all snapshot rather than an error.
	CheckFeature(ctx context.Context, tenantID uuid.UUID, feature catalog.FeatureCode) FeatureCheckResult

	// CheckFeatures evaluates several features against a single snapshot.
	CheckFeatures(ctx context.Context, tenantID uuid.UUID, features ...catalog.FeatureCode) map[catalog.FeatureCode]FeatureCheckResult

	// Resolve returns the tenant's current plan snapshot, consulting the
	// cache first. Unlike CheckFeature it reports storage failures to the
	// caller instead of failing closed.
	Resolve(ctx context.Context, tenantID uuid.UUID) (*TenantPlanInfo, error)

	// Invalidate drops the cached snapshot so the next check observes
	// changes made to the tenant record.
	Invalidate(ctx context.Context, tenantID uuid.UUID)

	// Close releases the snapshot cache.
	Close() error
}

type service struct {
	store  tenant.Store
	plans  *catalog.Catalog
	cache  SnapshotCache
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the entitlement service during construction.
type Option func(*service)

// WithCache replaces the default in-memory snapshot cache. Pass
// NewNoOpCache() to disable caching entirely.
func WithCache(cache SnapshotCache) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// WithCacheTTL overrides how long resolved snapshots stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger configures the logger used for degraded-mode warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates an entitlement service backed by the given tenant
// store and plan catalog source. A nil source falls back to the built-in
// default catalog.
func NewService(ctx context.Context, store tenant.Store, src catalog.Source, opts ...Option) (Service, error) {
	var plans *catalog.Catalog
	if src == nil {
		plans = catalog.Default()
	} else {
		loaded, err := src.Load(ctx)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadCatalog, err)
		}
		plans = loaded
	}

	s := &service{
		store:  store,
		plans:  plans,
		cache:  NewMemoryCache(DefaultCacheSize),
		ttl:    DefaultCacheTTL,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *service) CheckFeature(ctx context.Context, tenantID uuid.UUID, feature catalog.FeatureCode) FeatureCheckResult {
	info, err := s.Resolve(ctx, tenantID)
	if err != nil {
		s.logger.WarnContext(ctx, "entitlement check degraded to deny-all",
			slog.String("tenant_id", tenantID.String()),
			slog.String("feature", string(feature)),
			slog.Any("error", err),
		)
		info = s.failClosedSnapshot(tenantID)
	}
	return s.evaluate(info, feature)
}

func (s *service) CheckFeatures(ctx context.Context, tenantID uuid.UUID, features ...catalog.FeatureCode) map[catalog.FeatureCode]FeatureCheckResult {
	info, err := s.Resolve(ctx, tenantID)
	if err != nil {
		s.logger.WarnContext(ctx, "entitlement check degraded to deny-all",
			slog.String("tenant_id", tenantID.String()),
			slog.Any("error", err),
		)
		info = s.failClosedSnapshot(tenantID)
	}

	results := make(map[catalog.FeatureCode]FeatureCheckResult, len(features))
	for _, feature := range features {
		results[feature] = s.evaluate(info, feature)
	}
	return results
}

func (s *service) Resolve(ctx context.Context, tenantID uuid.UUID) (*TenantPlanInfo, error) {
	if info, ok := s.cache.Get(ctx, tenantID); ok {
		return info, nil
	}

	rec, err := s.store.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return nil, errors.Join(ErrTenantNotFound, err)
		}
		return nil, errors.Join(ErrFailedToResolve, err)
	}

	info := s.buildSnapshot(rec)
	s.cache.Set(ctx, tenantID, info, s.ttl)
	return info, nil
}

func (s *service) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	s.cache.Delete(ctx, tenantID)
}

func (s *service) Close() error {
	return s.cache.Close()
}

// buildSnapshot flattens a tenant record against the catalog. The feature
// set is the tier's catalog features plus purchased add-ons minus disabled
// codes; the disabled codes are also kept in their own map so checks can
// tell an administratively disabled feature apart from one the plan never
// included.
func (s *service) buildSnapshot(rec *tenant.Record) *TenantPlanInfo {
	features := make(map[catalog.FeatureCode]bool)
	for _, code := range s.plans.Features(rec.Tier) {
		features[code] = true
	}
	for _, code := range rec.Metadata.AddOnFeatures {
		features[code] = true
	}

	disabled := make(map[catalog.FeatureCode]bool, len(rec.Metadata.DisabledFeatures))
	for _, code := range rec.Metadata.DisabledFeatures {
		disabled[code] = true
		delete(features, code)
	}

	return &TenantPlanInfo{
		TenantID:    rec.ID,
		Tier:        rec.Tier,
		Features:    features,
		Disabled:    disabled,
		Suspended:   rec.IsSuspended(),
		ReadOnly:    rec.Metadata.ReadOnly,
		Trialing:    rec.Status == tenant.StatusTrial,
		TrialEndsAt: rec.TrialEndsAt,
		CachedAt:    s.now(),
	}
}

func (s *service) evaluate(info *TenantPlanInfo, feature catalog.FeatureCode) FeatureCheckResult {
	if info.Suspended {
		return FeatureCheckResult{
			Feature: feature,
			Reason:  "account is suspended",
			Code:    CodeAccountSuspended,
		}
	}

	if info.IsDisabled(feature) {
		return FeatureCheckResult{
			Feature: feature,
			Reason:  "feature has been disabled for this account",
			Code:    CodeFeatureUnavailable,
		}
	}

	if info.HasFeature(feature) {
		return FeatureCheckResult{Available: true, Feature: feature}
	}

	result := FeatureCheckResult{
		Feature: feature,
		Reason:  "feature is not available on the current plan",
		Code:    CodeFeatureUnavailable,
	}
	if tier, ok := s.plans.MinimumTierFor(feature); ok {
		result.Reason = fmt.Sprintf("feature requires the %s plan or higher", tier)
		result.UpgradeTier = tier
	}
	return result
}

// failClosedSnapshot is the deny-all stand-in used when the tenant store
// is unreachable. It grants nothing, not even free-tier features, and is
// never written to the cache.
func (s *service) failClosedSnapshot(tenantID uuid.UUID) *TenantPlanInfo {
	return &TenantPlanInfo{
		TenantID: tenantID,
		Tier:     catalog.TierFree,
		Features: map[catalog.FeatureCode]bool{},
		Disabled: map[catalog.FeatureCode]bool{},
		CachedAt: s.now(),
	}
}
