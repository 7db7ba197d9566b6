package restriction

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/audit"
	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/sanitizer"
	"github.com/schooldesk/schoolkit/pkg/tenant"
	"github.com/schooldesk/schoolkit/pkg/validator"
)

// maxReasonLength bounds the free-text reason so the audit trail stays
// readable; longer explanations belong in the ticket the reason links to.
const maxReasonLength = 500

// Invalidator evicts cached plan snapshots after a record mutation.
// The entitlement service satisfies it.
type Invalidator interface {
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// UsageResetter clears usage counters on administrative request. The
// usage tracker satisfies it.
type UsageResetter interface {
	ResetUsage(ctx context.Context, tenantID uuid.UUID, types ...catalog.UsageType) error
}

// Service applies administrative actions to tenant records and derives
// their current restriction state. Every mutation is a single store
// update followed by a best-effort audit write and a cache
// invalidation, so enforcement reflects the action within one snapshot
// reload.
type Service struct {
	store       tenant.Store
	plans       *catalog.Catalog
	audit       audit.Logger
	invalidator Invalidator
	usage       UsageResetter
	logger      *slog.Logger
	now         func() time.Time // injectable clock for testing
}

// Option configures the restriction service.
type Option func(*Service)

// WithAuditLogger records every applied action in the audit trail.
// Without it actions are applied but leave no trail.
func WithAuditLogger(logger audit.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.audit = logger
		}
	}
}

// WithInvalidator evicts the tenant's cached plan snapshot after each
// mutation. Wire the entitlement service here.
func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) {
		if inv != nil {
			s.invalidator = inv
		}
	}
}

// WithUsageResetter enables the ResetUsage action. Wire the usage
// tracker here.
func WithUsageResetter(resetter UsageResetter) Option {
	return func(s *Service) {
		s.usage = resetter
	}
}

// WithLogger sets the logger for audit write failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates the administrative action service. A nil catalog
// falls back to the built-in default.
func NewService(store tenant.Store, plans *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		store:       store,
		plans:       plans,
		audit:       noopAudit{},
		invalidator: noopInvalidator{},
		logger:      slog.Default(),
		now:         time.Now,
	}

	if s.plans == nil {
		s.plans = catalog.Default()
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Suspend blocks all access for the tenant. Suspending an already
// suspended tenant is recorded again rather than rejected.
func (s *Service) Suspend(ctx context.Context, tenantID, actorID uuid.UUID, reason string) (TenantAction, error) {
	return s.apply(ctx, tenantID, actorID, reason, ActionSuspend, func(rec *tenant.Record, reason string) (map[string]any, error) {
		details := map[string]any{"previous_status": string(rec.Status)}
		now := s.now()
		rec.Status = tenant.StatusSuspended
		rec.Metadata.SuspensionReason = reason
		rec.Metadata.SuspendedAt = &now
		return details, nil
	})
}

// Activate lifts a suspension and returns the tenant to active status.
func (s *Service) Activate(ctx context.Context, tenantID, actorID uuid.UUID, reason string) (TenantAction, error) {
	return s.apply(ctx, tenantID, actorID, reason, ActionActivate, func(rec *tenant.Record, _ string) (map[string]any, error) {
		details := map[string]any{"previous_status": string(rec.Status)}
		rec.Status = tenant.StatusActive
		rec.Metadata.SuspensionReason = ""
		rec.Metadata.SuspendedAt = nil
		return details, nil
	})
}

// SetReadOnly blocks write operations while keeping reads available.
func (s *Service) SetReadOnly(ctx context.Context, tenantID, actorID uuid.UUID, reason string) (TenantAction, error) {
	return s.apply(ctx, tenantID, actorID, reason, ActionSetReadOnly, func(rec *tenant.Record, reason string) (map[string]any, error) {
		now := s.now()
		rec.Metadata.ReadOnly = true
		rec.Metadata.ReadOnlyReason = reason
		rec.Metadata.ReadOnlySetAt = &now
		return nil, nil
	})
}

// ClearReadOnly restores write access.
func (s *Service) ClearReadOnly(ctx context.Context, tenantID, actorID uuid.UUID, reason string) (TenantAction, error) {
	return s.apply(ctx, tenantID, actorID, reason, ActionClearReadOnly, func(rec *tenant.Record, _ string) (map[string]any, error) {
		rec.Metadata.ReadOnly = false
		rec.Metadata.ReadOnlyReason = ""
		rec.Metadata.ReadOnlySetAt = nil
		return nil, nil
	})
}

// DisableFeature switches a single feature off for the tenant,
// overriding the plan catalog and any purchased add-on.
func (s *Service) DisableFeature(ctx context.Context, tenantID, actorID uuid.UUID, code catalog.FeatureCode, reason string) (TenantAction, error) {
	return s.apply(ctx, tenantID, actorID, reason, ActionDisableFeature, func(rec *tenant.Record, _ string) (map[string]any, error) {
		changed := rec.Metadata.DisableFeature(code)
		return map[string]any{"feature": string(code), "changed": changed}, nil
	})
}

// EnableFeature removes a feature from the tenant's disabled set. The
// code also leaves the emergency set, so a later emergency restore
// cannot undo a manual re-enable.
func (s *Service) EnableFeature(ctx context.Context, tenantID, actorID uuid.UUID, code catalog.FeatureCode, reason string) (TenantAction, error) {
	return s.apply(ctx, tenantID, actorID, reason, ActionEnableFeature, func(rec *tenant.Record, _ string) (map[string]any, error) {
		changed := rec.Metadata.EnableFeature(code)
		return map[string]any{"feature": string(code), "changed": changed}, nil
	})
}

// EmergencyDisableCategory disables every feature of a catalog category
// at once, for incident response. Only codes that were not already
// disabled are recorded in the emergency set, so RestoreFromEmergency
// puts back exactly the features this action took away.
func (s *Service) EmergencyDisableCategory(ctx context.Context, tenantID, actorID uuid.UUID, category, reason string) (TenantAction, error) {
	codes := s.plans.Category(category)
	if len(codes) == 0 {
		return TenantAction{}, ErrUnknownCategory
	}

	return s.apply(ctx, tenantID, actorID, reason, ActionEmergencyDisable, func(rec *tenant.Record, reason string) (map[string]any, error) {
		disabled := make([]string, 0, len(codes))
		for _, code := range codes {
			if rec.Metadata.DisableFeature(code) {
				rec.Metadata.EmergencyFeatures = append(rec.Metadata.EmergencyFeatures, code)
				disabled = append(disabled, string(code))
			}
		}
		rec.Metadata.EmergencyDisabled = true
		rec.Metadata.EmergencyReason = reason
		return map[string]any{"category": category, "disabled": disabled}, nil
	})
}

// RestoreFromEmergency re-enables exactly the features the emergency
// disabled. Features that were already disabled before the emergency
// stay disabled.
func (s *Service) RestoreFromEmergency(ctx context.Context, tenantID, actorID uuid.UUID, reason string) (TenantAction, error) {
	return s.apply(ctx, tenantID, actorID, reason, ActionEmergencyRestore, func(rec *tenant.Record, _ string) (map[string]any, error) {
		recorded := slices.Clone(rec.Metadata.EmergencyFeatures)
		restored := make([]string, 0, len(recorded))
		for _, code := range recorded {
			if rec.Metadata.EnableFeature(code) {
				restored = append(restored, string(code))
			}
		}
		rec.Metadata.EmergencyDisabled = false
		rec.Metadata.EmergencyReason = ""
		rec.Metadata.EmergencyFeatures = nil
		return map[string]any{"restored": restored}, nil
	})
}

// ResetUsage clears the tenant's usage counters, all of them when
// usageType is empty. Requires a usage resetter to be configured.
func (s *Service) ResetUsage(ctx context.Context, tenantID, actorID uuid.UUID, usageType catalog.UsageType, reason string) (TenantAction, error) {
	if s.usage == nil {
		return TenantAction{}, ErrUsageTrackingNotConfigured
	}
	reason = sanitizer.SingleLine(reason)
	if err := validateActionInput(actorID, reason); err != nil {
		return TenantAction{}, err
	}

	if _, err := s.store.Get(ctx, tenantID); err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return TenantAction{}, err
		}
		return TenantAction{}, errors.Join(ErrFailedToLoadTenant, err)
	}

	scope := "all"
	var types []catalog.UsageType
	if usageType != "" {
		scope = string(usageType)
		types = append(types, usageType)
	}

	if err := s.usage.ResetUsage(ctx, tenantID, types...); err != nil {
		return TenantAction{}, errors.Join(ErrFailedToApplyAction, err)
	}

	action := s.newAction(ActionResetUsage, tenantID, actorID, reason, map[string]any{"usage_type": scope})
	s.recordAudit(ctx, action)
	return action, nil
}

// GetRestrictions derives the tenant's current restriction state from
// its record. The read is uncached so administrative surfaces always
// see the latest state.
func (s *Service) GetRestrictions(ctx context.Context, tenantID uuid.UUID) (TenantRestriction, error) {
	rec, err := s.store.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return TenantRestriction{}, err
		}
		return TenantRestriction{}, errors.Join(ErrFailedToLoadTenant, err)
	}

	disabled := slices.Clone(rec.Metadata.DisabledFeatures)
	slices.Sort(disabled)

	restriction := TenantRestriction{
		Level:            LevelNone,
		DisabledFeatures: disabled,
	}

	switch {
	case rec.IsSuspended():
		restriction.Level = LevelSuspended
		restriction.ReadOnly = true
		restriction.Message = fallback(rec.Metadata.SuspensionReason, "account is suspended")
	case rec.Metadata.ReadOnly:
		restriction.Level = LevelReadOnly
		restriction.ReadOnly = true
		restriction.Message = fallback(rec.Metadata.ReadOnlyReason, "account is in read-only mode")
	case rec.Metadata.EmergencyDisabled:
		restriction.Level = LevelLimited
		restriction.Message = fallback(rec.Metadata.EmergencyReason, "some features are temporarily unavailable")
	case len(disabled) > 0:
		restriction.Level = LevelLimited
		restriction.Message = "some features are unavailable for this account"
	case rec.Status == tenant.StatusPastDue:
		restriction.Level = LevelLimited
		restriction.Message = "payment is past due"
	case rec.IsTrialExpired(s.now()):
		restriction.Level = LevelWarning
		restriction.Message = "trial period has ended"
	}

	return restriction, nil
}

// apply runs the shared mutation pipeline: validate the input, load the
// record, mutate it, write it back in one update, then audit and
// invalidate. Audit and invalidation happen only after a successful
// write, so the trail never claims an action that was not applied. The
// reason handed to mutate is collapsed to a single line first; the same
// value lands in the action record and the audit trail.
func (s *Service) apply(ctx context.Context, tenantID, actorID uuid.UUID, reason string, actionType ActionType, mutate func(rec *tenant.Record, reason string) (map[string]any, error)) (TenantAction, error) {
	reason = sanitizer.SingleLine(reason)
	if err := validateActionInput(actorID, reason); err != nil {
		return TenantAction{}, err
	}

	rec, err := s.store.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return TenantAction{}, err
		}
		return TenantAction{}, errors.Join(ErrFailedToLoadTenant, err)
	}

	details, err := mutate(rec, reason)
	if err != nil {
		return TenantAction{}, err
	}

	if err := s.store.Update(ctx, rec); err != nil {
		return TenantAction{}, errors.Join(ErrFailedToApplyAction, err)
	}

	action := s.newAction(actionType, tenantID, actorID, reason, details)
	s.recordAudit(ctx, action)
	s.invalidator.Invalidate(ctx, tenantID)

	return action, nil
}

// validateActionInput rejects actions without an accountable actor. The
// audit trail is only as good as the actor IDs recorded in it.
func validateActionInput(actorID uuid.UUID, reason string) error {
	return validator.Apply(
		validator.RequiredUUID("actor_id", actorID),
		validator.MaxLen("reason", reason, maxReasonLength),
	)
}

func (s *Service) newAction(actionType ActionType, tenantID, actorID uuid.UUID, reason string, details map[string]any) TenantAction {
	return TenantAction{
		ID:        uuid.New(),
		Type:      actionType,
		TenantID:  tenantID,
		ActorID:   actorID,
		Reason:    reason,
		Details:   details,
		CreatedAt: s.now(),
	}
}

// recordAudit writes the action to the trail. A failed write degrades
// to a warning; the action itself has already been applied.
func (s *Service) recordAudit(ctx context.Context, action TenantAction) {
	opts := []audit.EventOption{
		audit.WithEntity("tenant", action.TenantID.String()),
		audit.WithActor(action.ActorID.String()),
		audit.WithDescription(action.Reason),
	}
	for key, value := range action.Details {
		opts = append(opts, audit.WithMetadata(key, value))
	}

	if err := s.audit.Log(ctx, string(action.Type), opts...); err != nil {
		s.logger.WarnContext(ctx, "audit write failed for applied action",
			slog.String("action", string(action.Type)),
			slog.String("tenant_id", action.TenantID.String()),
			slog.Any("error", err))
	}
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

type noopAudit struct{}

func (noopAudit) Log(context.Context, string, ...audit.EventOption) error { return nil }

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, uuid.UUID) {}
