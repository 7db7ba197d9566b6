package entitlement

import (
	"time"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// TenantPlanInfo is the resolved entitlement snapshot for one tenant.
// Features holds the effective set: catalog features of the tier, plus
// purchased add-ons, minus administratively disabled codes. Snapshots are
// replaced wholesale on every resolve; they are never patched in place.
type TenantPlanInfo struct {
	TenantID uuid.UUID    `json:"tenant_id"`
	Tier     catalog.Tier `json:"tier"`

	Features map[catalog.FeatureCode]bool `json:"features"`
	// Disabled keeps the administratively disabled codes visible even
	// though they are already excluded from Features, so feature checks
	// can tell "disabled" apart from "not in plan".
	Disabled map[catalog.FeatureCode]bool `json:"disabled,omitempty"`

	Suspended bool `json:"suspended"`
	ReadOnly  bool `json:"read_only"`

	Trialing    bool       `json:"trialing"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`

	CachedAt time.Time `json:"cached_at"`
}

// HasFeature reports whether the code is in the effective feature set.
func (s *TenantPlanInfo) HasFeature(code catalog.FeatureCode) bool {
	return s.Features[code]
}

// IsDisabled reports whether the code was administratively disabled.
func (s *TenantPlanInfo) IsDisabled(code catalog.FeatureCode) bool {
	return s.Disabled[code]
}

// Age returns how long ago the snapshot was resolved.
func (s *TenantPlanInfo) Age(now time.Time) time.Duration {
	return now.Sub(s.CachedAt)
}

// Result codes carried on feature check denials.
const (
	CodeFeatureUnavailable = "feature_unavailable"
	CodeAccountSuspended   = "account_suspended"
)

// FeatureCheckResult is the outcome of a feature availability check.
// Denials are ordinary values, not errors; Code identifies the denial
// class for API responses and UpgradeTier carries the cheapest tier that
// would include the feature, when one exists.
type FeatureCheckResult struct {
	Available   bool                `json:"available"`
	Feature     catalog.FeatureCode `json:"feature"`
	Reason      string              `json:"reason,omitempty"`
	Code        string              `json:"code,omitempty"`
	UpgradeTier catalog.Tier        `json:"upgrade_tier,omitempty"`
}
