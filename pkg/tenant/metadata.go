package tenant

import (
	"maps"
	"slices"
	"time"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// Metadata carries the mutable per-tenant enforcement state embedded in the
// tenant record. It is persisted as a JSONB column, but access from the
// services goes through this typed struct and its helpers only.
type Metadata struct {
	// AddOnFeatures are features purchased on top of the tier catalog.
	AddOnFeatures []catalog.FeatureCode `json:"addon_features,omitempty"`
	// DisabledFeatures are features switched off for this tenant by an
	// administrator, overriding both the catalog and add-ons.
	DisabledFeatures []catalog.FeatureCode `json:"disabled_features,omitempty"`

	ReadOnly       bool       `json:"read_only,omitempty"`
	ReadOnlyReason string     `json:"read_only_reason,omitempty"`
	ReadOnlySetAt  *time.Time `json:"read_only_set_at,omitempty"`

	// EmergencyFeatures records exactly the codes an emergency disable
	// added to DisabledFeatures, so a restore removes only those.
	EmergencyDisabled bool                  `json:"emergency_disabled,omitempty"`
	EmergencyFeatures []catalog.FeatureCode `json:"emergency_features,omitempty"`
	EmergencyReason   string                `json:"emergency_reason,omitempty"`

	SuspensionReason string     `json:"suspension_reason,omitempty"`
	SuspendedAt      *time.Time `json:"suspended_at,omitempty"`

	// Extra holds tenant attributes that are not enforcement state.
	Extra map[string]any `json:"extra,omitempty"`
}

// IsFeatureDisabled reports whether the code is in the disabled set.
func (m *Metadata) IsFeatureDisabled(code catalog.FeatureCode) bool {
	return slices.Contains(m.DisabledFeatures, code)
}

// HasAddOn reports whether the code was purchased as an add-on.
func (m *Metadata) HasAddOn(code catalog.FeatureCode) bool {
	return slices.Contains(m.AddOnFeatures, code)
}

// DisableFeature adds the code to the disabled set.
// Returns false when the code was already disabled.
func (m *Metadata) DisableFeature(code catalog.FeatureCode) bool {
	if m.IsFeatureDisabled(code) {
		return false
	}
	m.DisabledFeatures = append(m.DisabledFeatures, code)
	return true
}

// EnableFeature removes the code from the disabled set and from the
// emergency set, so a later emergency restore cannot re-enable a code
// the administrator already handled by hand.
// Returns false when the code was not disabled.
func (m *Metadata) EnableFeature(code catalog.FeatureCode) bool {
	if !m.IsFeatureDisabled(code) {
		return false
	}
	m.DisabledFeatures = slices.DeleteFunc(m.DisabledFeatures, func(c catalog.FeatureCode) bool {
		return c == code
	})
	m.EmergencyFeatures = slices.DeleteFunc(m.EmergencyFeatures, func(c catalog.FeatureCode) bool {
		return c == code
	})
	return true
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	clone := m
	clone.AddOnFeatures = slices.Clone(m.AddOnFeatures)
	clone.DisabledFeatures = slices.Clone(m.DisabledFeatures)
	clone.EmergencyFeatures = slices.Clone(m.EmergencyFeatures)
	if m.ReadOnlySetAt != nil {
		t := *m.ReadOnlySetAt
		clone.ReadOnlySetAt = &t
	}
	if m.SuspendedAt != nil {
		t := *m.SuspendedAt
		clone.SuspendedAt = &t
	}
	clone.Extra = maps.Clone(m.Extra)
	return clone
}
