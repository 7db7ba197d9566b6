package restriction

import (
	"time"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// ActionType identifies an administrative action. The values double as
// audit action names.
type ActionType string

const (
	ActionSuspend          ActionType = "tenant.suspend"
	ActionActivate         ActionType = "tenant.activate"
	ActionSetReadOnly      ActionType = "tenant.readonly.set"
	ActionClearReadOnly    ActionType = "tenant.readonly.clear"
	ActionDisableFeature   ActionType = "tenant.feature.disable"
	ActionEnableFeature    ActionType = "tenant.feature.enable"
	ActionEmergencyDisable ActionType = "tenant.emergency.disable"
	ActionEmergencyRestore ActionType = "tenant.emergency.restore"
	ActionResetUsage       ActionType = "tenant.usage.reset"
)

// TenantAction describes an administrative action that was applied.
// It is returned to the caller and mirrored into the audit trail.
type TenantAction struct {
	ID        uuid.UUID      `json:"id"`
	Type      ActionType     `json:"type"`
	TenantID  uuid.UUID      `json:"tenant_id"`
	ActorID   uuid.UUID      `json:"actor_id"`
	Reason    string         `json:"reason,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Level is the severity of a tenant's current restriction state,
// ordered none < warning < limited < read_only < suspended.
type Level string

const (
	LevelNone      Level = "none"
	LevelWarning   Level = "warning"
	LevelLimited   Level = "limited"
	LevelReadOnly  Level = "read_only"
	LevelSuspended Level = "suspended"
)

// TenantRestriction is the derived restriction state of a tenant. It is
// computed from the record on every read and never stored.
type TenantRestriction struct {
	Level            Level                 `json:"level"`
	ReadOnly         bool                  `json:"read_only"`
	DisabledFeatures []catalog.FeatureCode `json:"disabled_features,omitempty"`
	Message          string                `json:"message,omitempty"`
}
