package usage

import (
	"time"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// UsageRecord is the mutable per-tenant, per-type counter for one reset
// period. A record whose period has elapsed is logically equivalent to a
// fresh zero record; the tracker rolls it forward on the next access.
type UsageRecord struct {
	TenantID    uuid.UUID         `json:"tenant_id"`
	Type        catalog.UsageType `json:"usage_type"`
	Count       int64             `json:"count"`
	Overage     int64             `json:"overage"`
	PeriodStart time.Time         `json:"period_start"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Result codes carried on usage check outcomes.
const (
	CodeLimitExceeded = "usage_limit_exceeded"
	CodeOverage       = "usage_overage"
)

// UsageCheckResult summarizes one usage check or recording. It is computed
// fresh on every call and never cached. Blocked is only ever true for hard
// limits; soft limits allow the operation and report the overage instead.
type UsageCheckResult struct {
	Allowed bool              `json:"allowed"`
	Blocked bool              `json:"blocked"`
	Type    catalog.UsageType `json:"usage_type"`

	// Current is the stored counter: post-increment for recordings,
	// untouched for checks and blocked recordings.
	Current   int64 `json:"current"`
	Limit     int64 `json:"limit"`     // -1 when unlimited
	Remaining int64 `json:"remaining"` // -1 when unlimited, floored at 0

	// PercentUsed is on a 0-100 scale and may exceed 100 for soft
	// overages. Always 0 when unlimited.
	PercentUsed float64 `json:"percent_used"`
	Warning     bool    `json:"warning"`

	Overage       bool    `json:"overage"`
	OverageAmount int64   `json:"overage_amount"`
	OverageCost   float64 `json:"overage_cost"`

	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// SignalType identifies the billing condition a signal reports.
type SignalType string

const (
	SignalOverage      SignalType = "overage"
	SignalLimitReached SignalType = "limit_reached"
)

// BillingSignal is an immutable event queued for the external billing
// consumer. Amount carries the overage units for overage signals and the
// attempted amount for limit_reached signals.
type BillingSignal struct {
	Type      SignalType        `json:"type"`
	TenantID  uuid.UUID         `json:"tenant_id"`
	UsageType catalog.UsageType `json:"usage_type"`
	Amount    int64             `json:"amount"`
	Cost      float64           `json:"cost"`
	CreatedAt time.Time         `json:"created_at"`
}
