package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/validator"
)

// Status is the subscription lifecycle state of a tenant.
type Status string

const (
	StatusActive    Status = "active"
	StatusTrial     Status = "trial"
	StatusPastDue   Status = "past_due"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
)

// Record is the tenant subscription record as stored by the platform.
// The enforcement services read it to decide entitlements and the
// restriction service mutates its status and metadata.
type Record struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Subdomain   string       `json:"subdomain"`
	Status      Status       `json:"status"`
	Tier        catalog.Tier `json:"tier"`
	TrialEndsAt *time.Time   `json:"trial_ends_at,omitempty"`
	Metadata    Metadata     `json:"metadata"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

var (
	validStatuses = []string{
		string(StatusActive),
		string(StatusTrial),
		string(StatusPastDue),
		string(StatusSuspended),
		string(StatusCancelled),
	}
	validTiers = []string{
		string(catalog.TierFree),
		string(catalog.TierStarter),
		string(catalog.TierProfessional),
		string(catalog.TierEnterprise),
		string(catalog.TierCustom),
	}
)

// Validate checks the record's structural invariants. Stores call it
// before persisting, so a record that round-trips through a Store is
// always well formed.
func (r *Record) Validate() error {
	return validator.Apply(
		validator.RequiredUUID("id", r.ID),
		validator.Required("name", r.Name),
		validator.MinLen("name", r.Name, 2),
		validator.MaxLen("name", r.Name, 200),
		validator.ValidSubdomain("subdomain", r.Subdomain),
		validator.ValidStatus("status", string(r.Status), validStatuses),
		validator.ValidEnum("tier", string(r.Tier), validTiers),
	)
}

// IsSuspended reports whether the tenant is administratively suspended.
func (r *Record) IsSuspended() bool {
	return r.Status == StatusSuspended
}

// IsServing reports whether the tenant may use the platform at all.
// Past-due tenants keep serving in a degraded state until suspended.
func (r *Record) IsServing() bool {
	switch r.Status {
	case StatusActive, StatusTrial, StatusPastDue:
		return true
	}
	return false
}

// IsTrialExpired reports whether a trialing tenant has run past its trial end.
func (r *Record) IsTrialExpired(now time.Time) bool {
	return r.Status == StatusTrial && r.TrialEndsAt != nil && now.After(*r.TrialEndsAt)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	if r.TrialEndsAt != nil {
		t := *r.TrialEndsAt
		clone.TrialEndsAt = &t
	}
	clone.Metadata = r.Metadata.Clone()
	return &clone
}

// Store provides access to tenant records. Implementations must return
// ErrTenantNotFound for unknown IDs, must reject updates whose record
// fails Validate, and must persist Update as a single atomic write of
// the whole record.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, record *Record) error
}

// Provider loads tenant records by any unique string identifier, such as
// a subdomain or an ID in text form. It backs the HTTP middleware, which
// works with identifiers extracted from requests rather than UUIDs.
type Provider interface {
	// GetByIdentifier returns ErrTenantNotFound if no tenant matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Record, error)
}
