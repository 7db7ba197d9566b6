// Package restriction applies administrative actions to tenants and
// reports their current restriction state. It covers suspension,
// read-only mode, per-feature kill switches and the category-wide
// emergency disable used during incidents.
//
// Every mutation follows the same pipeline: load the record, mutate its
// typed metadata, persist it in a single update, record the action in
// the audit trail, and invalidate the tenant's cached plan snapshot.
// Actions are idempotent at the record level; repeating one re-applies
// the same state and is audited again.
//
// # Usage
//
//	svc := restriction.NewService(store, nil,
//	    restriction.WithAuditLogger(auditLogger),
//	    restriction.WithInvalidator(entitlements),
//	    restriction.WithUsageResetter(tracker),
//	)
//
//	action, err := svc.Suspend(ctx, tenantID, actorID, "non-payment")
//
//	state, err := svc.GetRestrictions(ctx, tenantID)
//	if state.Level == restriction.LevelSuspended {
//	    // deny everything
//	}
//
// # Restriction Levels
//
// GetRestrictions derives a single level from the record, picking the
// most severe that applies: suspended when the account is suspended,
// read_only when writes are blocked, limited when the emergency flag is
// set, any feature is disabled or payment is past due, and warning when
// a trial has run out. The state is never stored; it always reflects
// the record as of the read.
//
// # Emergency Scope
//
// EmergencyDisableCategory records exactly the codes it newly disabled.
// RestoreFromEmergency re-enables only those, so features an
// administrator disabled by hand before the incident stay off, and a
// feature manually re-enabled mid-incident is not resurrected by the
// restore.
package restriction
