package enforcement

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/core"
	"github.com/schooldesk/schoolkit/pkg/audit"
	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/restriction"
)

type actionKind int

const (
	actionSuspend actionKind = iota
	actionActivate
	actionSetReadOnly
	actionClearReadOnly
	actionDisableFeature
	actionEnableFeature
	actionEmergencyDisable
	actionEmergencyRestore
	actionResetUsage
)

type actionRequest struct {
	ActorID   string `json:"actor_id"`
	Reason    string `json:"reason"`
	UsageType string `json:"usage_type"`
}

// action builds the handler for one administrative action. All actions
// share the request shape; the actor may come from the body or from the
// X-Actor-ID header.
func (m *module) action(kind actionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := tenantIDParam(r)
		if err != nil {
			m.renderError(w, r, err)
			return
		}

		var req actionRequest
		if err := bindBody(r, &req); err != nil {
			m.renderError(w, r, err)
			return
		}

		actorRaw := req.ActorID
		if actorRaw == "" {
			actorRaw = r.Header.Get("X-Actor-ID")
		}
		if actorRaw == "" {
			m.renderError(w, r, core.NewValidationError("actor_id", "is required"))
			return
		}
		actorID, err := uuid.Parse(actorRaw)
		if err != nil {
			m.renderError(w, r, core.NewValidationError("actor_id", "must be a valid UUID"))
			return
		}

		ctx := r.Context()
		svc := m.opts.Restrictions

		var action restriction.TenantAction
		switch kind {
		case actionSuspend:
			action, err = svc.Suspend(ctx, tenantID, actorID, req.Reason)
		case actionActivate:
			action, err = svc.Activate(ctx, tenantID, actorID, req.Reason)
		case actionSetReadOnly:
			action, err = svc.SetReadOnly(ctx, tenantID, actorID, req.Reason)
		case actionClearReadOnly:
			action, err = svc.ClearReadOnly(ctx, tenantID, actorID, req.Reason)
		case actionDisableFeature:
			code := catalog.FeatureCode(chi.URLParam(r, "code"))
			action, err = svc.DisableFeature(ctx, tenantID, actorID, code, req.Reason)
		case actionEnableFeature:
			code := catalog.FeatureCode(chi.URLParam(r, "code"))
			action, err = svc.EnableFeature(ctx, tenantID, actorID, code, req.Reason)
		case actionEmergencyDisable:
			action, err = svc.EmergencyDisableCategory(ctx, tenantID, actorID, chi.URLParam(r, "category"), req.Reason)
		case actionEmergencyRestore:
			action, err = svc.RestoreFromEmergency(ctx, tenantID, actorID, req.Reason)
		case actionResetUsage:
			action, err = svc.ResetUsage(ctx, tenantID, actorID, catalog.UsageType(req.UsageType), req.Reason)
		}
		if err != nil {
			m.renderError(w, r, err)
			return
		}
		m.render(w, r, core.JSON("action_applied", action, nil))
	}
}

// getRestrictions returns the summary that request-path middleware and
// dashboards consume.
func (m *module) getRestrictions(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDParam(r)
	if err != nil {
		m.renderError(w, r, err)
		return
	}

	restrictions, err := m.opts.Restrictions.GetRestrictions(r.Context(), tenantID)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	m.render(w, r, core.JSON("restrictions", restrictions, nil))
}

type auditQuery struct {
	Action  string `query:"action"`
	ActorID string `query:"actor_id"`
	Since   string `query:"since"`
	Until   string `query:"until"`
	Limit   int    `query:"limit"`
	Cursor  string `query:"cursor"`
}

const defaultAuditPageSize = 100

// getAuditEvents lists the tenant's action trail, newest first, with
// cursor pagination via the next_cursor meta field.
func (m *module) getAuditEvents(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDParam(r)
	if err != nil {
		m.renderError(w, r, err)
		return
	}

	var q auditQuery
	if err := bindQuery(r, &q); err != nil {
		m.renderError(w, r, err)
		return
	}

	criteria := audit.Criteria{
		EntityID: tenantID.String(),
		Action:   q.Action,
		ActorID:  q.ActorID,
		Limit:    q.Limit,
	}
	if criteria.Limit <= 0 {
		criteria.Limit = defaultAuditPageSize
	}
	if criteria.Since, err = parseQueryTime(q.Since, "since"); err != nil {
		m.renderError(w, r, err)
		return
	}
	if criteria.Until, err = parseQueryTime(q.Until, "until"); err != nil {
		m.renderError(w, r, err)
		return
	}

	events, nextCursor, err := m.opts.Audit.FindWithCursor(r.Context(), criteria, q.Cursor)
	if err != nil {
		m.renderError(w, r, err)
		return
	}

	meta := map[string]any{"count": len(events)}
	if nextCursor != "" {
		meta["next_cursor"] = nextCursor
	}
	m.render(w, r, core.JSON("audit_events", events, meta))
}

func parseQueryTime(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, core.NewValidationError(field, "must be an RFC 3339 timestamp")
	}
	return ts, nil
}
