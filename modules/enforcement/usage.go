package enforcement

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/core"
	"github.com/schooldesk/schoolkit/pkg/catalog"
)

type recordUsageRequest struct {
	Amount int64 `json:"amount"`
}

// getUsage reports counter status for one usage type (?type=) or all of
// them. The tier comes from the resolved snapshot, so an unknown tenant
// is a 404 before any counter is touched.
func (m *module) getUsage(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDParam(r)
	if err != nil {
		m.renderError(w, r, err)
		return
	}

	info, err := m.opts.Entitlements.Resolve(r.Context(), tenantID)
	if err != nil {
		m.renderError(w, r, err)
		return
	}

	if typ := r.URL.Query().Get("type"); typ != "" {
		result, err := m.opts.Usage.GetUsage(r.Context(), tenantID, catalog.UsageType(typ), info.Tier)
		if err != nil {
			m.renderError(w, r, err)
			return
		}
		m.render(w, r, core.JSON("usage", result, nil))
		return
	}

	all, err := m.opts.Usage.AllUsage(r.Context(), tenantID, info.Tier)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	m.render(w, r, core.JSON("usage", all, nil))
}

// recordUsage increments a counter. A hard-limit block is reported as
// 402 with the check result as the body, not as an error.
func (m *module) recordUsage(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDParam(r)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	typ := catalog.UsageType(chi.URLParam(r, "type"))

	var req recordUsageRequest
	if err := bindBody(r, &req); err != nil {
		m.renderError(w, r, err)
		return
	}

	info, err := m.opts.Entitlements.Resolve(r.Context(), tenantID)
	if err != nil {
		m.renderError(w, r, err)
		return
	}

	result, err := m.opts.Usage.RecordUsage(r.Context(), tenantID, typ, info.Tier, req.Amount)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	if result.Blocked {
		m.render(w, r, core.JSONWithStatus(http.StatusPaymentRequired, result.Code, result, nil))
		return
	}
	m.render(w, r, core.JSON("usage_recorded", result, nil))
}

// getBillingSignals lists queued signals without consuming them.
func (m *module) getBillingSignals(w http.ResponseWriter, r *http.Request) {
	var ids []uuid.UUID
	if raw := r.URL.Query().Get("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			m.renderError(w, r, core.NewValidationError("tenant_id", "must be a valid UUID"))
			return
		}
		ids = append(ids, id)
	}

	signals := m.opts.Usage.BillingSignals(ids...)
	m.render(w, r, core.JSON("billing_signals", signals, map[string]any{"count": len(signals)}))
}

// drainBillingSignals returns every queued signal and empties the queue.
// The response is the caller's only copy; a lost response loses signals.
func (m *module) drainBillingSignals(w http.ResponseWriter, r *http.Request) {
	signals := m.opts.Usage.BillingSignals()
	m.opts.Usage.ClearBillingSignals()
	m.render(w, r, core.JSON("billing_signals_drained", signals, map[string]any{"count": len(signals)}))
}
