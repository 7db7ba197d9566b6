package enforcement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/schooldesk/schoolkit/core"
	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// checkFeature answers whether the tenant may use a feature. Denials
// keep the check result as the body so callers see the reason and the
// upgrade hint; the status distinguishes "buy more" from "not allowed".
func (m *module) checkFeature(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDParam(r)
	if err != nil {
		m.renderError(w, r, err)
		return
	}
	code := catalog.FeatureCode(chi.URLParam(r, "code"))

	result := m.opts.Entitlements.CheckFeature(r.Context(), tenantID, code)
	if result.Available {
		m.render(w, r, core.JSON("feature_available", result, nil))
		return
	}

	status := http.StatusForbidden
	if result.UpgradeTier != "" {
		status = http.StatusPaymentRequired
	}
	m.render(w, r, core.JSONWithStatus(status, result.Code, result, nil))
}

// getPlan returns the tenant's resolved plan snapshot.
func (m *module) getPlan(w http.ResponseWriter, r *http.Request) {
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
	m.render(w, r, core.JSON("plan", info, nil))
}
