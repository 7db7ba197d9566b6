package enforcement

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schooldesk/schoolkit/core"
	"github.com/schooldesk/schoolkit/pkg/audit"
	"github.com/schooldesk/schoolkit/pkg/entitlement"
	"github.com/schooldesk/schoolkit/pkg/ratelimit"
	"github.com/schooldesk/schoolkit/pkg/requestid"
	"github.com/schooldesk/schoolkit/pkg/restriction"
	"github.com/schooldesk/schoolkit/pkg/usage"
)

// RouterOptions configures which services the enforcement module
// mounts. Each service is optional; endpoints whose services are
// missing are simply not routed.
type RouterOptions struct {
	Entitlements entitlement.Service
	Usage        usage.Tracker
	Restrictions *restriction.Service
	Audit        audit.Reader
	Logger       *slog.Logger

	// RateLimit throttles the whole module when set. Callers are keyed
	// by the X-Actor-ID header combined with the client address, so an
	// anonymous caller is still tracked by where it connects from.
	RateLimit ratelimit.Limiter
}

// Router creates the administrative enforcement API. It is meant to be
// mounted on a platform-internal plane, not exposed to tenants.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/enforcement", enforcement.Router(enforcement.RouterOptions{
//	    Entitlements: entitlements,
//	    Usage:        tracker,
//	    Restrictions: restrictions,
//	    Audit:        auditReader,
//	}))
func Router(opts RouterOptions) chi.Router {
	m := &module{opts: opts, log: opts.Logger}
	if m.log == nil {
		m.log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	if opts.RateLimit != nil {
		r.Use(ratelimit.Middleware(opts.RateLimit, ratelimit.Composite(
			ratelimit.ByHeader("X-Actor-ID"),
			ratelimit.ByRemoteAddr(),
		)))
	}

	r.Route("/tenants/{tenantID}", func(tenants chi.Router) {
		if opts.Entitlements != nil {
			tenants.Get("/features/{code}", m.checkFeature)
			tenants.Get("/plan", m.getPlan)
		}
		if opts.Entitlements != nil && opts.Usage != nil {
			tenants.Get("/usage", m.getUsage)
			tenants.Post("/usage/{type}/record", m.recordUsage)
		}
		if opts.Restrictions != nil {
			tenants.Get("/restrictions", m.getRestrictions)
			tenants.Route("/actions", func(actions chi.Router) {
				actions.Post("/suspend", m.action(actionSuspend))
				actions.Post("/activate", m.action(actionActivate))
				actions.Post("/readonly", m.action(actionSetReadOnly))
				actions.Post("/readonly/clear", m.action(actionClearReadOnly))
				actions.Post("/features/{code}/disable", m.action(actionDisableFeature))
				actions.Post("/features/{code}/enable", m.action(actionEnableFeature))
				actions.Post("/emergency/{category}", m.action(actionEmergencyDisable))
				actions.Post("/emergency/restore", m.action(actionEmergencyRestore))
				actions.Post("/usage/reset", m.action(actionResetUsage))
			})
		}
		if opts.Audit != nil {
			tenants.Get("/audit", m.getAuditEvents)
		}
	})

	if opts.Usage != nil {
		r.Get("/billing/signals", m.getBillingSignals)
		r.Delete("/billing/signals", m.drainBillingSignals)
	}

	return r
}

type module struct {
	opts RouterOptions
	log  *slog.Logger
}

// render writes the response; at this point the handler has finished,
// so a failed write can only be logged.
func (m *module) render(w http.ResponseWriter, r *http.Request, resp core.Response) {
	if err := resp.Render(w, r); err != nil {
		m.log.ErrorContext(r.Context(), "failed to render response",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
}

// renderError maps domain errors to the JSON error envelope. Unknown
// errors are logged and masked as a bare 500.
func (m *module) renderError(w http.ResponseWriter, r *http.Request, err error) {
	resp, ok := errorResponse(err)
	if !ok {
		m.log.ErrorContext(r.Context(), "unhandled enforcement error",
			slog.String("path", r.URL.Path),
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.Any("error", err))
	}
	m.render(w, r, resp)
}

func tenantIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		return uuid.Nil, core.NewValidationError("tenant_id", "must be a valid UUID")
	}
	return id, nil
}
