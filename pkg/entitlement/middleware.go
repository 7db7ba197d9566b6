package entitlement

import (
	"encoding/json"
	"net/http"

	"github.com/schooldesk/schoolkit/pkg/catalog"
	"github.com/schooldesk/schoolkit/pkg/tenant"
)

// DenyHandler renders the response for a failed feature check.
type DenyHandler func(w http.ResponseWriter, r *http.Request, result FeatureCheckResult)

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onDenied DenyHandler
}

// WithOnDenied replaces the default JSON denial response.
func WithOnDenied(fn DenyHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.onDenied = fn
	}
}

// RequireFeature creates HTTP middleware that gates a route on a feature
// check. It expects the tenant middleware to have already placed the
// tenant record in the request context; a missing record is treated as a
// server misconfiguration, not a denial.
//
// Denials respond with 402 when an upgrade would unlock the feature and
// 403 otherwise, carrying the check result as a JSON body.
func RequireFeature(svc Service, feature catalog.FeatureCode, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	config := &middlewareConfig{
		onDenied: defaultDenyHandler,
	}
	for _, opt := range opts {
		opt(config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, ok := tenant.FromContext(r.Context())
			if !ok {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			result := svc.CheckFeature(r.Context(), rec.ID, feature)
			if !result.Available {
				config.onDenied(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func defaultDenyHandler(w http.ResponseWriter, r *http.Request, result FeatureCheckResult) {
	status := http.StatusForbidden
	if result.UpgradeTier != "" {
		status = http.StatusPaymentRequired
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
