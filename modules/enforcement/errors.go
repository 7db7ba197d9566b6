package enforcement

import (
	"errors"

	"github.com/schooldesk/schoolkit/core"
	"github.com/schooldesk/schoolkit/pkg/entitlement"
	"github.com/schooldesk/schoolkit/pkg/restriction"
	"github.com/schooldesk/schoolkit/pkg/tenant"
	"github.com/schooldesk/schoolkit/pkg/usage"
	"github.com/schooldesk/schoolkit/pkg/validator"
)

// errorResponse translates domain errors into HTTP error responses.
// The second return reports whether the error was recognized; callers
// log unrecognized errors before sending the masked 500.
func errorResponse(err error) (core.Response, bool) {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, entitlement.ErrTenantNotFound):
		return core.JSONError(core.ErrNotFound), true
	case errors.Is(err, usage.ErrInvalidAmount):
		return core.JSONError(core.NewValidationError("amount", "must not be negative")), true
	case errors.Is(err, restriction.ErrUnknownCategory):
		return core.JSONError(core.NewValidationError("category", "unknown feature category")), true
	case errors.Is(err, restriction.ErrUsageTrackingNotConfigured):
		return core.JSONError(core.ErrServiceUnavailable), true
	}

	var validation core.ValidationError
	if errors.As(err, &validation) {
		return core.JSONError(validation), true
	}
	if fieldErrs := validator.ExtractValidationErrors(err); fieldErrs != nil {
		mapped := core.ValidationError{}
		for _, fe := range fieldErrs {
			mapped.Add(fe.Field, fe.Message)
		}
		return core.JSONError(mapped), true
	}
	var httpErr core.HTTPError
	if errors.As(err, &httpErr) {
		return core.JSONError(httpErr), true
	}

	return core.JSONError(core.ErrInternalServerError), false
}
