package restriction

import "errors"

var (
	ErrFailedToLoadTenant         = errors.New("restriction.errors.failed_to_load_tenant")
	ErrFailedToApplyAction        = errors.New("restriction.errors.failed_to_apply_action")
	ErrUnknownCategory            = errors.New("restriction.errors.unknown_category")
	ErrUsageTrackingNotConfigured = errors.New("restriction.errors.usage_tracking_not_configured")
)
