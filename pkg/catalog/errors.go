package catalog

import "errors"

// Domain errors for catalog operations
var (
	ErrUnknownTier          = errors.New("catalog.errors.unknown_tier")
	ErrUnknownLimitKind     = errors.New("catalog.errors.unknown_limit_kind")
	ErrUnknownResetPeriod   = errors.New("catalog.errors.unknown_reset_period")
	ErrInvalidLimit         = errors.New("catalog.errors.invalid_limit")
	ErrInvalidWarnThreshold = errors.New("catalog.errors.invalid_warn_threshold")
	ErrInvalidOverageRate   = errors.New("catalog.errors.invalid_overage_rate")
	ErrFailedToLoadCatalog  = errors.New("catalog.errors.failed_to_load_catalog")
)
