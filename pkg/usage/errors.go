package usage

import "errors"

// Domain errors for usage tracking operations
var (
	ErrInvalidAmount = errors.New("usage.errors.invalid_amount")
)
