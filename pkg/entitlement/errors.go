package entitlement

import "errors"

// Domain errors for entitlement operations
var (
	ErrTenantNotFound      = errors.New("entitlement.errors.tenant_not_found")
	ErrFailedToResolve     = errors.New("entitlement.errors.failed_to_resolve")
	ErrFailedToLoadCatalog = errors.New("entitlement.errors.failed_to_load_catalog")
)
