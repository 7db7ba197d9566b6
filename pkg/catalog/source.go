package catalog

import "context"

// Source defines how the catalog is loaded into consuming services.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}
