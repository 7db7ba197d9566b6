package catalog

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
)

// inMemSource implements the Source interface using an in-memory definition.
type inMemSource struct {
	mu  sync.RWMutex
	def Definition
}

// NewInMemSource returns an in-memory Source with a deep copy of the given definition.
func NewInMemSource(def Definition) Source {
	return &inMemSource{def: cloneDefinition(def)}
}

// Load validates the held definition and returns a fresh Catalog.
func (s *inMemSource) Load(ctx context.Context) (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cat, err := New(s.def)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	return cat, nil
}

func cloneDefinition(def Definition) Definition {
	tiers := make(map[Tier]TierDefinition, len(def.Tiers))
	for tier, td := range def.Tiers {
		tiers[tier] = TierDefinition{
			Features: slices.Clone(td.Features),
			Limits:   maps.Clone(td.Limits),
		}
	}

	categories := make(map[string][]FeatureCode, len(def.Categories))
	for name, codes := range def.Categories {
		categories[name] = slices.Clone(codes)
	}

	return Definition{Tiers: tiers, Categories: categories}
}
