package tenant

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of Store and Provider.
// It's useful for testing and simple applications.
type MemoryStore struct {
	records map[uuid.UUID]*Record
	mu      sync.RWMutex
}

// NewMemoryStore creates an in-memory tenant store seeded with the given records.
func NewMemoryStore(seed ...*Record) *MemoryStore {
	store := &MemoryStore{
		records: make(map[uuid.UUID]*Record, len(seed)),
	}

	for _, record := range seed {
		if record == nil {
			continue
		}
		clone := record.Clone()
		if clone.CreatedAt.IsZero() {
			clone.CreatedAt = time.Now()
		}
		if clone.UpdatedAt.IsZero() {
			clone.UpdatedAt = clone.CreatedAt
		}
		store.records[clone.ID] = clone
	}

	return store
}

// Get returns a copy of the record for the given tenant ID.
func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	s.mu.RLock()
	record, exists := s.records[id]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrTenantNotFound
	}
	return record.Clone(), nil
}

// Update replaces the stored record with a copy of the given one.
func (s *MemoryStore) Update(ctx context.Context, record *Record) error {
	if record == nil {
		return ErrTenantNotFound
	}
	if err := record.Validate(); err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.records[record.ID]
	if !exists {
		return ErrTenantNotFound
	}

	clone := record.Clone()
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now()
	s.records[record.ID] = clone

	return nil
}

// GetByIdentifier looks a tenant up by ID string or subdomain.
func (s *MemoryStore) GetByIdentifier(ctx context.Context, identifier string) (*Record, error) {
	if identifier == "" {
		return nil, ErrInvalidIdentifier
	}

	if id, err := uuid.Parse(identifier); err == nil {
		return s.Get(ctx, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.Subdomain == identifier {
			return record.Clone(), nil
		}
	}
	return nil, ErrTenantNotFound
}
