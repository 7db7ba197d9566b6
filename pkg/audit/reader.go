package audit

import "context"

type reader struct {
	storage Storage
}

// NewReader creates a new audit reader over the given storage.
func NewReader(storage Storage) Reader {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	return &reader{storage: storage}
}

// Find retrieves audit events based on the criteria.
func (r *reader) Find(ctx context.Context, criteria Criteria) ([]Event, error) {
	return r.storage.Query(ctx, criteria)
}

// FindWithCursor retrieves audit events with cursor-based pagination.
func (r *reader) FindWithCursor(ctx context.Context, criteria Criteria, cursor string) ([]Event, string, error) {
	paged := criteria
	paged.Cursor = cursor
	if cursor != "" {
		paged.Offset = 0
	}

	events, err := r.storage.Query(ctx, paged)
	if err != nil {
		return nil, "", err
	}

	// A full page may have more behind it; a short page is the last one.
	nextCursor := ""
	if criteria.Limit > 0 && len(events) == criteria.Limit {
		nextCursor = events[len(events)-1].ID
	}

	return events, nextCursor, nil
}

// Count returns the count of audit events matching the criteria. When
// the storage implements StorageCounter the count is pushed down;
// otherwise events are loaded and counted here.
func (r *reader) Count(ctx context.Context, criteria Criteria) (int64, error) {
	if counter, ok := r.storage.(StorageCounter); ok {
		return counter.Count(ctx, criteria)
	}

	events, err := r.storage.Query(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return int64(len(events)), nil
}
