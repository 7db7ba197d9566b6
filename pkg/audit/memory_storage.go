package audit

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory implementation of Storage. It keeps at
// most maxEvents entries and trims the oldest when the bound is hit.
// It's useful for testing and single-process deployments.
type MemoryStorage struct {
	mu        sync.RWMutex
	events    []Event
	maxEvents int
}

// NewMemoryStorage creates a bounded in-memory event store. A
// non-positive maxEvents falls back to 10000.
func NewMemoryStorage(maxEvents int) *MemoryStorage {
	if maxEvents <= 0 {
		maxEvents = 10000
	}
	return &MemoryStorage{
		maxEvents: maxEvents,
	}
}

// Store appends the event, trimming the oldest entry when full.
func (s *MemoryStorage) Store(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > s.maxEvents {
		s.events = s.events[len(s.events)-s.maxEvents:]
	}
	return nil
}

// Query returns matching events newest-first.
func (s *MemoryStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Event
	for i := len(s.events) - 1; i >= 0; i-- {
		if matches(criteria, s.events[i]) {
			matched = append(matched, s.events[i])
		}
	}

	if criteria.Cursor != "" {
		matched = afterCursor(matched, criteria.Cursor)
	} else if criteria.Offset > 0 {
		if criteria.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[criteria.Offset:]
	}

	if criteria.Limit > 0 && len(matched) > criteria.Limit {
		matched = matched[:criteria.Limit]
	}
	return matched, nil
}

// Count implements StorageCounter.
func (s *MemoryStorage) Count(ctx context.Context, criteria Criteria) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, event := range s.events {
		if matches(criteria, event) {
			n++
		}
	}
	return n, nil
}

func matches(criteria Criteria, event Event) bool {
	if criteria.EntityID != "" && event.EntityID != criteria.EntityID {
		return false
	}
	if criteria.Action != "" && event.Action != criteria.Action {
		return false
	}
	if criteria.ActorID != "" && event.ActorID != criteria.ActorID {
		return false
	}
	if !criteria.Since.IsZero() && event.CreatedAt.Before(criteria.Since) {
		return false
	}
	if !criteria.Until.IsZero() && event.CreatedAt.After(criteria.Until) {
		return false
	}
	return true
}

// afterCursor drops events up to and including the one with the cursor
// ID. An unknown cursor returns the full slice so a stale page token
// degrades to the first page rather than an empty result.
func afterCursor(events []Event, cursor string) []Event {
	for i, event := range events {
		if event.ID == cursor {
			return events[i+1:]
		}
	}
	return events
}
