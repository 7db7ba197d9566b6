package audit

import (
	"context"
	"time"
)

// Logger records audit events. Implementations must be safe for
// concurrent use.
type Logger interface {
	// Log records an action against an entity. The action name is
	// required; everything else comes in through options.
	Log(ctx context.Context, action string, opts ...EventOption) error
}

// Storage persists audit events and serves criteria queries.
// Query returns events newest-first.
type Storage interface {
	Store(ctx context.Context, event Event) error
	Query(ctx context.Context, criteria Criteria) ([]Event, error)
}

// StorageCounter is an optional storage extension for backends that can
// count matching events without loading them.
type StorageCounter interface {
	Count(ctx context.Context, criteria Criteria) (int64, error)
}

// Reader provides read access to recorded events.
type Reader interface {
	// Find retrieves events matching the criteria, newest-first.
	Find(ctx context.Context, criteria Criteria) ([]Event, error)

	// FindWithCursor pages through matching events. The returned cursor
	// is empty when no further pages exist.
	FindWithCursor(ctx context.Context, criteria Criteria, cursor string) ([]Event, string, error)

	// Count returns the number of events matching the criteria.
	Count(ctx context.Context, criteria Criteria) (int64, error)
}

// Criteria narrows event queries. Zero-valued fields match everything,
// so an empty Criteria returns all events up to Limit.
type Criteria struct {
	EntityID string
	Action   string
	ActorID  string
	Since    time.Time
	Until    time.Time
	Limit    int
	Offset   int

	// Cursor resumes a paged query after the event with this ID.
	// Set by Reader.FindWithCursor; takes precedence over Offset.
	Cursor string
}
