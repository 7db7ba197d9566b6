// Package audit records administrative actions against tenants as an
// append-only trail of events. The restriction service writes to it on
// every suspend, read-only, feature and emergency action; operators
// read it back when reconstructing what happened to an account.
//
// # Architecture
//
//   - Logger – records events, assigns IDs and timestamps
//   - Storage – pluggable persistence (memory, Postgres, MongoDB)
//   - Reader – criteria queries with cursor pagination
//   - Event – immutable entry: action, entity, actor, metadata
//
// # Usage
//
//	storage := audit.NewMemoryStorage(10000)
//	logger := audit.NewLogger(storage)
//
//	err := logger.Log(ctx, "tenant.suspend",
//	    audit.WithEntity("tenant", tenantID.String()),
//	    audit.WithActor(actorID.String()),
//	    audit.WithDescription("non-payment"),
//	    audit.WithMetadata("previous_status", "active"),
//	)
//
//	reader := audit.NewReader(storage)
//	events, err := reader.Find(ctx, audit.Criteria{
//	    EntityID: tenantID.String(),
//	    Since:    time.Now().Add(-24 * time.Hour),
//	    Limit:    100,
//	})
//
// # Asynchronous Logging
//
// Audit writes sit on the critical path of administrative actions, so
// the logger can buffer them:
//
//	logger, closeFn := audit.NewAsyncLogger(storage, 1000)
//	defer closeFn(ctx)
//
// Buffered writes never block: when the buffer is full the event is
// dropped and counted rather than stalling the action that produced it.
// NewAsyncLogger returns a close function that flushes the buffer on
// shutdown; the WithAsyncBuffer option provides the same buffering
// without a flush hook for processes that never shut down cleanly.
//
// # Storage Backends
//
// NewMemoryStorage keeps a bounded in-memory window and suits tests.
// NewPostgresStorage writes to the audit_log table next to the tenant
// records. NewMongoStorage appends to a MongoDB collection for long
// retention archives. All three implement StorageCounter, so
// Reader.Count pushes counting down instead of loading events.
package audit
