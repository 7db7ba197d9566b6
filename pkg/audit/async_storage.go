package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// storageTimeout bounds each background write so a stalled backend
// cannot wedge the worker.
const storageTimeout = 5 * time.Second

// asyncStorage decouples event recording from storage latency. Store
// queues the event and returns immediately; a single worker drains the
// queue in the background. When the queue is full the event is dropped
// and counted, keeping administrative actions unblocked at the cost of
// a gap in the trail.
type asyncStorage struct {
	next    Storage
	events  chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	log     *slog.Logger
	dropped atomic.Uint64
	closed  atomic.Bool
}

func newAsyncStorage(next Storage, bufferSize int, log *slog.Logger) *asyncStorage {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	if log == nil {
		log = slog.Default()
	}

	s := &asyncStorage{
		next:   next,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
		log:    log,
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

// Store queues the event for background writing. It never blocks: a
// full buffer drops the event with a warning instead.
func (s *asyncStorage) Store(ctx context.Context, event Event) error {
	if s.closed.Load() {
		return ErrStorageNotAvailable
	}

	select {
	case s.events <- event:
		return nil
	default:
		dropped := s.dropped.Add(1)
		s.log.Warn("audit buffer full, event dropped",
			slog.String("action", event.Action),
			slog.String("entity_id", event.EntityID),
			slog.Uint64("total_dropped", dropped))
		return nil
	}
}

// Query reads from the underlying storage directly. Events still in the
// buffer are not visible until the worker writes them.
func (s *asyncStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	return s.next.Query(ctx, criteria)
}

// Dropped returns how many events have been discarded due to a full buffer.
func (s *asyncStorage) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *asyncStorage) worker() {
	defer s.wg.Done()

	for {
		select {
		case event := <-s.events:
			s.write(event)
		case <-s.done:
			// Drain whatever arrived before the close was observed.
			for {
				select {
				case event := <-s.events:
					s.write(event)
				default:
					return
				}
			}
		}
	}
}

func (s *asyncStorage) write(event Event) {
	// Detached from caller contexts; the caller already returned.
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	if err := s.next.Store(ctx, event); err != nil {
		s.log.Warn("audit event write failed",
			slog.String("action", event.Action),
			slog.String("event_id", event.ID),
			slog.Any("error", err))
	}
}

// Close stops accepting events and flushes the buffer. The context
// bounds the flush; events still queued when it expires are lost.
func (s *asyncStorage) Close(ctx context.Context) error {
	if s.closed.Swap(true) {
		return nil
	}
	close(s.done)

	flushed := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(flushed)
	}()

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
