package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type logger struct {
	storage         Storage
	log             *slog.Logger
	asyncBufferSize int
}

// Option configures Logger behavior during initialization.
type Option func(*logger)

// WithAsyncBuffer makes the logger write through an in-memory buffer of
// the given size. Writes become non-blocking; events that arrive while
// the buffer is full are dropped and counted. Use NewAsyncLogger instead
// when the application needs to flush the buffer on shutdown.
func WithAsyncBuffer(size int) Option {
	return func(l *logger) {
		l.asyncBufferSize = size
	}
}

// WithLogger sets the slog logger used to report dropped events and
// failed writes. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(l *logger) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLogger creates a new audit logger backed by the given storage.
func NewLogger(storage Storage, opts ...Option) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &logger{
		storage: storage,
		log:     slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.asyncBufferSize > 0 {
		l.storage = newAsyncStorage(l.storage, l.asyncBufferSize, l.log)
	}

	return l
}

// NewAsyncLogger creates a buffered audit logger together with a close
// function that flushes buffered events. The close function's context
// bounds the flush; events still unwritten when it expires are lost.
func NewAsyncLogger(storage Storage, bufferSize int, opts ...Option) (Logger, func(context.Context) error) {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}

	l := &logger{
		storage: storage,
		log:     slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	async := newAsyncStorage(l.storage, bufferSize, l.log)
	l.storage = async

	return l, async.Close
}

// Log records an action.
func (l *logger) Log(ctx context.Context, action string, opts ...EventOption) error {
	event := Event{
		ID:        uuid.New().String(),
		Action:    action,
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(&event)
	}

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}
