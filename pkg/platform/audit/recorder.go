package audit

import (
	"context"
	"log/slog"
)

// Emitter accepts events from domain code.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Recorder buffers events on a channel consumed by a worker. Emit never
// blocks: when the buffer is full the event is dropped with a warning, since
// audit capture must not slow the request that produced the event.
type Recorder struct {
	inbox  chan Event
	logger *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderLogger sets the logger used for drop warnings.
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) { r.logger = logger }
}

// NewRecorder creates a recorder with the given buffer size.
func NewRecorder(size int, opts ...RecorderOption) *Recorder {
	if size <= 0 {
		size = 256
	}
	r := &Recorder{
		inbox:  make(chan Event, size),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Emit queues the event for background processing. Always returns nil; a
// full buffer drops the event.
func (r *Recorder) Emit(_ context.Context, event Event) error {
	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("audit buffer full, dropping event",
			"action", event.Action,
			"user_id", event.UserID,
		)
	}
	return nil
}

// Inbox exposes the channel for the consuming worker.
func (r *Recorder) Inbox() <-chan Event {
	return r.inbox
}
