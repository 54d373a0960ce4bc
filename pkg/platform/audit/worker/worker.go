package worker

import (
	"context"
	"log/slog"

	audit "tutela/pkg/platform/audit"
)

// Worker consumes audit events from a channel, persists them, and forwards
// stored events to an optional sink. Store failures are logged and the event
// is dropped rather than retried.
type Worker struct {
	store  audit.Store
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

// Option configures a Worker.
type Option func(*Worker)

// WithSink forwards stored events to an external stream.
func WithSink(sink audit.Sink) Option {
	return func(w *Worker) { w.sink = sink }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

// NewWorker builds a worker over the store and inbox channel.
func NewWorker(store audit.Store, inbox <-chan audit.Event, opts ...Option) *Worker {
	w := &Worker{store: store, inbox: inbox, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run processes events until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.Error("audit append failed",
					"action", event.Action,
					"user_id", event.UserID,
					"error", err,
				)
				continue
			}
			if w.sink != nil {
				if err := w.sink.Publish(ctx, event); err != nil {
					w.logger.Warn("audit stream publish failed",
						"action", event.Action,
						"user_id", event.UserID,
						"error", err,
					)
				}
			}
		}
	}
}
