package audit

import (
	"context"
	"log/slog"
)

// Sink forwards events to an external system, e.g. Kafka. Sink failures are
// logged and skipped: the local store stays the durable record.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Worker consumes audit events from a channel, persists them, and forwards
// them to the optional sink.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
			if w.sink == nil {
				continue
			}
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit sink publish failed",
					"action", event.Action,
					"deed_id", event.DeedID,
					"error", err,
				)
			}
		}
	}
}
