package audit

import (
	"context"
	"log/slog"

	"landregistry/pkg/requestcontext"
)

// DefaultInboxSize bounds the audit buffer: large enough to absorb request
// bursts, small enough to cap memory.
const DefaultInboxSize = 1024

// Publisher accepts audit events from domain logic and hands them to the
// worker's inbox. Emit never blocks the request path: when the inbox is full
// the event is dropped and logged, not awaited.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"action", event.Action,
			"deed_id", event.DeedID,
		)
	}
	return nil
}

// NopPublisher discards every event; used when auditing is not configured.
type NopPublisher struct{}

func (NopPublisher) Emit(context.Context, Event) error { return nil }
