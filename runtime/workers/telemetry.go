package workers

import (
	"context"
	"log/slog"

	"chat-relay/domain/event"
)

// TelemetryWorker drains the relay's event channel into the registered
// handlers. Best-effort by construction: the relay drops events rather
// than block on this worker, so handlers may run arbitrarily slowly
// without touching the broadcast path.
type TelemetryWorker struct {
	log      *slog.Logger
	events   chan event.Event
	handlers []event.Handler
}

func NewTelemetryWorker(log *slog.Logger, events chan event.Event, handlers []event.Handler) *TelemetryWorker {
	return &TelemetryWorker{log: log, events: events, handlers: handlers}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry")
			return nil
		case evt := <-w.events:
			w.handle(evt)
		}
	}
}

func (w *TelemetryWorker) handle(evt event.Event) {
	for _, h := range w.handlers {
		h.Handle(evt)
	}
}
