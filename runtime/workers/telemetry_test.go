package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"chat-relay/domain/event"
)

type captureHandler struct {
	seen chan event.Event
}

func (h *captureHandler) Handle(e event.Event) {
	h.seen <- e
}

func TestTelemetryWorker_FansOutToHandlers(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	events := make(chan event.Event, 8)
	handler := &captureHandler{seen: make(chan event.Event, 8)}

	worker := NewTelemetryWorker(log, events, []event.Handler{handler})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	// When an event is emitted
	events <- event.Event{Type: event.PeerJoined, PeerID: "a", PeerName: "Alice"}

	// Then the handler observes it
	select {
	case evt := <-handler.seen:
		req.Equal(event.PeerJoined, evt.Type)
		req.Equal("Alice", evt.PeerName)
	case <-time.After(time.Second):
		req.Fail("handler never saw the event")
	}
}
