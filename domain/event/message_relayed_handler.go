package event

import (
	"log/slog"
	"sync"
)

// MessageRelayedHandler keeps running delivery counters and logs the
// fan-out outcome of each relayed message.
type MessageRelayedHandler struct {
	mu        sync.Mutex
	log       *slog.Logger
	relayed   uint64
	delivered uint64
}

func NewMessageRelayedHandler(log *slog.Logger) *MessageRelayedHandler {
	return &MessageRelayedHandler{log: log}
}

func (h *MessageRelayedHandler) Handle(e Event) {
	if e.Type != MessageRelayed {
		return
	}

	h.mu.Lock()
	h.relayed++
	h.delivered += uint64(e.Delivered)
	relayed, delivered := h.relayed, h.delivered
	h.mu.Unlock()

	h.log.Debug("message relayed",
		"sender", e.PeerName,
		"delivered", e.Delivered,
		"total_relayed", relayed,
		"total_delivered", delivered,
	)
}

// Totals returns the number of messages relayed and the number of
// per-peer deliveries performed so far.
func (h *MessageRelayedHandler) Totals() (uint64, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.relayed, h.delivered
}
