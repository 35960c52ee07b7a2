package event

import (
	"log/slog"
	"sync"
)

// DeliveryDropHandler counts peers pruned because their outbound queue
// was closed or full at fan-out time.
type DeliveryDropHandler struct {
	mu      sync.Mutex
	log     *slog.Logger
	dropped uint64
}

func NewDeliveryDropHandler(log *slog.Logger) *DeliveryDropHandler {
	return &DeliveryDropHandler{log: log}
}

func (h *DeliveryDropHandler) Handle(e Event) {
	if e.Type != DeliveryDropped {
		return
	}

	h.mu.Lock()
	h.dropped += uint64(e.Dropped)
	total := h.dropped
	h.mu.Unlock()

	h.log.Warn("unreachable peers pruned during broadcast",
		"sender", e.PeerName,
		"dropped", e.Dropped,
		"total_dropped", total,
	)
}

func (h *DeliveryDropHandler) Total() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}
