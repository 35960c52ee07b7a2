package event

import "log/slog"

// PeerLifecycleHandler logs joins and leaves.
type PeerLifecycleHandler struct {
	log *slog.Logger
}

func NewPeerLifecycleHandler(log *slog.Logger) *PeerLifecycleHandler {
	return &PeerLifecycleHandler{log: log}
}

func (h *PeerLifecycleHandler) Handle(e Event) {
	switch e.Type {
	case PeerJoined:
		h.log.Info("peer joined", "peer", e.PeerID, "name", e.PeerName)
	case PeerLeft:
		h.log.Info("peer left", "peer", e.PeerID, "name", e.PeerName)
	}
}
