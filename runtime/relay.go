package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
)

// Relay fans one message out to every live peer except its originator
// and prunes peers whose delivery fails. This is the system's only
// many-to-many operation; its cost is O(live peers) per message.
type Relay struct {
	log      *slog.Logger
	registry contract.IRegistry
	events   chan event.Event
}

// NewRelay wires the relay to the shared registry. The events channel
// is optional telemetry; a nil or full channel never blocks a
// broadcast.
func NewRelay(log *slog.Logger, registry contract.IRegistry, events chan event.Event) *Relay {
	return &Relay{log: log, registry: registry, events: events}
}

// Broadcast delivers msg to every registered peer except the sender.
// A failed enqueue on one target never prevents delivery to the
// others; failed targets are deregistered once, after the fan-out
// loop. That deregistration may race with the peer's own teardown,
// which is fine because Deregister is idempotent.
func (r *Relay) Broadcast(msg domain.ChatMessage) {
	targets := r.registry.SnapshotTargets(msg.SenderID)

	var failed []string
	for _, target := range targets {
		if err := target.Handle.Enqueue(msg); err != nil {
			r.log.Error(fmt.Sprintf("Could not broadcast message to %s", target.ID), "error", err)
			failed = append(failed, target.ID)
		}
	}

	for _, id := range failed {
		if r.registry.Deregister(id) {
			r.log.Debug("Removed unreachable peer", "peer", id)
		}
	}

	// Synthesized notices are already counted by their own
	// PeerJoined/PeerLeft events; only peer traffic counts as relayed.
	if !msg.IsSystem() {
		r.emit(event.Event{
			Type:      event.MessageRelayed,
			PeerID:    msg.SenderID,
			PeerName:  msg.SenderName,
			At:        time.Now(),
			Delivered: len(targets) - len(failed),
			Dropped:   len(failed),
		})
	}
	if len(failed) > 0 {
		r.emit(event.Event{
			Type:     event.DeliveryDropped,
			PeerID:   msg.SenderID,
			PeerName: msg.SenderName,
			At:       time.Now(),
			Dropped:  len(failed),
		})
	}
}

// AnnounceJoin broadcasts the entry notice for a freshly registered
// peer. The notice carries the peer's own id, so the peer does not
// receive its own announcement.
func (r *Relay) AnnounceJoin(id, name string) {
	r.Broadcast(domain.NewSystemNotice(id, fmt.Sprintf("%s has entered the channel", name)))
	r.emit(event.Event{Type: event.PeerJoined, PeerID: id, PeerName: name, At: time.Now()})
}

// AnnounceLeave broadcasts the exit notice. Best effort: by the time
// it runs the peer is already gone from the registry.
func (r *Relay) AnnounceLeave(id, name string) {
	r.Broadcast(domain.NewSystemNotice(id, fmt.Sprintf("%s has exited the channel", name)))
	r.emit(event.Event{Type: event.PeerLeft, PeerID: id, PeerName: name, At: time.Now()})
}

func (r *Relay) emit(e event.Event) {
	if r.events == nil {
		return
	}
	select {
	case r.events <- e:
	default:
		r.log.Debug("Telemetry event lost", "type", e.Type)
	}
}
