// Package event defines relay lifecycle events and their handlers.
// Events are best-effort telemetry: losing one must never block or
// abort the broadcast path that produced it.
package event

import "time"

type Type string

const (
	PeerJoined      Type = "peer_joined"
	PeerLeft        Type = "peer_left"
	MessageRelayed  Type = "message_relayed"
	DeliveryDropped Type = "delivery_dropped"
)

// Event carries what happened on the relay path.
// Delivered and Dropped are only meaningful for MessageRelayed and
// DeliveryDropped events.
type Event struct {
	Type      Type
	PeerID    string
	PeerName  string
	At        time.Time
	Delivered int
	Dropped   int
}

type Handler interface {
	Handle(e Event)
}
