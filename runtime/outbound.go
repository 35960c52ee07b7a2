package runtime

import (
	"sync"

	"chat-relay/domain"
	"chat-relay/errors"
)

// OutboundQueue is a session's delivery queue: many producers (the
// relay, on behalf of every other session) and a single consumer (the
// owning session's outbound pump).
//
// Enqueue never blocks. A full queue is treated as a failed delivery
// rather than backpressure; the relay prunes the peer in response.
type OutboundQueue struct {
	mu     sync.Mutex
	ch     chan domain.ChatMessage
	closed bool
}

func NewOutboundQueue(size int) *OutboundQueue {
	return &OutboundQueue{ch: make(chan domain.ChatMessage, size)}
}

func (q *OutboundQueue) Enqueue(msg domain.ChatMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errors.ErrOutboundClosed
	}
	select {
	case q.ch <- msg:
		return nil
	default:
		return errors.ErrOutboundFull
	}
}

// Receive exposes the consumer end. The channel is closed by Close, so
// the outbound pump can simply range over it.
func (q *OutboundQueue) Receive() <-chan domain.ChatMessage {
	return q.ch
}

// Close is idempotent. Producers racing with Close get
// ErrOutboundClosed instead of a send on a closed channel.
func (q *OutboundQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.ch)
	}
}
