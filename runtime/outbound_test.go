package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/errors"
)

func TestOutboundQueue_Full_Is_A_Failure(t *testing.T) {
	req := require.New(t)
	queue := NewOutboundQueue(1)

	// Given the queue is at capacity
	req.NoError(queue.Enqueue(domain.NewChatMessage("a", "Alice", "1")))

	// When one more message is enqueued
	err := queue.Enqueue(domain.NewChatMessage("a", "Alice", "2"))

	// Then the enqueue fails instead of blocking
	req.ErrorIs(err, errors.ErrOutboundFull)
}

func TestOutboundQueue_Closed_Rejects_Producers(t *testing.T) {
	req := require.New(t)
	queue := NewOutboundQueue(1)

	// Given the consumer has torn down
	queue.Close()

	// When a producer races with the close
	err := queue.Enqueue(domain.NewChatMessage("a", "Alice", "1"))

	// Then it gets an error, not a panic
	req.ErrorIs(err, errors.ErrOutboundClosed)
}

func TestOutboundQueue_Close_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	queue := NewOutboundQueue(1)
	req.NoError(queue.Enqueue(domain.NewChatMessage("a", "Alice", "1")))

	queue.Close()
	queue.Close()

	// Buffered messages stay readable after close
	msg, ok := <-queue.Receive()
	req.True(ok)
	req.Equal("1", msg.Body)

	_, ok = <-queue.Receive()
	req.False(ok)
}

func TestOutboundQueue_FIFO_Per_Receiver(t *testing.T) {
	req := require.New(t)
	queue := NewOutboundQueue(8)

	// Given two messages from the same sender
	req.NoError(queue.Enqueue(domain.NewChatMessage("a", "Alice", "1")))
	req.NoError(queue.Enqueue(domain.NewChatMessage("a", "Alice", "2")))

	// Then the consumer observes them in send order
	first := <-queue.Receive()
	second := <-queue.Receive()
	req.Equal("1", first.Body)
	req.Equal("2", second.Body)
}
