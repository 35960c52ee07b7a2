package runtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chat-relay/errors"
)

func TestRegistry_Register_One_Peer(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()
	queue := NewOutboundQueue(1)

	// Given no peer is connected
	req.Zero(registry.Size())

	// When a peer registers
	err := registry.Register(id, "Alice", queue)

	// Then
	req.NoError(err)
	req.Equal(1, registry.Size())
	req.Equal("Alice", registry.Name(id))
}

func TestRegistry_Register_Duplicate_Identity(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()

	// Given a registered peer
	req.NoError(registry.Register(id, "Alice", NewOutboundQueue(1)))

	// When the same identity registers again
	err := registry.Register(id, "Impostor", NewOutboundQueue(1))

	// Then the call fails and the original entry is untouched
	req.ErrorIs(err, errors.ErrDuplicateRegistration)
	req.Equal(1, registry.Size())
	req.Equal("Alice", registry.Name(id))
}

func TestRegistry_Deregister_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	id := uuid.NewString()

	// Given a registered peer
	req.NoError(registry.Register(id, "Alice", NewOutboundQueue(1)))

	// When the peer is removed twice
	first := registry.Deregister(id)
	second := registry.Deregister(id)

	// Then only the first call removed something
	req.True(first)
	req.False(second)
	req.Zero(registry.Size())
}

func TestRegistry_Deregister_Unknown_Identity(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// Given another peer is registered
	req.NoError(registry.Register(uuid.NewString(), "Alice", NewOutboundQueue(1)))

	// When an unknown identity is removed
	removed := registry.Deregister(uuid.NewString())

	// Then nothing changed
	req.False(removed)
	req.Equal(1, registry.Size())
}

func TestRegistry_SnapshotTargets_Excludes_Sender(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	alice := uuid.NewString()
	bob := uuid.NewString()
	carol := uuid.NewString()

	req.NoError(registry.Register(alice, "Alice", NewOutboundQueue(1)))
	req.NoError(registry.Register(bob, "Bob", NewOutboundQueue(1)))
	req.NoError(registry.Register(carol, "Carol", NewOutboundQueue(1)))

	// When snapshotting on behalf of Alice
	targets := registry.SnapshotTargets(alice)

	// Then every peer but Alice is present
	req.Len(targets, 2)
	ids := []string{targets[0].ID, targets[1].ID}
	req.ElementsMatch([]string{bob, carol}, ids)
}

func TestRegistry_SnapshotTargets_Empty(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// When snapshotting an empty registry
	targets := registry.SnapshotTargets(uuid.NewString())

	// Then there is nothing to deliver to
	req.Empty(targets)
}
