// Package runtime coordinates live sessions: the shared registry, the
// broadcast relay and the per-connection session state machine. It
// contains no transport or UI logic.
package runtime

import (
	"sync"

	"chat-relay/contract"
	"chat-relay/errors"
)

// Registry is the concurrency-safe map from connection identity to
// outbound delivery handle, plus the name table populated at handshake.
//
// The lock protects only the maps, never a send: snapshot first, then
// deliver, so one slow peer cannot stall registration of new peers.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]contract.Outbound
	names   map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[string]contract.Outbound),
		names:   make(map[string]string),
	}
}

// Register inserts a freshly handshaken peer. A duplicate identity is
// a programming error: the call fails with ErrDuplicateRegistration
// and the existing entry is left untouched.
func (r *Registry) Register(id, name string, handle contract.Outbound) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handles[id]; ok {
		return errors.ErrDuplicateRegistration
	}
	r.handles[id] = handle
	r.names[id] = name
	return nil
}

// Deregister removes a peer if present and reports whether it actually
// removed something. Both the owning session and the relay call this,
// whichever runs first wins and the other becomes a no-op.
func (r *Registry) Deregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handles[id]; !ok {
		return false
	}
	delete(r.handles, id)
	delete(r.names, id)
	return true
}

// SnapshotTargets copies every live entry except the excluded one under
// a single critical section. Callers send after the lock is released.
func (r *Registry) SnapshotTargets(excluding string) []contract.Target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]contract.Target, 0, len(r.handles))
	for id, handle := range r.handles {
		if id == excluding {
			continue
		}
		targets = append(targets, contract.Target{ID: id, Handle: handle})
	}
	return targets
}

// Name returns the display name captured at handshake, or the empty
// string for an unknown identity.
func (r *Registry) Name(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names[id]
}

// Size returns the number of live peers.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
