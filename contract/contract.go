//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"chat-relay/domain"
)

// Conn is one upgraded client connection seen as a sequence of opaque
// text frames. Implementations own deadlines and framing; callers only
// see frames.
type Conn interface {
	// RemoteID returns the opaque connection identity, stable for the
	// lifetime of the connection.
	RemoteID() string
	ReadFrame() ([]byte, error)
	WriteFrame(payload []byte) error
	// SetReadDeadline bounds the next ReadFrame. The zero time clears it.
	SetReadDeadline(t time.Time) error
	Ping() error
	Close() error
}

// Outbound is the producer end of a session's delivery queue.
// Enqueue never blocks: a full or closed queue is a delivery failure,
// not backpressure.
type Outbound interface {
	Enqueue(msg domain.ChatMessage) error
}

// Target pairs a live peer's identity with its delivery handle, as
// copied out of the registry under its lock.
type Target struct {
	ID     string
	Handle Outbound
}

type IRegistry interface {
	Register(id, name string, handle Outbound) error
	Deregister(id string) bool
	SnapshotTargets(excluding string) []Target
	Name(id string) string
	Size() int
}

type IRelay interface {
	Broadcast(msg domain.ChatMessage)
	AnnounceJoin(id, name string)
	AnnounceLeave(id, name string)
}

type WorkerName string

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding the need for manual naming in the Worker
// interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}
