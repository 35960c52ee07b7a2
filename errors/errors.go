package errors

import "fmt"

var (
	// ErrDuplicateRegistration signals a programming error: two live
	// sessions tried to claim the same connection identity.
	ErrDuplicateRegistration = fmt.Errorf("duplicate registration")

	ErrHandshakeFailed  = fmt.Errorf("handshake failed")
	ErrPeerDisconnected = fmt.Errorf("peer disconnected")
	ErrMalformedFrame   = fmt.Errorf("malformed frame")

	ErrOutboundFull   = fmt.Errorf("outbound queue full")
	ErrOutboundClosed = fmt.Errorf("outbound queue closed")

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
