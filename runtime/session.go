package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/wire"
)

// SessionState tracks where a connection is in its lifecycle.
// Connected → Handshaking → Active → Closed, with an early jump to
// Closed when the handshake never completes.
type SessionState int32

const (
	StateConnected SessionState = iota
	StateHandshaking
	StateActive
	StateClosed
)

// SessionOptions carries the tunables a session needs. Zero durations
// disable the corresponding deadline.
type SessionOptions struct {
	OutboundBufferSize int
	HandshakeTimeout   time.Duration
	PingInterval       time.Duration
	MaxNameLength      int
}

// Session owns one connection's lifecycle: handshake, inbound pump,
// outbound pump, teardown. Sessions are independent; the only things a
// session shares are the registry and the outbound handles it reaches
// through the relay.
type Session struct {
	log      *slog.Logger
	conn     contract.Conn
	registry contract.IRegistry
	relay    contract.IRelay
	outbound *OutboundQueue
	validate *validator.Validate
	opts     SessionOptions

	id        string
	name      string
	state     atomic.Int32
	nameRules string
}

func NewSession(log *slog.Logger, conn contract.Conn, registry contract.IRegistry,
	relay contract.IRelay, opts SessionOptions) *Session {
	if opts.MaxNameLength <= 0 {
		opts.MaxNameLength = 64
	}
	return &Session{
		log:       log,
		conn:      conn,
		registry:  registry,
		relay:     relay,
		outbound:  NewOutboundQueue(opts.OutboundBufferSize),
		validate:  validator.New(),
		opts:      opts,
		id:        conn.RemoteID(),
		nameRules: fmt.Sprintf("required,ne=%s,max=%d", domain.SystemName, opts.MaxNameLength),
	}
}

func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// Run drives the state machine until the peer goes away. It returns
// ErrHandshakeFailed or ErrPeerDisconnected (wrapped); the caller only
// logs, one session's failure has no effect on others beyond the
// best-effort departure notice.
func (s *Session) Run(ctx context.Context) error {
	defer s.conn.Close()
	defer s.outbound.Close()

	name, err := s.handshake()
	if err != nil {
		// Never registered: no notice, the relay never saw this peer.
		s.state.Store(int32(StateClosed))
		return err
	}
	s.name = name

	if err := s.registry.Register(s.id, name, s.outbound); err != nil {
		s.state.Store(int32(StateClosed))
		return fmt.Errorf("registering %s: %w", s.id, err)
	}
	s.state.Store(int32(StateActive))
	s.relay.AnnounceJoin(s.id, name)
	s.log.Info("Peer active", "peer", s.id, "name", name)

	// Both pumps race; the first terminal failure wins and drives
	// teardown, which in turn unblocks the surviving pump.
	pumpErr := make(chan error, 2)
	go func() { pumpErr <- s.inboundPump(ctx) }()
	go func() { pumpErr <- s.outboundPump(ctx) }()

	err = <-pumpErr
	s.teardown()
	<-pumpErr

	if ctx.Err() != nil {
		return nil
	}
	return err
}

// handshake waits for exactly one frame and interprets it as the
// display name. Names are cosmetic: non-blank and bounded, duplicates
// allowed. The reserved notice sender name is refused here, which is
// what keeps it unreachable for peers.
func (s *Session) handshake() (string, error) {
	s.state.Store(int32(StateHandshaking))

	if s.opts.HandshakeTimeout > 0 {
		_ = s.conn.SetReadDeadline(time.Now().Add(s.opts.HandshakeTimeout))
		defer func() { _ = s.conn.SetReadDeadline(time.Time{}) }()
	}

	payload, err := s.conn.ReadFrame()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrHandshakeFailed, err)
	}
	body, err := wire.Body(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrHandshakeFailed, err)
	}

	name := strings.TrimSpace(body)
	if err := s.validate.Var(name, s.nameRules); err != nil {
		return "", fmt.Errorf("%w: invalid display name: %v", errors.ErrHandshakeFailed, err)
	}
	return name, nil
}

// inboundPump reads frames and hands them to the relay stamped with
// this session's identity. A frame that fails to decode is logged and
// skipped; the malformed-message policy is per-frame, not
// per-connection.
func (s *Session) inboundPump(ctx context.Context) error {
	for {
		payload, err := s.conn.ReadFrame()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: read: %v", errors.ErrPeerDisconnected, err)
		}

		body, err := wire.Body(payload)
		if err != nil {
			s.log.Debug("Malformed frame received, ignoring", "peer", s.id, "error", err)
			continue
		}

		s.relay.Broadcast(domain.NewChatMessage(s.id, s.name, body))
	}
}

// outboundPump drains this session's own queue onto the wire,
// interleaved with keepalive pings when configured.
func (s *Session) outboundPump(ctx context.Context) error {
	var pings <-chan time.Time
	if s.opts.PingInterval > 0 {
		ticker := time.NewTicker(s.opts.PingInterval)
		defer ticker.Stop()
		pings = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-s.outbound.Receive():
			if !ok {
				// Queue closed during teardown.
				return nil
			}
			frame, err := wire.Encode(msg)
			if err != nil {
				s.log.Error("Could not encode outgoing message", "peer", s.id, "error", err)
				continue
			}
			if err := s.conn.WriteFrame(frame); err != nil {
				return fmt.Errorf("%w: write: %v", errors.ErrPeerDisconnected, err)
			}
		case <-pings:
			if err := s.conn.Ping(); err != nil {
				return fmt.Errorf("%w: ping: %v", errors.ErrPeerDisconnected, err)
			}
		}
	}
}

// teardown runs exactly once. The relay may already have pruned this
// session after a failed delivery, which is why Deregister is
// idempotent; the departure notice stays best-effort either way.
func (s *Session) teardown() {
	if !s.state.CompareAndSwap(int32(StateActive), int32(StateClosed)) {
		return
	}

	removed := s.registry.Deregister(s.id)
	if !removed {
		s.log.Debug("Peer already removed by relay", "peer", s.id)
	}
	s.relay.AnnounceLeave(s.id, s.name)
	s.outbound.Close()
	_ = s.conn.Close()
}
