package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chat-relay/contract"
)

// SessionFactory builds the session worker for one upgraded
// connection. The server only spawns and logs; session failures stay
// inside the session.
type SessionFactory func(conn contract.Conn) contract.Worker

// Server accepts raw connections, upgrades them to websocket and
// spawns one session per client. It runs as a supervised worker.
type Server struct {
	log        *slog.Logger
	addr       string
	opts       ConnOptions
	upgrader   websocket.Upgrader
	newSession SessionFactory
	httpServer *http.Server

	mu         sync.Mutex
	sessionCtx context.Context
	listenAddr string
	sessions   sync.WaitGroup
}

func NewServer(log *slog.Logger, addr string, opts ConnOptions, newSession SessionFactory) *Server {
	return &Server{
		log:  log,
		addr: addr,
		opts: opts,
		upgrader: websocket.Upgrader{
			// Terminal clients connect without an Origin header;
			// origin policy belongs to whatever terminates TLS.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		newSession: newSession,
	}
}

// Handler exposes the upgrade endpoint, mainly so tests can mount it
// on an httptest server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)
	return mux
}

// Run listens until the context is canceled, then shuts the listener
// down and waits for in-flight sessions to finish their teardown, so
// departure notices and close frames still make it out on shutdown.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listener failed: %w", err)
	}

	s.mu.Lock()
	s.sessionCtx = ctx
	s.listenAddr = listener.Addr().String()
	s.httpServer = &http.Server{Handler: s.Handler()}
	s.mu.Unlock()

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("Listening for incoming connections", "addr", listener.Addr().String())
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)

		drained := make(chan struct{})
		go func() {
			s.sessions.Wait()
			close(drained)
		}()
		select {
		case <-drained:
		case <-shutdownCtx.Done():
			s.log.Warn("Shutdown deadline passed with sessions still draining")
		}
		return nil
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listener failed: %w", err)
		}
		return nil
	}
}

// Addr reports the bound listen address, useful when the configured
// port is 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenAddr
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("Could not upgrade connection", "remote", r.RemoteAddr, "error", err)
		return
	}
	s.log.Info("Connection upgraded", "remote", r.RemoteAddr)

	conn := NewConn(ws, s.opts)
	sess := s.newSession(conn)

	// The request context dies as soon as this handler returns, so the
	// session runs under the server's own context instead.
	s.mu.Lock()
	ctx := s.sessionCtx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	s.sessions.Add(1)
	go func() {
		defer s.sessions.Done()
		if err := sess.Run(ctx); err != nil {
			s.log.Debug("Session ended", "remote", conn.RemoteID(), "error", err)
		}
	}()
}
