// Package transport upgrades raw connections to the session protocol
// and adapts them to the frame interface the runtime consumes.
package transport

import (
	"time"

	"github.com/gorilla/websocket"
)

// ConnOptions bounds a single connection. Zero values disable the
// corresponding limit.
type ConnOptions struct {
	// IdleTimeout bounds the gap between inbound frames. Pong replies
	// count, so a quiet but live client survives as long as keepalive
	// pings are configured below the timeout.
	IdleTimeout time.Duration
	// WriteTimeout bounds each outbound frame write.
	WriteTimeout time.Duration
	// MaxMessageSize caps inbound frame size in bytes.
	MaxMessageSize int64
}

// Conn wraps a websocket connection as a sequence of opaque text
// frames with deadline handling kept out of the session code.
type Conn struct {
	ws   *websocket.Conn
	opts ConnOptions
}

func NewConn(ws *websocket.Conn, opts ConnOptions) *Conn {
	if opts.MaxMessageSize > 0 {
		ws.SetReadLimit(opts.MaxMessageSize)
	}
	if opts.IdleTimeout > 0 {
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(opts.IdleTimeout))
		})
	}
	return &Conn{ws: ws, opts: opts}
}

func (c *Conn) RemoteID() string {
	return c.ws.RemoteAddr().String()
}

func (c *Conn) ReadFrame() ([]byte, error) {
	if c.opts.IdleTimeout > 0 {
		_ = c.ws.SetReadDeadline(time.Now().Add(c.opts.IdleTimeout))
	}
	_, payload, err := c.ws.ReadMessage()
	return payload, err
}

func (c *Conn) WriteFrame(payload []byte) error {
	if c.opts.WriteTimeout > 0 {
		_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.ws.SetReadDeadline(t)
}

func (c *Conn) Ping() error {
	if c.opts.WriteTimeout > 0 {
		_ = c.ws.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

// Close sends a close frame best-effort, then tears the socket down.
func (c *Conn) Close() error {
	_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
	return c.ws.Close()
}
