package client

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"chat-relay/domain"
	"chat-relay/wire"
)

// Conn is the client end of the relay protocol. Frames out are bare
// bodies (the first one is the display name); frames in are the full
// server representation.
type Conn struct {
	ws *websocket.Conn
}

func Dial(ctx context.Context, url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	return &Conn{ws: ws}, nil
}

// Send writes one bare text frame. The server stamps name and
// timestamp itself; nothing else ever goes on the wire from here.
func (c *Conn) Send(body string) error {
	return c.ws.WriteMessage(websocket.TextMessage, []byte(body))
}

// Receive blocks for the next server frame and decodes it.
func (c *Conn) Receive() (domain.ChatMessage, error) {
	_, payload, err := c.ws.ReadMessage()
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("reading frame: %w", err)
	}
	return wire.Decode(payload)
}

func (c *Conn) Close() error {
	_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
	return c.ws.Close()
}
