// Package wire serializes chat messages to and from their text-frame
// representation.
//
// The two directions are deliberately asymmetric. A frame sent to a
// client carries the full triple (body, sender name, timestamp). A
// frame received from a client only ever carries the raw body: the
// session stamps name and timestamp from its own state, so a client
// cannot spoof either by crafting its payload.
package wire

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"chat-relay/domain"
	"chat-relay/errors"
)

// ServerFrame is the JSON object sent to clients. Field names are the
// stable wire contract; Timestamp is integer milliseconds since the
// Unix epoch.
type ServerFrame struct {
	Body       string `json:"input_message"`
	SenderName string `json:"from_username"`
	Timestamp  int64  `json:"timestamp"`
}

// Encode produces the server→client representation of a message.
func Encode(msg domain.ChatMessage) ([]byte, error) {
	frame := ServerFrame{
		Body:       msg.Body,
		SenderName: msg.SenderName,
		Timestamp:  msg.SentAt.UnixMilli(),
	}
	payload, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	return payload, nil
}

// Decode parses a server→client frame back into a message. The sender
// id is not on the wire; the returned message carries only the fields
// a client can render.
func Decode(payload []byte) (domain.ChatMessage, error) {
	var frame ServerFrame
	if err := json.Unmarshal(payload, &frame); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	return domain.ChatMessage{
		SenderName: frame.SenderName,
		SentAt:     time.UnixMilli(frame.Timestamp),
		Body:       frame.Body,
	}, nil
}

// Body interprets a client→server frame as a raw UTF-8 body. This is
// the whole inbound contract: the handshake name and every ordinary
// message arrive as bare text.
func Body(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", errors.ErrMalformedFrame)
	}
	return string(payload), nil
}
