package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/errors"
)

func TestCodec_RoundTrip(t *testing.T) {
	req := require.New(t)

	bodies := []string{
		"hi",
		"",
		"héllo wörld éè",
		"tabs\tand\nnewlines\x01",
		"絵文字 🦝 and more",
	}

	for _, body := range bodies {
		msg := domain.ChatMessage{
			SenderID:   "10.0.0.1:1234",
			SenderName: "Alice",
			SentAt:     time.UnixMilli(1723991823456),
			Body:       body,
		}

		payload, err := Encode(msg)
		req.NoError(err)

		decoded, err := Decode(payload)
		req.NoError(err)
		req.Equal(msg.Body, decoded.Body)
		req.Equal(msg.SenderName, decoded.SenderName)
		req.Equal(msg.SentAt.UnixMilli(), decoded.SentAt.UnixMilli())
	}
}

func TestCodec_Timestamp_Is_Milliseconds(t *testing.T) {
	req := require.New(t)
	sent := time.Date(2025, 6, 1, 12, 0, 0, 500*int(time.Millisecond), time.UTC)

	payload, err := Encode(domain.NewSystemNotice("id", "Alice has entered the channel"))
	req.NoError(err)
	req.Contains(string(payload), `"timestamp":`)

	payload, err = Encode(domain.ChatMessage{SenderName: "Alice", SentAt: sent, Body: "x"})
	req.NoError(err)
	req.Contains(string(payload), `"timestamp":1748779200500`)
}

func TestCodec_Decode_Rejects_Garbage(t *testing.T) {
	req := require.New(t)

	_, err := Decode([]byte("this is not json"))

	req.ErrorIs(err, errors.ErrMalformedFrame)
}

func TestCodec_Body_Rejects_Invalid_UTF8(t *testing.T) {
	req := require.New(t)

	_, err := Body([]byte{0xff, 0xfe, 0xfd})

	req.ErrorIs(err, errors.ErrMalformedFrame)
}

func TestCodec_Body_Accepts_Bare_Text(t *testing.T) {
	req := require.New(t)

	body, err := Body([]byte("just a message"))

	req.NoError(err)
	req.Equal("just a message", body)
}
