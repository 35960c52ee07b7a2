package internal

import (
	"net"
	"strconv"
	"time"
)

// Config is the relay's environment surface. Idle timeout and max
// message size are deliberately configuration rather than protocol
// invariants.
type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,required=true"`
	LogLevel string `env:"LOG_LEVEL,required=true"`

	OutboundBufferSize  int `env:"OUTBOUND_BUFFER_SIZE,required=true"`
	TelemetryBufferSize int `env:"TELEMETRY_BUFFER_SIZE,required=true"`

	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT,required=true"`
	IdleTimeout      time.Duration `env:"IDLE_TIMEOUT"`
	WriteTimeout     time.Duration `env:"WRITE_TIMEOUT,required=true"`
	PingInterval     time.Duration `env:"PING_INTERVAL"`

	MaxMessageSize int64 `env:"MAX_MESSAGE_SIZE,required=true"`
	MaxNameLength  int   `env:"MAX_NAME_LENGTH,required=true"`
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
