package client

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/mcctl/internal/protocol/packet"
	"github.com/danmuck/mcctl/internal/protocol/session"
)

var (
	ErrHostRequired    = errors.New("client: host required")
	ErrInvalidName     = errors.New("client: invalid name")
	ErrInvalidPort     = errors.New("client: invalid port")
	ErrInvalidPolicy   = errors.New("client: invalid first packet policy")
	ErrInvalidAttempts = errors.New("client: invalid max connect attempts")
)

// MaxNameBytes is the longest identity name the login phase accepts.
const MaxNameBytes = 16

// FirstPacketPolicy decides what happens to a packet that arrives where the
// compression negotiation was expected.
type FirstPacketPolicy string

const (
	// FirstPacketReplay runs the packet through the active dispatch table.
	FirstPacketReplay FirstPacketPolicy = "replay"
	// FirstPacketDrop discards it.
	FirstPacketDrop FirstPacketPolicy = "drop"
)

// Config is everything a session needs; nothing is read from process globals.
type Config struct {
	Host              string
	Port              uint16
	Name              string
	ProtocolVersion   int32
	FirstPacketPolicy FirstPacketPolicy
	PlainChat         bool
	Session           session.Config

	// Out receives rendered chat and roster listings. Defaults to stdout.
	Out io.Writer
	// Dialer overrides the TCP dialer.
	Dialer session.Dialer
}

func DefaultConfig() Config {
	return Config{
		Host:              "127.0.0.1",
		Port:              25565,
		Name:              "Tester12",
		ProtocolVersion:   packet.ProtocolVersion,
		FirstPacketPolicy: FirstPacketReplay,
		Session:           session.DefaultConfig(),
	}
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrHostRequired
	}
	if c.Port == 0 {
		return ErrInvalidPort
	}
	name := strings.TrimSpace(c.Name)
	if name == "" || len(name) > MaxNameBytes {
		return fmt.Errorf("%w: %q", ErrInvalidName, c.Name)
	}
	switch c.FirstPacketPolicy {
	case FirstPacketReplay, FirstPacketDrop:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, c.FirstPacketPolicy)
	}
	if c.Session.MaxConnectAttempts < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidAttempts, c.Session.MaxConnectAttempts)
	}
	return c.Session.Validate()
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
