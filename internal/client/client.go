package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/danmuck/mcctl/internal/chat"
	"github.com/danmuck/mcctl/internal/protocol/packet"
	"github.com/danmuck/mcctl/internal/protocol/session"
	"github.com/rs/zerolog/log"
)

var (
	ErrQuit               = errors.New("client: quit requested")
	ErrDisconnected       = errors.New("client: disconnected by server")
	ErrEncryptionRequired = errors.New("client: server requires encryption")
)

const idEncryptionRequest int32 = 0x01

type Client struct {
	cfg Config
}

func New(cfg Config) (*Client, error) {
	cfg.Session = cfg.Session.WithDefaults()
	if cfg.ProtocolVersion == 0 {
		cfg.ProtocolVersion = packet.ProtocolVersion
	}
	if cfg.FirstPacketPolicy == "" {
		cfg.FirstPacketPolicy = FirstPacketReplay
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// Join connects, logs in and negotiates compression. The returned session is
// Active; call Run to drive it.
func (c *Client) Join(ctx context.Context) (*Session, error) {
	s := &Session{
		cfg:    c.cfg,
		roster: session.NewRoster(),
		out:    c.cfg.out(),
	}
	s.setState(StateConnecting)

	conn, err := session.Dial(ctx, c.cfg.Dialer, c.cfg.Addr(), c.cfg.Session)
	if err != nil {
		s.setState(StateTerminated)
		return nil, err
	}
	s.transport = session.NewTransport(conn, c.cfg.Session.Limits)

	if err := s.login(); err != nil {
		_ = s.transport.Close()
		s.setState(StateTerminated)
		return nil, err
	}
	return s, nil
}

// Session is one logged-in connection with its roster.
type Session struct {
	cfg       Config
	transport *session.Transport
	roster    *session.Roster
	state     atomic.Int32
	quitting  atomic.Bool
	pending   *packet.Packet

	outMu sync.Mutex
	out   io.Writer
}

func (s *Session) Roster() *session.Roster {
	return s.roster
}

func (s *Session) Threshold() int32 {
	return s.transport.Threshold()
}

func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) Close() error {
	s.setState(StateTerminated)
	return s.transport.Close()
}

func (s *Session) setState(next State) {
	prev := State(s.state.Swap(int32(next)))
	if prev != next {
		log.Debug().Stringer("from", prev).Stringer("state", next).Msg("session state")
	}
}

func (s *Session) login() error {
	hs := packet.Handshake{
		ProtocolVersion: s.cfg.ProtocolVersion,
		Host:            s.cfg.Host,
		Port:            s.cfg.Port,
		Intent:          packet.IntentLogin,
	}
	if err := s.transport.Send(packet.IDHandshake, hs.Encode()); err != nil {
		return fmt.Errorf("send handshake: %w", err)
	}
	if err := s.transport.Send(packet.IDLoginStart, packet.LoginStart{Name: s.cfg.Name}.Encode()); err != nil {
		return fmt.Errorf("send login start: %w", err)
	}
	s.setState(StateAwaitingCompression)

	first, err := s.transport.Receive()
	if err != nil {
		return err
	}
	switch first.ID {
	case packet.IDSetCompression:
		threshold, err := packet.DecodeSetCompression(first.Payload)
		if err != nil {
			return fmt.Errorf("set compression: %w", err)
		}
		s.transport.SetThreshold(threshold)
		log.Info().Int32("threshold", threshold).Msg("compression negotiated")
	case packet.IDLoginDisconnect:
		return disconnectErr(first.Payload)
	case idEncryptionRequest:
		return ErrEncryptionRequired
	default:
		switch s.cfg.FirstPacketPolicy {
		case FirstPacketDrop:
			log.Debug().Int32("packet_id", first.ID).Msg("dropping packet received in place of compression negotiation")
		default:
			s.pending = &first
		}
	}
	s.setState(StateActive)
	return nil
}

// Run drives the active session until the connection fails, the server
// disconnects, ctx is cancelled or the user types .quit (ErrQuit).
func (s *Session) Run(ctx context.Context, input io.Reader) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.transport.Close()
	})
	defer stop()

	if s.pending != nil {
		pkt := *s.pending
		s.pending = nil
		if err := s.dispatch(pkt); err != nil {
			_ = s.Close()
			return err
		}
	}

	if input != nil {
		go s.inputLoop(input)
	}

	err := s.inboundLoop()
	_ = s.Close()
	switch {
	case s.quitting.Load():
		return ErrQuit
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return err
	}
}

func (s *Session) inboundLoop() error {
	for {
		pkt, err := s.transport.Receive()
		if err != nil {
			return err
		}
		if err := s.dispatch(pkt); err != nil {
			log.Error().Int32("packet_id", pkt.ID).Err(err).Msg("inbound dispatch failed")
			return err
		}
	}
}

func (s *Session) quit() {
	s.quitting.Store(true)
	_ = s.transport.Close()
}

func (s *Session) println(line string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	_, _ = fmt.Fprintln(s.out, line)
}

func disconnectErr(payload []byte) error {
	raw, err := packet.DecodeDisconnect(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	reason := raw
	if c, err := chat.Parse([]byte(raw)); err == nil {
		reason = c.Plain()
	}
	return fmt.Errorf("%w: %s", ErrDisconnected, reason)
}
