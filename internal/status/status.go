// Package status implements the one-shot server status query.
package status

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/danmuck/mcctl/internal/chat"
	"github.com/danmuck/mcctl/internal/protocol/packet"
	"github.com/danmuck/mcctl/internal/protocol/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoFavicon        = errors.New("status: server has no favicon")
	ErrMalformedFavicon = errors.New("status: malformed favicon")
	ErrUnexpectedPacket = errors.New("status: unexpected packet")
)

// DefaultFaviconPath is where SaveFavicon writes when no path is configured.
const DefaultFaviconPath = "server-icon.png"

type Config struct {
	Host            string
	Port            uint16
	ProtocolVersion int32
	Session         session.Config
	Dialer          session.Dialer
}

type Version struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type SamplePlayer struct {
	Name string    `json:"name"`
	ID   uuid.UUID `json:"id"`
}

type Players struct {
	Max    int            `json:"max"`
	Online int            `json:"online"`
	Sample []SamplePlayer `json:"sample"`
}

// Response is the decoded status document.
type Response struct {
	Version     Version         `json:"version"`
	Players     Players         `json:"players"`
	Description json.RawMessage `json:"description"`
	Favicon     string          `json:"favicon"`
}

// MOTD returns the description as plain text. The description may be a bare
// string or a chat component.
func (r Response) MOTD() string {
	if len(r.Description) == 0 {
		return ""
	}
	c, err := chat.Parse(r.Description)
	if err != nil {
		return string(r.Description)
	}
	return c.Plain()
}

// FaviconPNG decodes the data-URI favicon, taking everything after the first
// comma as base64.
func (r Response) FaviconPNG() ([]byte, error) {
	if r.Favicon == "" {
		return nil, ErrNoFavicon
	}
	idx := strings.IndexByte(r.Favicon, ',')
	if idx < 0 {
		return nil, fmt.Errorf("%w: no comma in data uri", ErrMalformedFavicon)
	}
	img, err := base64.StdEncoding.DecodeString(r.Favicon[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFavicon, err)
	}
	return img, nil
}

// SaveFavicon writes the decoded favicon to path.
func (r Response) SaveFavicon(path string) error {
	img, err := r.FaviconPNG()
	if err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultFaviconPath
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("status: write favicon: %w", err)
	}
	log.Info().Str("path", path).Int("bytes", len(img)).Msg("favicon saved")
	return nil
}

// Query performs handshake, status request and status response on a fresh
// connection.
func Query(ctx context.Context, cfg Config) (Response, error) {
	if cfg.ProtocolVersion == 0 {
		cfg.ProtocolVersion = packet.ProtocolVersion
	}
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))
	conn, err := session.Dial(ctx, cfg.Dialer, addr, cfg.Session)
	if err != nil {
		return Response{}, err
	}
	tr := session.NewTransport(conn, cfg.Session.WithDefaults().Limits)
	defer tr.Close()

	stop := context.AfterFunc(ctx, func() { _ = tr.Close() })
	defer stop()

	hs := packet.Handshake{
		ProtocolVersion: cfg.ProtocolVersion,
		Host:            cfg.Host,
		Port:            cfg.Port,
		Intent:          packet.IntentStatus,
	}
	if err := tr.Send(packet.IDHandshake, hs.Encode()); err != nil {
		return Response{}, fmt.Errorf("send handshake: %w", err)
	}
	if err := tr.Send(packet.IDStatusRequest, packet.EncodeStatusRequest()); err != nil {
		return Response{}, fmt.Errorf("send status request: %w", err)
	}

	pkt, err := tr.Receive()
	if err != nil {
		return Response{}, err
	}
	if pkt.ID != packet.IDStatusResponse {
		return Response{}, fmt.Errorf("%w: %s", ErrUnexpectedPacket, pkt)
	}
	doc, err := packet.DecodeStatusResponse(pkt.Payload)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.Unmarshal([]byte(doc), &resp); err != nil {
		return Response{}, fmt.Errorf("status: parse response: %w", err)
	}
	log.Debug().Str("addr", addr).Str("version", resp.Version.Name).Int("online", resp.Players.Online).Msg("status received")
	return resp, nil
}
