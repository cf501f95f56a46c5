package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/danmuck/mcctl/internal/observability"
	"github.com/danmuck/mcctl/internal/protocol"
	"github.com/danmuck/mcctl/internal/protocol/compress"
	"github.com/danmuck/mcctl/internal/protocol/frame"
	"github.com/danmuck/mcctl/internal/protocol/packet"
)

// Transport moves whole packets over one connection.
//
// Receive is meant for a single reader goroutine and takes no lock. Send may be
// called from any goroutine; each call holds the write lock for exactly one
// frame.
type Transport struct {
	conn      io.ReadWriteCloser
	reader    *bufio.Reader
	limits    frame.Limits
	threshold atomic.Int32

	wmu sync.Mutex
}

func NewTransport(conn io.ReadWriteCloser, limits frame.Limits) *Transport {
	if limits.MaxFrameBytes <= 0 {
		limits = frame.DefaultLimits()
	}
	t := &Transport{
		conn:   conn,
		reader: bufio.NewReader(conn),
		limits: limits,
	}
	t.threshold.Store(compress.Disabled)
	return t
}

// Threshold returns the compression threshold currently applied in both
// directions.
func (t *Transport) Threshold() int32 {
	return t.threshold.Load()
}

func (t *Transport) SetThreshold(threshold int32) {
	t.threshold.Store(threshold)
}

// Send encodes one packet under the current threshold and writes it as a
// single frame.
func (t *Transport) Send(id int32, payload []byte) error {
	threshold := t.threshold.Load()
	body, err := compress.Encode(id, payload, threshold)
	if err != nil {
		return err
	}

	t.wmu.Lock()
	err = frame.WriteFrame(t.conn, body, t.limits)
	t.wmu.Unlock()
	if err != nil {
		return closedErr(err)
	}
	observability.RecordPacket(observability.DirectionOutbound, id, len(body), compress.Compressed(body, threshold))
	return nil
}

// Receive reads exactly one frame and returns the packet it carries.
func (t *Transport) Receive() (packet.Packet, error) {
	body, err := frame.ReadFrame(t.reader, t.limits)
	if err != nil {
		return packet.Packet{}, closedErr(err)
	}
	threshold := t.threshold.Load()
	id, payload, err := compress.Decode(body, threshold)
	if err != nil {
		return packet.Packet{}, err
	}
	observability.RecordPacket(observability.DirectionInbound, id, len(body), compress.Compressed(body, threshold))
	return packet.Packet{ID: id, Payload: payload}, nil
}

func (t *Transport) Close() error {
	return t.conn.Close()
}

// closedErr tags errors that mean the peer is gone with ErrConnectionClosed.
// A frame or length prefix cut off by the close keeps its own identity as well.
func closedErr(err error) error {
	switch {
	case errors.Is(err, protocol.ErrTruncatedFrame),
		errors.Is(err, protocol.ErrMalformedVarInt) && errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", protocol.ErrConnectionClosed, err)
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EPIPE):
		return fmt.Errorf("%w: %v", protocol.ErrConnectionClosed, err)
	default:
		return err
	}
}
