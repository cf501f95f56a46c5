package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/mcctl/internal/protocol"
)

var (
	ErrFrameTooLarge        = errors.New("frame: frame too large")
	ErrMalformedFrameLength = errors.New("frame: negative frame length")
)

// Reader is the minimum a frame source must provide; bufio.Reader and
// bytes.Reader both qualify.
type Reader interface {
	io.Reader
	io.ByteReader
}

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxFrameBytes int
}

// DefaultLimits caps a frame at the protocol's 2^21-1 packet size ceiling.
func DefaultLimits() Limits {
	return Limits{
		MaxFrameBytes: 1<<21 - 1,
	}
}

// ReadFrame reads one varint length prefix and exactly that many body bytes.
// io.EOF is returned unchanged when the source closes on a frame boundary.
func ReadFrame(r Reader, limits Limits) ([]byte, error) {
	n, err := protocol.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrMalformedFrameLength, n)
	}
	if limits.MaxFrameBytes > 0 && int(n) > limits.MaxFrameBytes {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, limits.MaxFrameBytes)
	}

	body := make([]byte, n)
	if n == 0 {
		return body, nil
	}
	if got, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d of %d bytes", protocol.ErrTruncatedFrame, got, n)
		}
		return nil, err
	}
	return body, nil
}

// WriteFrame writes the length prefix and body with a single Write so a
// concurrent writer holding the same lock discipline never interleaves.
func WriteFrame(w io.Writer, body []byte, limits Limits) error {
	if limits.MaxFrameBytes > 0 && len(body) > limits.MaxFrameBytes {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(body), limits.MaxFrameBytes)
	}
	buf := make([]byte, 0, protocol.VarIntSize(int32(len(body)))+len(body))
	buf = protocol.AppendVarInt(buf, int32(len(body)))
	buf = append(buf, body...)
	_, err := w.Write(buf)
	return err
}
