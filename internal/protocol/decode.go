package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxStringBytes bounds any length-prefixed string read from a payload.
const MaxStringBytes = 32767 * 4

// Reader consumes packet payload fields in order. Every short read is reported
// as ErrProtocolDecode since a payload is always fully buffered.
type Reader struct {
	buf []byte
	off int
}

func NewReader(payload []byte) *Reader {
	return &Reader{buf: payload}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Rest returns the unread bytes and consumes them.
func (r *Reader) Rest() []byte {
	out := r.buf[r.off:]
	r.off = len(r.buf)
	return out
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, io.EOF
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *Reader) ReadVarInt() (int32, error) {
	v, err := ReadVarInt(r)
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: missing varint at offset %d", ErrProtocolDecode, r.off)
	}
	return v, err
}

// ReadCount reads a varint that sizes a following array or string and rejects
// negative values and values that cannot fit in the remaining payload.
func (r *Reader) ReadCount(minElemSize int) (int, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %w: negative %d", ErrProtocolDecode, ErrInvalidLength, n)
	}
	if minElemSize > 0 && int(n) > r.Len()/minElemSize {
		return 0, fmt.Errorf("%w: %w: %d exceeds remaining %d bytes", ErrProtocolDecode, ErrInvalidLength, n, r.Len())
	}
	return int(n), nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the payload.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrProtocolDecode, n, r.Len())
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

// ReadString reads a varint length-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadCount(1)
	if err != nil {
		return "", err
	}
	if n > MaxStringBytes {
		return "", fmt.Errorf("%w: string length %d", ErrProtocolDecode, n)
	}
	raw, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: invalid utf-8 string", ErrProtocolDecode)
	}
	return string(raw), nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: invalid bool 0x%02x", ErrProtocolDecode, b[0])
	}
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadUUID() (uuid.UUID, error) {
	b, err := r.ReadBytes(16)
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	copy(id[:], b)
	return id, nil
}
