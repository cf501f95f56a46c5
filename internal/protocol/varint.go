package protocol

import (
	"errors"
	"fmt"
	"io"
)

// MaxVarIntLen is the longest encoding of a 32-bit varint.
const MaxVarIntLen = 5

const (
	segmentBits = 0x7F
	continueBit = 0x80
)

// AppendVarInt appends the varint encoding of v to dst.
func AppendVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for {
		if u&^segmentBits == 0 {
			return append(dst, byte(u))
		}
		dst = append(dst, byte(u&segmentBits)|continueBit)
		u >>= 7
	}
}

// EncodeVarInt returns the varint encoding of v.
func EncodeVarInt(v int32) []byte {
	return AppendVarInt(make([]byte, 0, MaxVarIntLen), v)
}

// VarIntSize returns the encoded length of v.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u >= continueBit {
		u >>= 7
		n++
	}
	return n
}

// ReadVarInt decodes one varint from r.
//
// io.EOF before the first byte is returned unchanged so stream readers can tell
// a clean close from a cut-off value. A value cut off mid-way matches both
// ErrMalformedVarInt and io.ErrUnexpectedEOF.
func ReadVarInt(r io.ByteReader) (int32, error) {
	var result uint32
	for i := 0; i < MaxVarIntLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i == 0 && errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			if errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("%w: %w", ErrMalformedVarInt, io.ErrUnexpectedEOF)
			}
			return 0, err
		}
		result |= uint32(b&segmentBits) << (7 * i)
		if b&continueBit == 0 {
			return int32(result), nil
		}
	}
	return 0, ErrMalformedVarInt
}
