// Package compress applies the negotiated compression threshold to packet
// bodies.
//
// Below the threshold a packet travels uncompressed behind a zero data-length
// marker; at or above it the packet id and payload are zlib-deflated. A
// negative threshold disables the data-length field entirely.
package compress

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/danmuck/mcctl/internal/protocol"
)

// MaxUncompressedBytes bounds the declared size of an inflated packet.
const MaxUncompressedBytes = 8 * 1024 * 1024

// Disabled is the threshold value in effect before compression is negotiated.
const Disabled int32 = -1

// Encode serializes (id, payload) into a frame body for threshold.
func Encode(id int32, payload []byte, threshold int32) ([]byte, error) {
	raw := make([]byte, 0, protocol.VarIntSize(id)+len(payload))
	raw = protocol.AppendVarInt(raw, id)
	raw = append(raw, payload...)

	if threshold < 0 {
		return raw, nil
	}
	if len(raw) < int(threshold) {
		body := make([]byte, 0, 1+len(raw))
		body = protocol.AppendVarInt(body, 0)
		return append(body, raw...), nil
	}

	var buf bytes.Buffer
	buf.Write(protocol.EncodeVarInt(int32(len(raw))))
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Compressed reports whether body, encoded under threshold, carries a deflated
// packet.
func Compressed(body []byte, threshold int32) bool {
	if threshold < 0 {
		return false
	}
	n, err := protocol.ReadVarInt(bytes.NewReader(body))
	return err == nil && n != 0
}

// Decode parses a frame body produced under threshold into (id, payload).
func Decode(body []byte, threshold int32) (int32, []byte, error) {
	if threshold < 0 {
		return splitPacket(body)
	}

	r := bytes.NewReader(body)
	declared, err := protocol.ReadVarInt(r)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: data length: %v", protocol.ErrDecompression, err)
	}
	rest := body[len(body)-r.Len():]
	if declared == 0 {
		return splitPacket(rest)
	}
	if declared < 0 || declared > MaxUncompressedBytes {
		return 0, nil, fmt.Errorf("%w: declared length %d", protocol.ErrDecompression, declared)
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", protocol.ErrDecompression, err)
	}
	defer zr.Close()

	// One extra byte lets an over-long stream be detected without inflating it all.
	raw, err := io.ReadAll(io.LimitReader(zr, int64(declared)+1))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", protocol.ErrDecompression, err)
	}
	if len(raw) != int(declared) {
		return 0, nil, fmt.Errorf("%w: inflated %d bytes, declared %d", protocol.ErrDecompression, len(raw), declared)
	}
	return splitPacket(raw)
}

func splitPacket(raw []byte) (int32, []byte, error) {
	r := protocol.NewReader(raw)
	id, err := r.ReadVarInt()
	if err != nil {
		return 0, nil, err
	}
	return id, r.Rest(), nil
}
