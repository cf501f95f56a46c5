package protocol

import "errors"

var (
	ErrMalformedVarInt  = errors.New("protocol: malformed varint")
	ErrTruncatedFrame   = errors.New("protocol: truncated frame")
	ErrDecompression    = errors.New("protocol: decompression failed")
	ErrProtocolDecode   = errors.New("protocol: decode failed")
	ErrConnectionClosed = errors.New("protocol: connection closed")
	ErrInvalidLength    = errors.New("protocol: invalid length")
)
