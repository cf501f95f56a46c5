// Package protocol owns wire primitives shared by every packet.
//
// Ownership boundary:
// - varint encode/decode
// - field reader/writer for packet payloads
// - error taxonomy for codec failures
//
// Framing lives in protocol/frame, compression in protocol/compress, typed
// packets in protocol/packet and the live socket transport in protocol/session.
package protocol
