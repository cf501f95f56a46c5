package packet

import (
	"fmt"

	"github.com/danmuck/mcctl/internal/protocol"
	"github.com/google/uuid"
)

// KeepAliveTokenLen is the size of the opaque liveness token.
const KeepAliveTokenLen = 8

// KeepAlive carries the server's liveness token. The reply echoes it verbatim.
type KeepAlive struct {
	Token [KeepAliveTokenLen]byte
}

func DecodeKeepAlive(payload []byte) (KeepAlive, error) {
	r := protocol.NewReader(payload)
	raw, err := r.ReadBytes(KeepAliveTokenLen)
	if err != nil {
		return KeepAlive{}, err
	}
	var k KeepAlive
	copy(k.Token[:], raw)
	return k, nil
}

func (k KeepAlive) Encode() []byte {
	out := make([]byte, KeepAliveTokenLen)
	copy(out, k.Token[:])
	return out
}

// DecodeSetCompression returns the negotiated threshold.
func DecodeSetCompression(payload []byte) (int32, error) {
	return protocol.NewReader(payload).ReadVarInt()
}

// ChatPosition identifies where the client should show a chat message.
type ChatPosition uint8

const (
	ChatPositionChat   ChatPosition = 0
	ChatPositionSystem ChatPosition = 1
	ChatPositionHotbar ChatPosition = 2
)

// ChatInbound is a server chat message. JSON is the raw chat component.
type ChatInbound struct {
	JSON     string
	Position ChatPosition
	Sender   uuid.UUID
}

// DecodeChat reads the JSON component and, when present, the position byte and
// sender id that follow it.
func DecodeChat(payload []byte) (ChatInbound, error) {
	r := protocol.NewReader(payload)
	text, err := r.ReadString()
	if err != nil {
		return ChatInbound{}, err
	}
	msg := ChatInbound{JSON: text}
	if r.Len() == 0 {
		return msg, nil
	}
	pos, err := r.ReadUint8()
	if err != nil {
		return ChatInbound{}, err
	}
	msg.Position = ChatPosition(pos)
	if r.Len() >= 16 {
		if msg.Sender, err = r.ReadUUID(); err != nil {
			return ChatInbound{}, err
		}
	}
	return msg, nil
}

// DecodeDisconnect returns the raw JSON reason of a login or play disconnect.
func DecodeDisconnect(payload []byte) (string, error) {
	return protocol.NewReader(payload).ReadString()
}

// DecodeStatusResponse returns the JSON status document.
func DecodeStatusResponse(payload []byte) (string, error) {
	doc, err := protocol.NewReader(payload).ReadString()
	if err != nil {
		return "", fmt.Errorf("status response: %w", err)
	}
	return doc, nil
}
