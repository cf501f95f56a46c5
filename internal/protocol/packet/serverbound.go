package packet

import (
	"fmt"

	"github.com/danmuck/mcctl/internal/protocol"
)

// MaxChatBytes is the longest chat line the server accepts.
const MaxChatBytes = 255

// Handshake opens a connection and selects the next protocol phase.
type Handshake struct {
	ProtocolVersion int32
	Host            string
	Port            uint16
	Intent          int32
}

func (h Handshake) Encode() []byte {
	return protocol.NewWriter(8 + len(h.Host)).
		WriteVarInt(h.ProtocolVersion).
		WriteString(h.Host).
		WriteUint16(h.Port).
		WriteVarInt(h.Intent).
		Bytes()
}

// LoginStart carries the chosen identity name.
type LoginStart struct {
	Name string
}

func (l LoginStart) Encode() []byte {
	return protocol.NewWriter(1 + len(l.Name)).WriteString(l.Name).Bytes()
}

// ChatOutbound is one line of user chat.
type ChatOutbound struct {
	Message string
}

func (c ChatOutbound) Validate() error {
	if len(c.Message) > MaxChatBytes {
		return fmt.Errorf("chat message is %d bytes, limit %d", len(c.Message), MaxChatBytes)
	}
	return nil
}

func (c ChatOutbound) Encode() []byte {
	return protocol.NewWriter(2 + len(c.Message)).WriteString(c.Message).Bytes()
}

// EncodeStatusRequest returns the empty status request payload.
func EncodeStatusRequest() []byte {
	return []byte{}
}
