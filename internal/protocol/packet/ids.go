// Package packet defines packet ids and typed payload shapes for protocol
// revision 754.
package packet

import "fmt"

// ProtocolVersion is the protocol revision these ids belong to.
const ProtocolVersion int32 = 754

// Handshake intents.
const (
	IntentStatus int32 = 1
	IntentLogin  int32 = 2
)

// Serverbound ids.
const (
	IDHandshake     int32 = 0x00
	IDStatusRequest int32 = 0x00
	IDLoginStart    int32 = 0x00
	IDChatOutbound  int32 = 0x03
	IDKeepAliveOut  int32 = 0x10
)

// Clientbound ids.
const (
	IDStatusResponse  int32 = 0x00
	IDLoginDisconnect int32 = 0x00
	IDLoginSuccess    int32 = 0x02
	IDSetCompression  int32 = 0x03
	IDChatInbound     int32 = 0x0E
	IDPlayDisconnect  int32 = 0x19
	IDKeepAliveIn     int32 = 0x1F
	IDPlayerInfo      int32 = 0x32
)

// Packet is one decompressed frame: a varint id and its raw payload.
type Packet struct {
	ID      int32
	Payload []byte
}

func (p Packet) String() string {
	return fmt.Sprintf("packet{id=0x%02x len=%d}", p.ID, len(p.Payload))
}
