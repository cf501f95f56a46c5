package packet

import (
	"fmt"

	"github.com/danmuck/mcctl/internal/protocol"
	"github.com/google/uuid"
)

// PlayerInfoAction tags the shape of every entry in one player info packet.
type PlayerInfoAction int32

const (
	ActionAddPlayer         PlayerInfoAction = 0
	ActionUpdateGameMode    PlayerInfoAction = 1
	ActionUpdateLatency     PlayerInfoAction = 2
	ActionUpdateDisplayName PlayerInfoAction = 3
	ActionRemovePlayer      PlayerInfoAction = 4
)

func (a PlayerInfoAction) String() string {
	switch a {
	case ActionAddPlayer:
		return "add"
	case ActionUpdateGameMode:
		return "update_gamemode"
	case ActionUpdateLatency:
		return "update_latency"
	case ActionUpdateDisplayName:
		return "update_display_name"
	case ActionRemovePlayer:
		return "remove"
	default:
		return fmt.Sprintf("action(%d)", int32(a))
	}
}

// Property is one signed profile property attached to an added player.
type Property struct {
	Name      string
	Value     string
	Signature *string
}

// PlayerInfoEntry holds the fields present for the packet's action. Only the
// fields of that action are meaningful.
type PlayerInfoEntry struct {
	ID          uuid.UUID
	Name        string
	Properties  []Property
	GameMode    int32
	Latency     int32
	DisplayName *string
}

// PlayerInfo is one roster update: a single action applied to every entry.
type PlayerInfo struct {
	Action  PlayerInfoAction
	Entries []PlayerInfoEntry
}

type entryCodec struct {
	decode func(r *protocol.Reader, e *PlayerInfoEntry) error
	encode func(w *protocol.Writer, e PlayerInfoEntry)
}

var entryCodecs = map[PlayerInfoAction]entryCodec{
	ActionAddPlayer:         {decode: decodeAddPlayer, encode: encodeAddPlayer},
	ActionUpdateGameMode:    {decode: decodeGameMode, encode: encodeGameMode},
	ActionUpdateLatency:     {decode: decodeLatency, encode: encodeLatency},
	ActionUpdateDisplayName: {decode: decodeDisplayName, encode: encodeDisplayName},
	ActionRemovePlayer:      {decode: func(*protocol.Reader, *PlayerInfoEntry) error { return nil }, encode: func(*protocol.Writer, PlayerInfoEntry) {}},
}

// DecodePlayerInfo parses every entry of a player info packet. Any field that
// does not line up with the action's layout fails the whole packet.
func DecodePlayerInfo(payload []byte) (PlayerInfo, error) {
	r := protocol.NewReader(payload)
	rawAction, err := r.ReadVarInt()
	if err != nil {
		return PlayerInfo{}, err
	}
	action := PlayerInfoAction(rawAction)
	codec, ok := entryCodecs[action]
	if !ok {
		return PlayerInfo{}, fmt.Errorf("%w: unknown player info action %d", protocol.ErrProtocolDecode, rawAction)
	}
	// Every entry carries at least its 16-byte id.
	count, err := r.ReadCount(16)
	if err != nil {
		return PlayerInfo{}, err
	}

	info := PlayerInfo{Action: action, Entries: make([]PlayerInfoEntry, 0, count)}
	for i := 0; i < count; i++ {
		var entry PlayerInfoEntry
		if entry.ID, err = r.ReadUUID(); err != nil {
			return PlayerInfo{}, fmt.Errorf("player info entry %d: %w", i, err)
		}
		if err := codec.decode(r, &entry); err != nil {
			return PlayerInfo{}, fmt.Errorf("player info %s entry %d: %w", action, i, err)
		}
		info.Entries = append(info.Entries, entry)
	}
	if r.Len() != 0 {
		return PlayerInfo{}, fmt.Errorf("%w: %d trailing bytes after player info", protocol.ErrProtocolDecode, r.Len())
	}
	return info, nil
}

// Encode serializes the packet in the same layout DecodePlayerInfo expects.
func (p PlayerInfo) Encode() ([]byte, error) {
	codec, ok := entryCodecs[p.Action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown player info action %d", protocol.ErrProtocolDecode, int32(p.Action))
	}
	w := protocol.NewWriter(64)
	w.WriteVarInt(int32(p.Action)).WriteVarInt(int32(len(p.Entries)))
	for _, e := range p.Entries {
		w.WriteUUID(e.ID)
		codec.encode(w, e)
	}
	return w.Bytes(), nil
}

func decodeAddPlayer(r *protocol.Reader, e *PlayerInfoEntry) error {
	var err error
	if e.Name, err = r.ReadString(); err != nil {
		return err
	}
	// name, value and signed flag take at least three bytes.
	n, err := r.ReadCount(3)
	if err != nil {
		return err
	}
	e.Properties = make([]Property, 0, n)
	for i := 0; i < n; i++ {
		var p Property
		if p.Name, err = r.ReadString(); err != nil {
			return err
		}
		if p.Value, err = r.ReadString(); err != nil {
			return err
		}
		if p.Signature, err = readOptionalString(r); err != nil {
			return err
		}
		e.Properties = append(e.Properties, p)
	}
	if e.GameMode, err = r.ReadVarInt(); err != nil {
		return err
	}
	if e.Latency, err = r.ReadVarInt(); err != nil {
		return err
	}
	e.DisplayName, err = readOptionalString(r)
	return err
}

func encodeAddPlayer(w *protocol.Writer, e PlayerInfoEntry) {
	w.WriteString(e.Name).WriteVarInt(int32(len(e.Properties)))
	for _, p := range e.Properties {
		w.WriteString(p.Name).WriteString(p.Value)
		writeOptionalString(w, p.Signature)
	}
	w.WriteVarInt(e.GameMode).WriteVarInt(e.Latency)
	writeOptionalString(w, e.DisplayName)
}

func decodeGameMode(r *protocol.Reader, e *PlayerInfoEntry) error {
	var err error
	e.GameMode, err = r.ReadVarInt()
	return err
}

func encodeGameMode(w *protocol.Writer, e PlayerInfoEntry) {
	w.WriteVarInt(e.GameMode)
}

func decodeLatency(r *protocol.Reader, e *PlayerInfoEntry) error {
	var err error
	e.Latency, err = r.ReadVarInt()
	return err
}

func encodeLatency(w *protocol.Writer, e PlayerInfoEntry) {
	w.WriteVarInt(e.Latency)
}

func decodeDisplayName(r *protocol.Reader, e *PlayerInfoEntry) error {
	var err error
	e.DisplayName, err = readOptionalString(r)
	return err
}

func encodeDisplayName(w *protocol.Writer, e PlayerInfoEntry) {
	writeOptionalString(w, e.DisplayName)
}

func readOptionalString(r *protocol.Reader) (*string, error) {
	present, err := r.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func writeOptionalString(w *protocol.Writer, s *string) {
	if s == nil {
		w.WriteBool(false)
		return
	}
	w.WriteBool(true).WriteString(*s)
}
