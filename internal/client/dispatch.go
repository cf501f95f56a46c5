package client

import (
	"fmt"

	"github.com/danmuck/mcctl/internal/chat"
	"github.com/danmuck/mcctl/internal/protocol"
	"github.com/danmuck/mcctl/internal/protocol/packet"
	"github.com/rs/zerolog/log"
)

type inboundHandler func(s *Session, payload []byte) error

// Packets not listed here are ignored.
var inboundHandlers = map[int32]inboundHandler{
	packet.IDKeepAliveIn:    handleKeepAlive,
	packet.IDChatInbound:    handleChat,
	packet.IDPlayerInfo:     handlePlayerInfo,
	packet.IDPlayDisconnect: handleDisconnect,
}

func (s *Session) dispatch(pkt packet.Packet) error {
	h, ok := inboundHandlers[pkt.ID]
	if !ok {
		log.Trace().Int32("packet_id", pkt.ID).Int("len", len(pkt.Payload)).Msg("ignored packet")
		return nil
	}
	return h(s, pkt.Payload)
}

func handleKeepAlive(s *Session, payload []byte) error {
	k, err := packet.DecodeKeepAlive(payload)
	if err != nil {
		return fmt.Errorf("keep-alive: %w", err)
	}
	if err := s.transport.Send(packet.IDKeepAliveOut, k.Encode()); err != nil {
		return fmt.Errorf("keep-alive reply: %w", err)
	}
	log.Trace().Hex("token", k.Token[:]).Msg("keep-alive answered")
	return nil
}

func handleChat(s *Session, payload []byte) error {
	msg, err := packet.DecodeChat(payload)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	c, err := chat.Parse([]byte(msg.JSON))
	if err != nil {
		return fmt.Errorf("%w: chat: %v", protocol.ErrProtocolDecode, err)
	}
	if msg.Position == packet.ChatPositionHotbar {
		log.Debug().Str("text", c.Plain()).Msg("action bar message skipped")
		return nil
	}
	if s.cfg.PlainChat {
		s.println(c.Plain())
	} else {
		s.println(c.ANSI())
	}
	return nil
}

func handlePlayerInfo(s *Session, payload []byte) error {
	info, err := packet.DecodePlayerInfo(payload)
	if err != nil {
		return err
	}
	added, removed := s.roster.Apply(info)
	log.Debug().
		Stringer("action", info.Action).
		Int("entries", len(info.Entries)).
		Int("added", added).
		Int("removed", removed).
		Msg("roster updated")
	return nil
}

func handleDisconnect(s *Session, payload []byte) error {
	return disconnectErr(payload)
}
