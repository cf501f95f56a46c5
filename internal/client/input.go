package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/mcctl/internal/protocol/packet"
	"github.com/danmuck/mcctl/internal/protocol/session"
	"github.com/rs/zerolog/log"
)

var ErrInputRejected = errors.New("client: input rejected")

const (
	commandList = ".list"
	commandQuit = ".quit"

	consolePrefix = "[mcctl] "
)

// inputLoop reads console lines until EOF, .quit or a failed send.
func (s *Session) inputLoop(input io.Reader) {
	reader := bufio.NewReader(input)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			quit, err := s.handleLine(line)
			if quit {
				s.quit()
				return
			}
			if err != nil {
				log.Error().Err(err).Msg("chat send failed")
				_ = s.transport.Close()
				return
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				log.Warn().Err(readErr).Msg("console read failed")
			}
			log.Debug().Msg("console input closed")
			return
		}
	}
}

// handleLine applies one console line. Over-length lines are reported to the
// user and dropped without touching the connection.
func (s *Session) handleLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	msg := packet.ChatOutbound{Message: line}
	if err := msg.Validate(); err != nil {
		log.Warn().Err(fmt.Errorf("%w: %v", ErrInputRejected, err)).Msg("chat line rejected")
		s.println(fmt.Sprintf("%sThe message can't be longer than %d bytes!", consolePrefix, packet.MaxChatBytes))
		return false, nil
	}
	switch {
	case strings.EqualFold(line, commandList):
		s.println(consolePrefix + session.FormatListing(s.roster.Snapshot()))
		return false, nil
	case strings.EqualFold(line, commandQuit):
		return true, nil
	}
	if err := s.transport.Send(packet.IDChatOutbound, msg.Encode()); err != nil {
		return false, err
	}
	return false, nil
}
