package session

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
)

var ErrConnectFailed = errors.New("session: connect failed")

// Dialer opens one connection attempt.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Dial connects to addr, retrying immediately up to cfg.MaxConnectAttempts
// times. The dial timeout is the only delay between attempts.
func Dial(ctx context.Context, d Dialer, addr string, cfg Config) (net.Conn, error) {
	cfg = cfg.WithDefaults()
	if d == nil {
		d = &net.Dialer{Timeout: cfg.ConnectTimeout}
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxConnectAttempts; attempt++ {
		log.Info().Str("addr", addr).Int("attempt", attempt).Msg("connecting")
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			log.Info().Str("addr", addr).Int("attempt", attempt).Msg("connected")
			return conn, nil
		}
		lastErr = err
		log.Warn().Str("addr", addr).Int("attempt", attempt).Err(err).Msg("dial failed")
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrConnectFailed, addr, cfg.MaxConnectAttempts, lastErr)
}
