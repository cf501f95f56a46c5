package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/mcctl/internal/protocol/frame"
)

var ErrInvalidConfig = errors.New("session: invalid config")

// Config defines connection defaults shared by the status and login paths.
type Config struct {
	ConnectTimeout     time.Duration
	MaxConnectAttempts int
	Limits             frame.Limits
}

func DefaultConfig() Config {
	return Config{
		ConnectTimeout:     3 * time.Second,
		MaxConnectAttempts: 5,
		Limits:             frame.DefaultLimits(),
	}
}

// WithDefaults fills zero values from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.MaxConnectAttempts <= 0 {
		c.MaxConnectAttempts = def.MaxConnectAttempts
	}
	if c.Limits.MaxFrameBytes <= 0 {
		c.Limits = def.Limits
	}
	return c
}

func (c Config) Validate() error {
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: negative connect timeout", ErrInvalidConfig)
	}
	if c.MaxConnectAttempts < 0 {
		return fmt.Errorf("%w: negative connect attempts", ErrInvalidConfig)
	}
	return nil
}
