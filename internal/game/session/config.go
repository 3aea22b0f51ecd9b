package session

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

// Config tunes one channel. Zero values are filled in by applyDefaults, so
// callers only set what they care about.
type Config struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
	FrameBuffer    int
	Dialer         *websocket.Dialer
	// Clock drives the ping ticker; tests inject clockwork.NewFakeClock().
	Clock clockwork.Clock
}

// DefaultConfig returns the production channel configuration.
func DefaultConfig() Config {
	return Config{
		WriteTimeout:   10 * time.Second,
		PongTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 512 * 1024, // full snapshots carry the whole update log
		SendBuffer:     64,
		FrameBuffer:    8,
		Dialer:         websocket.DefaultDialer,
		Clock:          clockwork.NewRealClock(),
	}
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaults.WriteTimeout
	}
	if c.PongTimeout == 0 {
		c.PongTimeout = defaults.PongTimeout
	}
	if c.PingInterval == 0 {
		c.PingInterval = defaults.PingInterval
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = defaults.MaxMessageSize
	}
	if c.SendBuffer == 0 {
		c.SendBuffer = defaults.SendBuffer
	}
	if c.FrameBuffer == 0 {
		c.FrameBuffer = defaults.FrameBuffer
	}
	if c.Dialer == nil {
		c.Dialer = defaults.Dialer
	}
	if c.Clock == nil {
		c.Clock = defaults.Clock
	}
}
