// Package session owns the one websocket channel a game screen holds. A
// Session is opened when the screen is entered and closed unconditionally when
// it is left; reaching Closed is terminal, there is no reconnect here.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle of the channel. Transitions only move forward:
// Uninstantiated → Connecting → Open → Closing → Closed, with Closed reached
// directly when the dial fails.
type State int32

const (
	StateUninstantiated State = iota
	StateConnecting
	StateOpen
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninstantiated:
		return "uninstantiated"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

var (
	// ErrClosed reports a send attempted after the channel reached Closed.
	ErrClosed = errors.New("session: channel closed")
	// ErrSendBufferFull reports a dropped outbound message. Dispatch is
	// fire-and-forget, so the caller learns nothing more than this.
	ErrSendBufferFull = errors.New("session: send buffer full")
)

// Session is the exclusive owner of one channel. All reads arrive on Frames;
// all writes go through Send. Nothing else may touch the connection.
type Session struct {
	id        string
	gameCode  string
	conn      *websocket.Conn
	cfg       Config
	state     atomic.Int32
	frames    chan []byte
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	errMu sync.Mutex
	err   error
}

// GameURL builds the channel endpoint for a game. http(s) schemes are mapped
// to their websocket counterparts so the same base URL can serve the lobby
// HTTP client and the channel.
func GameURL(baseURL, gameCode, clientToken string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("bad base url %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("bad base url scheme %q", u.Scheme)
	}
	u.Path = "/leapfrog/game/" + gameCode
	q := url.Values{}
	q.Set("websocket_id", clientToken)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Open dials the channel for one game. A nil error is the connect-success
// signal; the session is already reading when Open returns. Cancelling ctx
// aborts an in-flight dial.
func Open(ctx context.Context, baseURL, gameCode, clientToken string, cfg Config) (*Session, error) {
	cfg.applyDefaults()

	endpoint, err := GameURL(baseURL, gameCode, clientToken)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:       uuid.New().String()[:8],
		gameCode: gameCode,
		cfg:      cfg,
		frames:   make(chan []byte, cfg.FrameBuffer),
		send:     make(chan []byte, cfg.SendBuffer),
		done:     make(chan struct{}),
	}
	s.state.Store(int32(StateConnecting))

	conn, _, err := cfg.Dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		s.state.Store(int32(StateClosed))
		return nil, fmt.Errorf("failed to open channel for game %s: %w", gameCode, err)
	}
	s.conn = conn
	s.state.Store(int32(StateOpen))

	log.Info().
		Str("session_id", s.id).
		Str("game_code", gameCode).
		Msg("channel open")

	go s.readPump()
	go s.writePump()
	return s, nil
}

// State reports the current channel state.
func (s *Session) State() State { return State(s.state.Load()) }

// ID is a short identifier for log correlation only.
func (s *Session) ID() string { return s.id }

// Frames delivers inbound messages in arrival order. It is closed on any
// terminal close, which is the connect-lost signal.
func (s *Session) Frames() <-chan []byte { return s.frames }

// Done is closed when the session reaches Closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err returns the transport error that terminated the session, or nil when it
// was closed locally.
func (s *Session) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

// Send enqueues one outbound payload, fire-and-forget. It never blocks: a
// closed channel or a full buffer is reported immediately and the payload is
// dropped.
func (s *Session) Send(payload []byte) error {
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.send <- payload:
		return nil
	case <-s.done:
		return ErrClosed
	default:
		log.Warn().
			Str("session_id", s.id).
			Str("game_code", s.gameCode).
			Msg("send buffer full, dropping message")
		return ErrSendBufferFull
	}
}

// Close releases the channel unconditionally and is safe to call repeatedly.
func (s *Session) Close() {
	s.shutdown(nil)
}

func (s *Session) shutdown(cause error) {
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateClosing))
		if cause != nil {
			s.errMu.Lock()
			s.err = cause
			s.errMu.Unlock()
		}

		// Best-effort close handshake before tearing the socket down.
		deadline := time.Now().Add(s.cfg.WriteTimeout)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

		close(s.done)
		_ = s.conn.Close()
		s.state.Store(int32(StateClosed))

		event := log.Info()
		if cause != nil {
			event = log.Error().Err(cause)
		}
		event.
			Str("session_id", s.id).
			Str("game_code", s.gameCode).
			Msg("channel closed")
	})
}

func (s *Session) readPump() {
	defer close(s.frames)

	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = nil
			} else if s.State() >= StateClosing {
				// Local Close tore down the socket; not a transport failure.
				err = nil
			}
			s.shutdown(err)
			return
		}

		select {
		case s.frames <- data:
		case <-s.done:
			return
		}
	}
}

func (s *Session) writePump() {
	ticker := s.cfg.Clock.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return

		case payload := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Error().
					Err(err).
					Str("session_id", s.id).
					Msg("failed to write message to channel")
				s.shutdown(err)
				return
			}

		case <-ticker.Chan():
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.shutdown(err)
				return
			}
		}
	}
}
