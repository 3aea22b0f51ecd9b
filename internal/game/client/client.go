// Package client wires the synchronization core together: one channel in, one
// stream of reconciled views out, typed actions back. Inbound frames are
// processed strictly one at a time — validate, reconcile, notify — so no two
// snapshots are ever in flight concurrently.
package client

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/leapfrog-games/leapfrog-go/internal/game/identity"
	"github.com/leapfrog-games/leapfrog-go/internal/game/notify"
	"github.com/leapfrog-games/leapfrog-go/internal/game/protocol"
	"github.com/leapfrog-games/leapfrog-go/internal/game/reconcile"
	"github.com/leapfrog-games/leapfrog-go/internal/game/updatelog"
)

// Channel is the transport surface the client consumes. *session.Session
// satisfies it; tests substitute a channel-backed fake.
type Channel interface {
	Frames() <-chan []byte
	Send(payload []byte) error
	Done() <-chan struct{}
	Close()
}

// ViewUpdate is delivered once per applied snapshot.
type ViewUpdate struct {
	View reconcile.View
	// YourTurn fires at most once per distinct turn number.
	YourTurn bool
	// Log is the projected update log, most recent first.
	Log []updatelog.DisplayRecord
}

// Client owns the reconciled-view cell for one session. Notification state is
// scoped to the client, and a client wraps exactly one channel, so a reconnect
// (a new channel, a new client) starts with clean turn bookkeeping.
type Client struct {
	channel  Channel
	gameCode string
	ident    identity.Identity
	notifier *notify.TurnNotifier

	mu   sync.RWMutex
	view *reconcile.View

	views chan ViewUpdate
	alive atomic.Bool
}

// New builds a client around an open channel.
func New(channel Channel, gameCode, clientToken string) *Client {
	c := &Client{
		channel:  channel,
		gameCode: gameCode,
		ident:    identity.New(clientToken),
		notifier: notify.NewTurnNotifier(),
		views:    make(chan ViewUpdate, 8),
	}
	c.alive.Store(true)
	return c
}

// ParticipantID is the local participant's derived id.
func (c *Client) ParticipantID() identity.ParticipantID { return c.ident.ID }

// Views streams one update per applied snapshot. The channel is closed when
// Run returns.
func (c *Client) Views() <-chan ViewUpdate { return c.views }

// View returns the current reconciled view. The second result is false until
// the first snapshot has been applied.
func (c *Client) View() (reconcile.View, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.view == nil {
		return reconcile.View{}, false
	}
	return *c.view, true
}

// Run processes inbound frames until the channel terminates or ctx is
// cancelled. It must be the only goroutine driving the client.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.views)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok := <-c.channel.Frames():
			if !ok {
				// Terminal close; the session already logged the cause.
				return nil
			}
			c.handleFrame(frame)
		}
	}
}

// Close tears the client down: no state mutation may be observed afterwards,
// even for a frame received just before. Safe to call repeatedly.
func (c *Client) Close() {
	c.alive.Store(false)
	c.channel.Close()
}

func (c *Client) handleFrame(frame []byte) {
	env, err := protocol.ValidateEnvelope(frame)
	if err != nil {
		// The previously reconciled view stands untouched.
		log.Warn().
			Err(err).
			Str("game_code", c.gameCode).
			Msg("discarding invalid message")
		return
	}

	// Teardown may have started while this frame was in flight.
	if !c.alive.Load() {
		return
	}

	c.mu.Lock()
	prev := c.view
	view := reconcile.Reconcile(prev, env.GameState, c.ident)
	c.view = &view
	c.mu.Unlock()

	update := ViewUpdate{
		View:     view,
		YourTurn: c.notifier.Observe(view),
		Log:      updatelog.Project(env.GameState),
	}
	c.deliver(update)
}

// deliver never blocks the frame loop: when the consumer lags, the oldest
// pending view is dropped, since every snapshot supersedes the ones before it.
func (c *Client) deliver(update ViewUpdate) {
	for {
		select {
		case c.views <- update:
			return
		default:
			select {
			case <-c.views:
			default:
			}
		}
	}
}
