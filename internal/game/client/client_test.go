package client

import (
	"context"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapfrog-games/leapfrog-go/internal/game/identity"
	"github.com/leapfrog-games/leapfrog-go/internal/game/protocol"
)

type fakeChannel struct {
	frames chan []byte
	done   chan struct{}
	once   sync.Once

	mu   sync.Mutex
	sent [][]byte
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		frames: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
}

func (f *fakeChannel) Frames() <-chan []byte { return f.frames }
func (f *fakeChannel) Done() <-chan struct{} { return f.done }

func (f *fakeChannel) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, payload)
	return nil
}

func (f *fakeChannel) Close() {
	f.once.Do(func() {
		close(f.done)
		close(f.frames)
	})
}

func (f *fakeChannel) sentPayloads() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.sent...)
}

// envelopeFor builds a valid snapshot frame where the holder of token is the
// current player on the given turn.
func envelopeFor(t *testing.T, token string, turnNumber int, notifyTurn bool) []byte {
	t.Helper()
	me := string(identity.Resolve(token))
	msg := map[string]any{
		"websocket_id": token,
		"type":         "player",
		"name":         "alice",
		"game_state": map[string]any{
			"game_code":     "ABCD",
			"state":         "game",
			"current_round": 1,
			"turn_number":   turnNumber,
			"updates":       []any{},
			"connections": []any{
				map[string]any{"websocket_id": token, "name": "alice", "connection_type": "player", "active": true, "is_host": true},
			},
			"players": map[string]any{
				me: map[string]any{
					"player_id":          me,
					"connection":         map[string]any{"websocket_id": token, "name": "alice", "connection_type": "player", "active": true, "is_host": true},
					"gold":               5,
					"leg_bets":           []any{},
					"overall_bets":       []any{"none"},
					"spectator_tile_idx": -1,
					"stats":              map[string]any{},
				},
			},
			"player_order":  []any{me},
			"current_turn":  me,
			"notify_turn":   notifyTurn,
			"num_tiles":     15,
			"track":         []any{},
			"frogs":         []any{map[string]any{"idx": 0, "name": "Froggo", "color": "#4F7942", "start_pos": 0, "is_forward_frog": true, "moves": []any{1, 2, 3}}},
			"unmoved_frogs": []any{0},
			"leg_bets":      []any{},
		},
	}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	return raw
}

func recvUpdate(t *testing.T, ch <-chan ViewUpdate, within time.Duration) ViewUpdate {
	t.Helper()
	select {
	case update, ok := <-ch:
		if !ok {
			t.Fatalf("views channel closed unexpectedly")
		}
		return update
	case <-time.After(within):
		t.Fatalf("timed out waiting for view update")
		return ViewUpdate{} // unreachable
	}
}

func TestRunNotifiesOncePerTurn(t *testing.T) {
	ch := newFakeChannel()
	c := New(ch, "ABCD", "tok-1")

	// Same turn delivered twice in a row, e.g. after a no-op state change.
	ch.frames <- envelopeFor(t, "tok-1", 5, true)
	ch.frames <- envelopeFor(t, "tok-1", 5, true)

	runDone := make(chan error, 1)
	go func() { runDone <- c.Run(context.Background()) }()

	first := recvUpdate(t, c.Views(), time.Second)
	assert.True(t, first.YourTurn)
	assert.True(t, first.View.IsMyTurn)

	second := recvUpdate(t, c.Views(), time.Second)
	assert.False(t, second.YourTurn)

	ch.frames <- envelopeFor(t, "tok-1", 6, true)
	third := recvUpdate(t, c.Views(), time.Second)
	assert.True(t, third.YourTurn)

	c.Close()
	require.NoError(t, <-runDone)
}

func TestInvalidFrameKeepsViewUnchanged(t *testing.T) {
	ch := newFakeChannel()
	c := New(ch, "ABCD", "tok-1")

	ch.frames <- envelopeFor(t, "tok-1", 5, false)

	go func() { _ = c.Run(context.Background()) }()
	recvUpdate(t, c.Views(), time.Second)

	before, ok := c.View()
	require.True(t, ok)
	beforeRaw, err := json.Marshal(before.Snapshot)
	require.NoError(t, err)

	// current_turn is required; the previously reconciled view must stand.
	ch.frames <- []byte(`{"type":"player","game_state":{"game_code":"ABCD","state":"game"}}`)
	time.Sleep(50 * time.Millisecond) // allow the frame to be discarded

	after, ok := c.View()
	require.True(t, ok)
	afterRaw, err := json.Marshal(after.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, beforeRaw, afterRaw)
	assert.Equal(t, 5, after.Snapshot.TurnNumber)

	c.Close()
}

func TestCloseSuppressesInFlightFrame(t *testing.T) {
	ch := newFakeChannel()
	c := New(ch, "ABCD", "tok-1")

	// A frame is already in flight when the screen is left.
	ch.frames <- envelopeFor(t, "tok-1", 5, true)
	c.alive.Store(false)

	runDone := make(chan error, 1)
	go func() { runDone <- c.Run(context.Background()) }()

	// The pending frame must not be applied.
	ch.Close()
	require.NoError(t, <-runDone)

	_, ok := c.View()
	assert.False(t, ok)

	// And no view update may have been emitted.
	_, open := <-c.Views()
	assert.False(t, open)
}

func TestRunEndsWhenChannelCloses(t *testing.T) {
	ch := newFakeChannel()
	c := New(ch, "ABCD", "tok-1")

	runDone := make(chan error, 1)
	go func() { runDone <- c.Run(context.Background()) }()

	ch.Close()
	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after channel close")
	}
}

func TestDispatcherLegBetWireShape(t *testing.T) {
	ch := newFakeChannel()
	c := New(ch, "ABCD", "tok-1")

	require.NoError(t, c.LegBet(1))

	payloads := ch.sentPayloads()
	require.Len(t, payloads, 1)

	var m map[string]any
	require.NoError(t, json.Unmarshal(payloads[0], &m))
	assert.Equal(t, map[string]any{
		"type":        "leg_bet",
		"gameCode":    "ABCD",
		"websocketId": string(identity.Resolve("tok-1")),
		"frogIdx":     float64(1),
	}, m)
}

func TestDispatcherRejectsBadDisplacement(t *testing.T) {
	ch := newFakeChannel()
	c := New(ch, "ABCD", "tok-1")

	require.Error(t, c.SpectatorTile(3, 0))
	require.Error(t, c.OverallBet(0, protocol.OverallBetNone))
	assert.Empty(t, ch.sentPayloads())
}

func TestDispatcherJoinOmitsParticipantID(t *testing.T) {
	ch := newFakeChannel()
	c := New(ch, "ABCD", "tok-1")

	require.NoError(t, c.Join("alice"))
	payloads := ch.sentPayloads()
	require.Len(t, payloads, 1)

	var m map[string]any
	require.NoError(t, json.Unmarshal(payloads[0], &m))
	assert.NotContains(t, m, "websocketId")
	assert.Equal(t, "player_join", m["type"])
}
