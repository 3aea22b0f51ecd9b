package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapfrog-games/leapfrog-go/internal/game/identity"
	"github.com/leapfrog-games/leapfrog-go/internal/game/protocol"
	"github.com/leapfrog-games/leapfrog-go/internal/game/reconcile"
)

func turnView(turnNumber int, notify, myTurn bool) reconcile.View {
	return reconcile.View{
		Snapshot: &protocol.GameStateSnapshot{
			TurnNumber: turnNumber,
			NotifyTurn: notify,
		},
		Me:       identity.New("tok-1"),
		IsMyTurn: myTurn,
	}
}

func TestObserveFiresOncePerTurnNumber(t *testing.T) {
	n := NewTurnNotifier()
	assert.True(t, n.Observe(turnView(5, true, true)))
	// Same snapshot re-observed, e.g. across a re-render.
	assert.False(t, n.Observe(turnView(5, true, true)))
	assert.True(t, n.Observe(turnView(6, true, true)))
}

func TestObserveIgnoresOtherTurns(t *testing.T) {
	n := NewTurnNotifier()
	assert.False(t, n.Observe(turnView(5, true, false)))
	assert.False(t, n.Observe(turnView(5, false, true)))
}

func TestObserveNilSnapshot(t *testing.T) {
	n := NewTurnNotifier()
	assert.False(t, n.Observe(reconcile.View{IsMyTurn: true}))
}

func TestResetAllowsRefireAfterReconnect(t *testing.T) {
	n := NewTurnNotifier()
	assert.True(t, n.Observe(turnView(5, true, true)))
	n.Reset()
	assert.True(t, n.Observe(turnView(5, true, true)))
}
