// Package notify deduplicates the "your turn" signal. The server sets
// notify_turn on every snapshot of an active turn, and the same snapshot may
// be observed repeatedly, so firing is keyed on the turn number instead.
package notify

import (
	"sync"

	"github.com/leapfrog-games/leapfrog-go/internal/game/reconcile"
)

// TurnNotifier emits at most one notification per distinct turn number for
// the local participant. State is session-scoped: the server does not replay
// suppressed notifications, so Reset must be called on every new channel open.
type TurnNotifier struct {
	mu               sync.Mutex
	lastNotifiedTurn *int
}

func NewTurnNotifier() *TurnNotifier {
	return &TurnNotifier{}
}

// Observe inspects a reconciled view and reports whether a one-shot
// "your turn" signal should fire for it.
func (n *TurnNotifier) Observe(view reconcile.View) bool {
	if view.Snapshot == nil || !view.Snapshot.NotifyTurn || !view.IsMyTurn {
		return false
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	turn := view.Snapshot.TurnNumber
	if n.lastNotifiedTurn != nil && *n.lastNotifiedTurn == turn {
		return false
	}
	n.lastNotifiedTurn = &turn
	return true
}

// Reset clears the bookkeeping. The next qualifying view fires again even if
// its turn number was already seen on a previous channel.
func (n *TurnNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.lastNotifiedTurn = nil
}
