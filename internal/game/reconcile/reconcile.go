// Package reconcile turns validated snapshots into the view the rest of the
// client reads. The snapshot is replaced wholesale on every message; every
// derived field is recomputed from scratch so nothing can drift between the
// server's state and the local one.
package reconcile

import (
	"sort"

	"github.com/leapfrog-games/leapfrog-go/internal/game/identity"
	"github.com/leapfrog-games/leapfrog-go/internal/game/protocol"
)

// WinningsTable accumulates a player's leg-bet winnings per frog index. Each
// entry has one slot per placing tier, summed element-wise over all bets the
// player holds on that frog.
type WinningsTable map[int][3]int

// View is the reconciled snapshot plus everything derived from it that the
// server does not literally echo.
type View struct {
	Snapshot *protocol.GameStateSnapshot
	Me       identity.Identity

	// MyPlayer is nil when the local participant is not a player in the
	// snapshot (spectator or not yet joined).
	MyPlayer *protocol.Player
	IsMyTurn bool

	// MovedFrogs is the ascending complement of unmoved_frogs within the
	// snapshot's frog index range.
	MovedFrogs []int

	// LegBetTotals maps player id to that player's accumulated winnings table.
	LegBetTotals map[string]WinningsTable

	// ConnectionType is how the server classifies the local connection;
	// spectator when the token matches no connection at all.
	ConnectionType protocol.ConnectionType
}

// Reconcile computes a fresh View from a validated snapshot. The previous view
// is accepted only to make the replace-wholesale contract explicit at call
// sites; nothing is merged from it. Reconcile never fails for a snapshot that
// passed validation: cross-field oddities degrade (an unknown current_turn is
// nobody's turn) instead of erroring.
func Reconcile(_ *View, snap *protocol.GameStateSnapshot, me identity.Identity) View {
	view := View{
		Snapshot:       snap,
		Me:             me,
		MovedFrogs:     movedFrogs(snap),
		LegBetTotals:   legBetTotals(snap),
		ConnectionType: localConnectionType(snap, me.Token),
	}

	if player, ok := snap.Players[string(me.ID)]; ok {
		view.MyPlayer = &player
	}

	if turn := currentTurn(snap); turn != "" {
		view.IsMyTurn = turn == string(me.ID)
	}

	return view
}

// currentTurn resolves the active player id, treating a turn pointer that
// names no known player as no one's turn.
func currentTurn(snap *protocol.GameStateSnapshot) string {
	if snap.CurrentTurn == nil || *snap.CurrentTurn == "" {
		return ""
	}
	if _, ok := snap.Players[*snap.CurrentTurn]; !ok {
		return ""
	}
	return *snap.CurrentTurn
}

func movedFrogs(snap *protocol.GameStateSnapshot) []int {
	unmoved := make(map[int]bool, len(snap.UnmovedFrogs))
	for _, idx := range snap.UnmovedFrogs {
		unmoved[idx] = true
	}
	moved := make([]int, 0, len(snap.Frogs))
	for idx := range snap.Frogs {
		if !unmoved[idx] {
			moved = append(moved, idx)
		}
	}
	sort.Ints(moved)
	return moved
}

func legBetTotals(snap *protocol.GameStateSnapshot) map[string]WinningsTable {
	totals := make(map[string]WinningsTable, len(snap.Players))
	for id, player := range snap.Players {
		totals[id] = AccumulateLegBets(player.LegBets)
	}
	return totals
}

// AccumulateLegBets groups bets by frog index and sums their winnings slots
// element-wise. Bets accumulate over a round, so this must be recomputed on
// every reconciliation rather than patched incrementally.
func AccumulateLegBets(bets []protocol.LegBet) WinningsTable {
	table := make(WinningsTable)
	for _, bet := range bets {
		slots := table[bet.FrogIdx]
		for i := 0; i < len(slots) && i < len(bet.Winnings); i++ {
			slots[i] += bet.Winnings[i]
		}
		table[bet.FrogIdx] = slots
	}
	return table
}

func localConnectionType(snap *protocol.GameStateSnapshot, token string) protocol.ConnectionType {
	for _, conn := range snap.Connections {
		if conn.WebsocketID == token {
			return conn.ConnectionType
		}
	}
	return protocol.ConnectionSpectator
}
