// Package updatelog projects the server's heterogeneous event log into flat
// display records. The log arrives in full with every snapshot, oldest first;
// presentation wants the most recent entry on top.
package updatelog

import (
	"fmt"

	"github.com/leapfrog-games/leapfrog-go/internal/game/protocol"
)

// DisplayRecord is one renderable line of the game log. Identity is carried as
// typed references so a renderer can localize or style without re-deriving who
// did what.
type DisplayRecord struct {
	Kind       protocol.UpdateKind
	PlayerID   string
	PlayerName string
	// FrogIdx is -1 when the record involves no frog.
	FrogIdx   int
	FrogName  string
	FrogColor string
	// Gold is the gold delta the record describes, zero when none.
	Gold int
	Text string
}

// Project maps every update to a record, most recent first. It is total: a
// record is produced for every entry, falling back to placeholder names when
// an id no longer resolves, and never panics on data that passed validation.
func Project(snap *protocol.GameStateSnapshot) []DisplayRecord {
	records := make([]DisplayRecord, 0, len(snap.Updates))
	for i := len(snap.Updates) - 1; i >= 0; i-- {
		records = append(records, project(snap, snap.Updates[i]))
	}
	return records
}

func project(snap *protocol.GameStateSnapshot, update protocol.Update) DisplayRecord {
	rec := DisplayRecord{
		Kind:       update.Kind(),
		PlayerID:   update.Actor(),
		PlayerName: playerName(snap, update.Actor()),
		FrogIdx:    -1,
	}

	switch u := update.(type) {
	case protocol.MoveFrogUpdate:
		rec.setFrog(snap, u.FrogIdx)
		rec.Gold = 1
		rec.Text = fmt.Sprintf("%s moved %s from tile %d to tile %d and gained 1 gold.",
			rec.PlayerName, rec.FrogName, u.FromTile, u.ToTile)

	case protocol.LegBetUpdate:
		rec.setFrog(snap, u.FrogIdx)
		rec.Text = fmt.Sprintf("%s placed a leg bet on %s.", rec.PlayerName, rec.FrogName)

	case protocol.OverallBetUpdate:
		// The frog is deliberately not revealed until the payout.
		rec.Text = fmt.Sprintf("%s placed an overall bet.", rec.PlayerName)

	case protocol.SpectatorTilePlacedUpdate:
		rec.Text = fmt.Sprintf("%s placed a %s spectator tile on tile %d.",
			rec.PlayerName, signed(u.Direction), u.TileIdx)

	case protocol.SpectatorTileWinningsUpdate:
		rec.setFrog(snap, u.FrogIdx)
		rec.Gold = 1
		rec.Text = fmt.Sprintf("%s's spectator tile moved %s from tile %d to tile %d and earned 1 gold.",
			rec.PlayerName, rec.FrogName, u.FromTile, u.ToTile)

	case protocol.LegBetWinningsUpdate:
		rec.setFrog(snap, u.FrogIdx)
		rec.Gold = u.Winnings
		rec.Text = fmt.Sprintf("%s %s %d gold from a leg bet on %s.",
			rec.PlayerName, wonOrLost(u.Winnings), abs(u.Winnings), rec.FrogName)

	case protocol.OverallBetWinningsUpdate:
		rec.setFrog(snap, u.FrogIdx)
		rec.Gold = u.Winnings
		rec.Text = fmt.Sprintf("%s %s %d gold from an overall %s bet on %s.",
			rec.PlayerName, wonOrLost(u.Winnings), abs(u.Winnings), u.BetType, rec.FrogName)

	case protocol.EndGameUpdate:
		rec.setFrog(snap, u.WinningFrogIdx)
		winner := "someone"
		if len(u.PlayerRankings) > 0 {
			winner = playerName(snap, u.PlayerRankings[0])
			rec.PlayerID = u.PlayerRankings[0]
			rec.PlayerName = winner
		}
		rec.Text = fmt.Sprintf("The game has ended, %s has won the game!", winner)

	default:
		rec.Text = "Unknown game update."
	}

	return rec
}

func (rec *DisplayRecord) setFrog(snap *protocol.GameStateSnapshot, idx int) {
	rec.FrogIdx = idx
	if idx >= 0 && idx < len(snap.Frogs) {
		rec.FrogName = snap.Frogs[idx].Name
		rec.FrogColor = snap.Frogs[idx].Color
		return
	}
	rec.FrogName = fmt.Sprintf("frog %d", idx)
}

func playerName(snap *protocol.GameStateSnapshot, id string) string {
	if player, ok := snap.Players[id]; ok && player.Connection.Name != "" {
		return player.Connection.Name
	}
	if id == "" {
		return "someone"
	}
	return id
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func wonOrLost(n int) string {
	if n >= 0 {
		return "won"
	}
	return "lost"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
