package protocol

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// ValidationError reports the first field of an inbound message that failed
// its schema check. A message that produces one must not be applied; the
// previously reconciled view stands.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid message: %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateEnvelope parses and schema-checks one raw inbound frame. Validation
// is total: either every nested field matches its declared type and enum and a
// fully-typed envelope is returned, or an error is returned and nothing of the
// frame may be used. Cross-field consistency (current_turn pointing at a known
// player, num_tiles agreeing with the track) is deliberately not enforced
// here; the reconciler tolerates those.
func ValidateEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, invalid("envelope", "not a well-formed message: %v", err)
	}

	switch env.Type {
	case EnvelopePlayer, EnvelopeSpectator, EnvelopeUnknown:
	default:
		return nil, invalid("type", "unknown envelope type %q", env.Type)
	}

	if env.GameState == nil {
		return nil, invalid("game_state", "missing")
	}
	if err := validateSnapshot(env.GameState); err != nil {
		return nil, err
	}
	return &env, nil
}

func validateSnapshot(snap *GameStateSnapshot) error {
	switch snap.State {
	case PhaseLobby, PhaseGame, PhaseEnded:
	default:
		return invalid("game_state.state", "unknown phase %q", snap.State)
	}

	if snap.CurrentTurn == nil {
		return invalid("game_state.current_turn", "missing")
	}

	for id, player := range snap.Players {
		if err := validatePlayer(id, player); err != nil {
			return err
		}
	}

	for i, conn := range snap.Connections {
		if err := validateConnectionType(fmt.Sprintf("game_state.connections[%d]", i), conn.ConnectionType); err != nil {
			return err
		}
	}

	for i, idx := range snap.UnmovedFrogs {
		if idx < 0 || idx >= len(snap.Frogs) {
			return invalid(fmt.Sprintf("game_state.unmoved_frogs[%d]", i), "frog index %d out of range", idx)
		}
	}

	for i, tile := range snap.Track {
		for j, idx := range tile.Frogs {
			if idx < 0 || idx >= len(snap.Frogs) {
				return invalid(fmt.Sprintf("game_state.track[%d].frogs[%d]", i, j), "frog index %d out of range", idx)
			}
		}
		if st := tile.SpectatorTile; st != nil && st.Direction != -1 && st.Direction != 1 {
			return invalid(fmt.Sprintf("game_state.track[%d].spectator_tile.direction", i), "must be -1 or +1, got %d", st.Direction)
		}
	}

	updates := make([]Update, 0, len(snap.RawUpdates))
	for i, raw := range snap.RawUpdates {
		update, err := ParseUpdate(raw)
		if err != nil {
			return invalid(fmt.Sprintf("game_state.updates[%d]", i), "%v", err)
		}
		if err := validateUpdate(i, update); err != nil {
			return err
		}
		updates = append(updates, update)
	}
	snap.Updates = updates

	if snap.State == PhaseEnded && snap.EndGameStats == nil {
		return invalid("game_state.end_game_stats", "missing for ended game")
	}

	return nil
}

func validatePlayer(id string, player Player) error {
	field := fmt.Sprintf("game_state.players[%s]", id)
	for i, bet := range player.OverallBets {
		switch bet {
		case OverallBetNone, OverallBetWinner, OverallBetLoser:
		default:
			return invalid(fmt.Sprintf("%s.overall_bets[%d]", field, i), "unknown bet %q", bet)
		}
	}
	for i, legBet := range player.LegBets {
		if legBet.FrogIdx < 0 {
			return invalid(fmt.Sprintf("%s.leg_bets[%d].frog_idx", field, i), "negative frog index %d", legBet.FrogIdx)
		}
	}
	if err := validateConnectionType(field+".connection", player.Connection.ConnectionType); err != nil {
		return err
	}
	return nil
}

func validateConnectionType(field string, ct ConnectionType) error {
	switch ct {
	case ConnectionPlayer, ConnectionSpectator:
		return nil
	default:
		return invalid(field+".connection_type", "unknown connection type %q", ct)
	}
}

func validateUpdate(i int, update Update) error {
	field := func(sub string) string { return fmt.Sprintf("game_state.updates[%d].%s", i, sub) }

	switch u := update.(type) {
	case MoveFrogUpdate:
		if u.FrogIdx < 0 {
			return invalid(field("frog_idx"), "negative frog index %d", u.FrogIdx)
		}
	case LegBetUpdate:
		if u.FrogIdx < 0 {
			return invalid(field("frog_idx"), "negative frog index %d", u.FrogIdx)
		}
	case OverallBetUpdate:
		if u.BetType != OverallBetWinner && u.BetType != OverallBetLoser {
			return invalid(field("bet_type"), "unknown bet %q", u.BetType)
		}
	case SpectatorTilePlacedUpdate:
		if u.TileIdx < 0 {
			return invalid(field("tile_idx"), "negative tile index %d", u.TileIdx)
		}
		if u.Direction != -1 && u.Direction != 1 {
			return invalid(field("direction"), "must be -1 or +1, got %d", u.Direction)
		}
	case SpectatorTileWinningsUpdate:
		if u.FrogIdx < 0 {
			return invalid(field("frog_idx"), "negative frog index %d", u.FrogIdx)
		}
	case LegBetWinningsUpdate:
		if u.FrogIdx < 0 {
			return invalid(field("frog_idx"), "negative frog index %d", u.FrogIdx)
		}
	case OverallBetWinningsUpdate:
		if u.FrogIdx < 0 {
			return invalid(field("frog_idx"), "negative frog index %d", u.FrogIdx)
		}
		if u.BetType != OverallBetWinner && u.BetType != OverallBetLoser {
			return invalid(field("bet_type"), "unknown bet %q", u.BetType)
		}
	case EndGameUpdate:
		if u.WinningFrogIdx < 0 {
			return invalid(field("winning_frog_idx"), "negative frog index %d", u.WinningFrogIdx)
		}
	}
	return nil
}
