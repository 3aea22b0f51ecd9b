package protocol

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// UpdateKind discriminates the variants of the server's append-only event log.
type UpdateKind string

const (
	UpdateMoveFrog              UpdateKind = "player_move_frog"
	UpdateLegBet                UpdateKind = "player_leg_bet"
	UpdateOverallBet            UpdateKind = "player_overall_bet"
	UpdateSpectatorTilePlaced   UpdateKind = "player_spectator_tile"
	UpdateSpectatorTileWinnings UpdateKind = "spectator_tile_winnings"
	UpdateLegBetWinnings        UpdateKind = "leg_bet_winnings"
	UpdateOverallBetWinnings    UpdateKind = "overall_bet_winnings"
	UpdateEndGame               UpdateKind = "end_game_update"
)

// Update is one entry of the heterogeneous game log. The client never mutates
// the log, it only re-renders it.
type Update interface {
	Kind() UpdateKind
	// Actor returns the player the entry is attributed to.
	Actor() string
}

type MoveFrogUpdate struct {
	PlayerID string `json:"player_id"`
	FrogIdx  int    `json:"frog_idx"`
	FromTile int    `json:"from_tile"`
	ToTile   int    `json:"to_tile"`
}

type LegBetUpdate struct {
	PlayerID string `json:"player_id"`
	FrogIdx  int    `json:"frog_idx"`
}

type OverallBetUpdate struct {
	PlayerID string         `json:"player_id"`
	BetType  OverallBetType `json:"bet_type"`
}

type SpectatorTilePlacedUpdate struct {
	PlayerID  string `json:"player_id"`
	TileIdx   int    `json:"tile_idx"`
	Direction int    `json:"direction"`
}

type SpectatorTileWinningsUpdate struct {
	PlayerID string `json:"player_id"`
	FrogIdx  int    `json:"frog_idx"`
	FromTile int    `json:"from_tile"`
	ToTile   int    `json:"to_tile"`
}

type LegBetWinningsUpdate struct {
	PlayerID    string `json:"player_id"`
	FrogIdx     int    `json:"frog_idx"`
	FrogPlacing int    `json:"frog_placing"`
	Winnings    int    `json:"winnings"`
}

type OverallBetWinningsUpdate struct {
	PlayerID string         `json:"player_id"`
	BetType  OverallBetType `json:"bet_type"`
	FrogIdx  int            `json:"frog_idx"`
	Winnings int            `json:"winnings"`
}

type EndGameUpdate struct {
	PlayerID       string   `json:"player_id"`
	PlayerRankings []string `json:"player_rankings"`
	WinningFrogIdx int      `json:"winning_frog_idx"`
}

func (MoveFrogUpdate) Kind() UpdateKind              { return UpdateMoveFrog }
func (LegBetUpdate) Kind() UpdateKind                { return UpdateLegBet }
func (OverallBetUpdate) Kind() UpdateKind            { return UpdateOverallBet }
func (SpectatorTilePlacedUpdate) Kind() UpdateKind   { return UpdateSpectatorTilePlaced }
func (SpectatorTileWinningsUpdate) Kind() UpdateKind { return UpdateSpectatorTileWinnings }
func (LegBetWinningsUpdate) Kind() UpdateKind        { return UpdateLegBetWinnings }
func (OverallBetWinningsUpdate) Kind() UpdateKind    { return UpdateOverallBetWinnings }
func (EndGameUpdate) Kind() UpdateKind               { return UpdateEndGame }

func (u MoveFrogUpdate) Actor() string              { return u.PlayerID }
func (u LegBetUpdate) Actor() string                { return u.PlayerID }
func (u OverallBetUpdate) Actor() string            { return u.PlayerID }
func (u SpectatorTilePlacedUpdate) Actor() string   { return u.PlayerID }
func (u SpectatorTileWinningsUpdate) Actor() string { return u.PlayerID }
func (u LegBetWinningsUpdate) Actor() string        { return u.PlayerID }
func (u OverallBetWinningsUpdate) Actor() string    { return u.PlayerID }
func (u EndGameUpdate) Actor() string               { return u.PlayerID }

// ParseUpdate decodes one log entry by its discriminant tag. Each variant is
// checked independently; an unrecognized tag is an error rather than a
// best-effort structural guess.
func ParseUpdate(raw json.RawMessage) (Update, error) {
	var tag struct {
		Type UpdateKind `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("update has no readable type tag: %w", err)
	}

	switch tag.Type {
	case UpdateMoveFrog:
		var u MoveFrogUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	case UpdateLegBet:
		var u LegBetUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	case UpdateOverallBet:
		var u OverallBetUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	case UpdateSpectatorTilePlaced:
		var u SpectatorTilePlacedUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	case UpdateSpectatorTileWinnings:
		var u SpectatorTileWinningsUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	case UpdateLegBetWinnings:
		var u LegBetWinningsUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	case UpdateOverallBetWinnings:
		var u OverallBetWinningsUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	case UpdateEndGame:
		var u EndGameUpdate
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil

	default:
		return nil, fmt.Errorf("unknown update type %q", tag.Type)
	}
}
