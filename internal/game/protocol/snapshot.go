package protocol

import (
	json "github.com/goccy/go-json"
)

// EnvelopeType classifies the inbound envelope by how the server sees the
// receiving connection.
type EnvelopeType string

const (
	EnvelopePlayer    EnvelopeType = "player"
	EnvelopeSpectator EnvelopeType = "spectator"
	EnvelopeUnknown   EnvelopeType = "unknown"
)

// GamePhase is the coarse lifecycle state carried in every snapshot.
type GamePhase string

const (
	PhaseLobby GamePhase = "lobby"
	PhaseGame  GamePhase = "game"
	PhaseEnded GamePhase = "ended"
)

// ConnectionType distinguishes playing connections from watching ones.
type ConnectionType string

const (
	ConnectionPlayer    ConnectionType = "player"
	ConnectionSpectator ConnectionType = "spectator"
)

// OverallBetType is the wager direction of an overall bet.
type OverallBetType string

const (
	OverallBetNone   OverallBetType = "none"
	OverallBetWinner OverallBetType = "winner"
	OverallBetLoser  OverallBetType = "loser"
)

// Envelope is the wire-level wrapper around every inbound message.
type Envelope struct {
	WebsocketID string             `json:"websocket_id"`
	Type        EnvelopeType       `json:"type"`
	Name        string             `json:"name"`
	GameState   *GameStateSnapshot `json:"game_state"`
}

// Connection is one channel the server has accepted, player or spectator.
type Connection struct {
	WebsocketID    string         `json:"websocket_id"`
	Name           string         `json:"name"`
	ConnectionType ConnectionType `json:"connection_type"`
	Active         bool           `json:"active"`
	IsHost         bool           `json:"is_host"`
}

// LegBet is a single leg-bet card held by a player. Winnings has one slot per
// placing tier (first, second, third-or-worse).
type LegBet struct {
	FrogIdx  int   `json:"frog_idx"`
	Winnings []int `json:"winnings"`
}

// PlayerStats are the per-player counters the server keeps over one game.
type PlayerStats struct {
	FrogsMoved        int `json:"frogs_moved"`
	LegBetsPlaced     int `json:"leg_bets_placed"`
	OverallBetsPlaced int `json:"overall_bets_placed"`
	TilesPlaced       int `json:"tiles_placed"`
	GoldWon           int `json:"gold_won"`
}

// Player is one participant's full betting position.
type Player struct {
	PlayerID string `json:"player_id"`
	// Connection back-references the transport-level record for this player.
	Connection Connection `json:"connection"`
	Gold       int        `json:"gold"`
	LegBets    []LegBet   `json:"leg_bets"`
	// OverallBets is indexed by frog index.
	OverallBets []OverallBetType `json:"overall_bets"`
	// SpectatorTileIdx is -1 while the player has no tile on the track.
	SpectatorTileIdx int         `json:"spectator_tile_idx"`
	Stats            PlayerStats `json:"stats"`
}

// Frog is immutable for the life of a game.
type Frog struct {
	Idx           int    `json:"idx"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	StartPos      int    `json:"start_pos"`
	IsForwardFrog bool   `json:"is_forward_frog"`
	Moves         []int  `json:"moves"`
}

// SpectatorTile is a ±1 track modifier owned by a player.
type SpectatorTile struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Direction  int    `json:"direction"`
}

// Tile holds the frog stack occupying one track position, ordered bottom to
// top, plus an optional spectator tile.
type Tile struct {
	Frogs         []int          `json:"frogs"`
	SpectatorTile *SpectatorTile `json:"spectator_tile,omitempty"`
}

// StatEntry is one (player, metric) pair of the end-of-game stat board.
type StatEntry struct {
	PlayerID string `json:"player_id"`
	Label    string `json:"label"`
	Value    int    `json:"value"`
}

// EndGameStats is present only once the game has ended.
type EndGameStats struct {
	Winner   Player      `json:"winner"`
	Placings []string    `json:"placings"`
	Stats    []StatEntry `json:"stats"`
}

// GameStateSnapshot is the complete authoritative state the server sends.
// Every snapshot fully replaces the previous one; there are no deltas.
type GameStateSnapshot struct {
	GameCode     string    `json:"game_code"`
	State        GamePhase `json:"state"`
	CurrentRound int       `json:"current_round"`
	TurnNumber   int       `json:"turn_number"`

	// RawUpdates carries the undecoded event log; Updates is populated by
	// ValidateEnvelope once every variant has passed its own schema check.
	RawUpdates []json.RawMessage `json:"updates"`
	Updates    []Update          `json:"-"`

	Connections []Connection      `json:"connections"`
	Players     map[string]Player `json:"players"`
	PlayerOrder []string          `json:"player_order"`

	// CurrentTurn is a pointer so an absent field is distinguishable from an
	// empty one; empty means no one's turn.
	CurrentTurn *string `json:"current_turn"`
	NotifyTurn  bool    `json:"notify_turn"`

	NumTiles     int        `json:"num_tiles"`
	Track        []Tile     `json:"track"`
	Frogs        []Frog     `json:"frogs"`
	UnmovedFrogs []int      `json:"unmoved_frogs"`
	LegBets      [][]LegBet `json:"leg_bets"`

	EndGameStats *EndGameStats `json:"end_game_stats,omitempty"`
}
