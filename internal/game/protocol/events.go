package protocol

import (
	json "github.com/goccy/go-json"
)

// Outbound events. Each is a flat object with a literal type tag plus the
// minimal required fields; the server accepts camelCase keys. Dispatch is
// fire-and-forget, so there is no id or timestamp to correlate replies with.

// ViewChoice selects how a joining connection wants to see the game.
type ViewChoice string

const (
	ViewPlayer    ViewChoice = "player"
	ViewSpectator ViewChoice = "spectator"
)

type ChooseViewEvent struct {
	Type     string     `json:"type"`
	GameCode string     `json:"gameCode"`
	View     ViewChoice `json:"view"`
}

type PlayerJoinEvent struct {
	Type       string `json:"type"`
	GameCode   string `json:"gameCode"`
	PlayerName string `json:"playerName"`
}

type StartGameEvent struct {
	Type        string `json:"type"`
	GameCode    string `json:"gameCode"`
	WebsocketID string `json:"websocketId"`
}

type MoveFrogEvent struct {
	Type        string `json:"type"`
	GameCode    string `json:"gameCode"`
	WebsocketID string `json:"websocketId"`
}

type LegBetEvent struct {
	Type        string `json:"type"`
	GameCode    string `json:"gameCode"`
	WebsocketID string `json:"websocketId"`
	FrogIdx     int    `json:"frogIdx"`
}

type OverallBetEvent struct {
	Type        string         `json:"type"`
	GameCode    string         `json:"gameCode"`
	WebsocketID string         `json:"websocketId"`
	FrogIdx     int            `json:"frogIdx"`
	BetType     OverallBetType `json:"betType"`
}

type SpectatorTileEvent struct {
	Type         string `json:"type"`
	GameCode     string `json:"gameCode"`
	WebsocketID  string `json:"websocketId"`
	TileIdx      int    `json:"tileIdx"`
	Displacement int    `json:"displacement"`
}

type ResetGameEvent struct {
	Type        string `json:"type"`
	GameCode    string `json:"gameCode"`
	WebsocketID string `json:"websocketId"`
}

func NewChooseViewEvent(gameCode string, view ViewChoice) ChooseViewEvent {
	return ChooseViewEvent{Type: "choose_view", GameCode: gameCode, View: view}
}

func NewPlayerJoinEvent(gameCode, playerName string) PlayerJoinEvent {
	return PlayerJoinEvent{Type: "player_join", GameCode: gameCode, PlayerName: playerName}
}

func NewStartGameEvent(gameCode, websocketID string) StartGameEvent {
	return StartGameEvent{Type: "start_game", GameCode: gameCode, WebsocketID: websocketID}
}

func NewMoveFrogEvent(gameCode, websocketID string) MoveFrogEvent {
	return MoveFrogEvent{Type: "move_frog", GameCode: gameCode, WebsocketID: websocketID}
}

func NewLegBetEvent(gameCode, websocketID string, frogIdx int) LegBetEvent {
	return LegBetEvent{Type: "leg_bet", GameCode: gameCode, WebsocketID: websocketID, FrogIdx: frogIdx}
}

func NewOverallBetEvent(gameCode, websocketID string, frogIdx int, betType OverallBetType) OverallBetEvent {
	return OverallBetEvent{Type: "overall_bet", GameCode: gameCode, WebsocketID: websocketID, FrogIdx: frogIdx, BetType: betType}
}

func NewSpectatorTileEvent(gameCode, websocketID string, tileIdx, displacement int) SpectatorTileEvent {
	return SpectatorTileEvent{Type: "spectator_tile", GameCode: gameCode, WebsocketID: websocketID, TileIdx: tileIdx, Displacement: displacement}
}

func NewResetGameEvent(gameCode, websocketID string) ResetGameEvent {
	return ResetGameEvent{Type: "end_game", GameCode: gameCode, WebsocketID: websocketID}
}

// EncodeEvent marshals an outbound event for the wire.
func EncodeEvent(event any) ([]byte, error) {
	return json.Marshal(event)
}
