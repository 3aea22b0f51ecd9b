package protocol

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalToMap(t *testing.T, event any) map[string]any {
	t.Helper()
	raw, err := EncodeEvent(event)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestLegBetEventWireShape(t *testing.T) {
	m := marshalToMap(t, NewLegBetEvent("ABCD", "aaaa1111", 1))
	assert.Equal(t, map[string]any{
		"type":        "leg_bet",
		"gameCode":    "ABCD",
		"websocketId": "aaaa1111",
		"frogIdx":     float64(1),
	}, m)
}

func TestMoveFrogEventWireShape(t *testing.T) {
	m := marshalToMap(t, NewMoveFrogEvent("ABCD", "aaaa1111"))
	assert.Equal(t, map[string]any{
		"type":        "move_frog",
		"gameCode":    "ABCD",
		"websocketId": "aaaa1111",
	}, m)
}

func TestPlayerJoinEventCarriesNoParticipantID(t *testing.T) {
	m := marshalToMap(t, NewPlayerJoinEvent("ABCD", "alice"))
	assert.Equal(t, map[string]any{
		"type":       "player_join",
		"gameCode":   "ABCD",
		"playerName": "alice",
	}, m)
}

func TestOverallBetEventWireShape(t *testing.T) {
	m := marshalToMap(t, NewOverallBetEvent("ABCD", "aaaa1111", 3, OverallBetWinner))
	assert.Equal(t, map[string]any{
		"type":        "overall_bet",
		"gameCode":    "ABCD",
		"websocketId": "aaaa1111",
		"frogIdx":     float64(3),
		"betType":     "winner",
	}, m)
}

func TestSpectatorTileEventWireShape(t *testing.T) {
	m := marshalToMap(t, NewSpectatorTileEvent("ABCD", "aaaa1111", 7, -1))
	assert.Equal(t, map[string]any{
		"type":         "spectator_tile",
		"gameCode":     "ABCD",
		"websocketId":  "aaaa1111",
		"tileIdx":      float64(7),
		"displacement": float64(-1),
	}, m)
}

func TestResetGameEventUsesEndGameTag(t *testing.T) {
	m := marshalToMap(t, NewResetGameEvent("ABCD", "aaaa1111"))
	assert.Equal(t, "end_game", m["type"])
	assert.Len(t, m, 3)
}

func TestChooseViewEventWireShape(t *testing.T) {
	m := marshalToMap(t, NewChooseViewEvent("ABCD", ViewSpectator))
	assert.Equal(t, map[string]any{
		"type":     "choose_view",
		"gameCode": "ABCD",
		"view":     "spectator",
	}, m)
}
