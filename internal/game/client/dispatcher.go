package client

import (
	"fmt"

	"github.com/leapfrog-games/leapfrog-go/internal/game/protocol"
)

// Action dispatch. Every method builds one flat outbound event and sends it
// fire-and-forget: there is no acknowledgement, correlation or timeout, and no
// client-side authorization — the server is the sole authority and may ignore
// anything it considers invalid. Success is only observable through the next
// snapshot's side effects.

func (c *Client) send(event any) error {
	payload, err := protocol.EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	return c.channel.Send(payload)
}

// Join asks to enter the game as a named player.
func (c *Client) Join(playerName string) error {
	return c.send(protocol.NewPlayerJoinEvent(c.gameCode, playerName))
}

// ChooseView selects between playing and spectating.
func (c *Client) ChooseView(view protocol.ViewChoice) error {
	return c.send(protocol.NewChooseViewEvent(c.gameCode, view))
}

// StartGame moves the lobby into the racing phase.
func (c *Client) StartGame() error {
	return c.send(protocol.NewStartGameEvent(c.gameCode, c.ident.ID.String()))
}

// MoveFrog draws a movement and advances the chosen frog.
func (c *Client) MoveFrog() error {
	return c.send(protocol.NewMoveFrogEvent(c.gameCode, c.ident.ID.String()))
}

// LegBet takes the top leg-bet card for a frog.
func (c *Client) LegBet(frogIdx int) error {
	return c.send(protocol.NewLegBetEvent(c.gameCode, c.ident.ID.String(), frogIdx))
}

// OverallBet wagers on a frog winning or losing the race outright.
func (c *Client) OverallBet(frogIdx int, betType protocol.OverallBetType) error {
	if betType != protocol.OverallBetWinner && betType != protocol.OverallBetLoser {
		return fmt.Errorf("bad overall bet type %q", betType)
	}
	return c.send(protocol.NewOverallBetEvent(c.gameCode, c.ident.ID.String(), frogIdx, betType))
}

// SpectatorTile places a ±1 track modifier on a tile.
func (c *Client) SpectatorTile(tileIdx, displacement int) error {
	if displacement != -1 && displacement != 1 {
		return fmt.Errorf("bad displacement %d, must be -1 or +1", displacement)
	}
	return c.send(protocol.NewSpectatorTileEvent(c.gameCode, c.ident.ID.String(), tileIdx, displacement))
}

// ResetGame returns an ended game to the lobby.
func (c *Client) ResetGame() error {
	return c.send(protocol.NewResetGameEvent(c.gameCode, c.ident.ID.String()))
}
