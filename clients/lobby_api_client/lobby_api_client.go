// Package lobby_api_client talks to the HTTP endpoints used to create and
// join games before the websocket channel is opened. Calls never retry; a
// rejected call surfaces the server's message verbatim and the user decides
// what to do next.
package lobby_api_client

import (
	"errors"

	"github.com/leapfrog-games/leapfrog-go/clients"
)

// ErrInvalidName rejects a player name locally before it reaches the server.
var ErrInvalidName = errors.New("invalid name, use 1-15 standard English keyboard characters")

// APIError carries the server's own message for a call that came back with
// success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type HostGameResponse struct {
	Success  bool   `json:"success"`
	GameCode string `json:"game_code"`
	Message  string `json:"message"`
}

type JoinGameResponse struct {
	Success          bool   `json:"success"`
	IsExistingPlayer bool   `json:"is_existing_player"`
	Message          string `json:"message"`
}

type CreatePlayerResponse struct {
	Success     bool   `json:"success"`
	WebsocketID string `json:"websocket_id"`
	PlayerID    string `json:"player_id"`
	Message     string `json:"message"`
}

type CreateSpectatorResponse struct {
	Success     bool   `json:"success"`
	WebsocketID string `json:"websocket_id"`
	Message     string `json:"message"`
}

type joinGameRequest struct {
	ClientID *string `json:"clientId"`
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

type LobbyApiClient struct {
	*clients.BaseClient
}

func NewLobbyApiClient(baseURL string) *LobbyApiClient {
	return &LobbyApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
}

// HostGame creates a new game and returns its code.
func (c *LobbyApiClient) HostGame() (*HostGameResponse, error) {
	var resp HostGameResponse
	if err := c.PostJSON(HostGameEndpoint, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return &resp, nil
}

// JoinGame checks whether a game accepts this client. clientID may be empty
// for a first-time visitor.
func (c *LobbyApiClient) JoinGame(gameCode, clientID string) (*JoinGameResponse, error) {
	req := joinGameRequest{}
	if clientID != "" {
		req.ClientID = &clientID
	}

	var resp JoinGameResponse
	if err := c.PostJSON(joinGameEndpoint(gameCode), req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return &resp, nil
}

// CreatePlayer registers a named player and returns the client token the
// channel must be opened with.
func (c *LobbyApiClient) CreatePlayer(gameCode, name string) (*CreatePlayerResponse, error) {
	if !ValidPlayerName(name) {
		return nil, ErrInvalidName
	}

	var resp CreatePlayerResponse
	if err := c.PostJSON(createPlayerEndpoint(gameCode), createPlayerRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return &resp, nil
}

// CreateSpectator registers a watching connection and returns its token.
func (c *LobbyApiClient) CreateSpectator(gameCode string) (*CreateSpectatorResponse, error) {
	var resp CreateSpectatorResponse
	if err := c.PostJSON(createSpectatorEndpoint(gameCode), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return &resp, nil
}
