package lobby_api_client

import (
	"fmt"
	"regexp"
)

const (
	HostGameEndpoint = "/host"
)

func joinGameEndpoint(gameCode string) string {
	return fmt.Sprintf("/game/%s/join", gameCode)
}

func createPlayerEndpoint(gameCode string) string {
	return fmt.Sprintf("/game/%s/create-player", gameCode)
}

func createSpectatorEndpoint(gameCode string) string {
	return fmt.Sprintf("/game/%s/create-spectator", gameCode)
}

// playerNamePattern is the server's rule for player names: 1-15 standard
// English keyboard characters.
var playerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 !@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]{1,15}$`)

// ValidPlayerName reports whether the server would accept name. Checking
// locally saves a round trip; the server still enforces it.
func ValidPlayerName(name string) bool {
	return playerNamePattern.MatchString(name)
}
