package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLen is the number of hex characters kept from the token hash. It matches
// the player ids the server embeds in snapshots, so Resolve(token) can be used
// directly as a key into the snapshot's player map.
const idLen = 8

// ParticipantID is the short stable identifier derived from a client token.
// Two sessions holding the same token always resolve to the same id.
type ParticipantID string

func (p ParticipantID) String() string { return string(p) }

// Resolve derives a ParticipantID from an opaque client token. It is pure and
// deterministic; distinct tokens collide only at truncated-sha256 odds.
func Resolve(clientToken string) ParticipantID {
	sum := sha256.Sum256([]byte(clientToken))
	return ParticipantID(hex.EncodeToString(sum[:])[:idLen])
}

// Identity bundles the raw client token with its resolved participant id.
// The token is what the server knows the connection by (websocket_id); the id
// is how the same participant appears inside player-keyed snapshot fields.
type Identity struct {
	Token string
	ID    ParticipantID
}

// New resolves token into a full Identity.
func New(token string) Identity {
	return Identity{Token: token, ID: Resolve(token)}
}
