package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/leapfrog-games/leapfrog-go/clients/lobby_api_client"
	"github.com/leapfrog-games/leapfrog-go/internal/game/client"
	"github.com/leapfrog-games/leapfrog-go/internal/game/session"
	"github.com/leapfrog-games/leapfrog-go/internal/token"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	gameCode := flag.String("game", "", "four-letter game code to join")
	playerName := flag.String("name", "", "join as a player with this name (omit to watch as a spectator)")
	host := flag.Bool("host", false, "host a new game instead of joining an existing one")
	flag.Parse()

	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if err := run(cfg, *gameCode, *playerName, *host); err != nil {
		log.Fatal().Err(err).Msg("observer exited")
	}
}

func run(cfg *Config, gameCode, playerName string, host bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lobby := lobby_api_client.NewLobbyApiClient(cfg.Server.BaseURL)

	if host {
		hosted, err := lobby.HostGame()
		if err != nil {
			return fmt.Errorf("failed to host game: %w", err)
		}
		gameCode = hosted.GameCode
		log.Info().Str("game_code", gameCode).Msg("hosted new game")
	}
	if gameCode == "" {
		return errors.New("a game code is required (pass -game or -host)")
	}

	store, err := tokenStore(cfg)
	if err != nil {
		return err
	}
	clientToken, err := resolveToken(lobby, store, gameCode, playerName)
	if err != nil {
		return err
	}

	sess, err := session.Open(ctx, cfg.Server.BaseURL, gameCode, clientToken, session.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to open game channel: %w", err)
	}

	c := client.New(sess, gameCode, clientToken)
	log.Info().
		Str("game_code", gameCode).
		Str("participant_id", c.ParticipantID().String()).
		Msg("connected")

	go func() {
		if err := c.Run(ctx); err != nil {
			log.Warn().Err(err).Msg("client loop ended")
		}
	}()
	defer c.Close()

	var lastLogged int
	for update := range c.Views() {
		if update.YourTurn {
			log.Info().Int("turn", update.View.Snapshot.TurnNumber).Msg("it is your turn")
		}
		// The update log grows monotonically within a game; only print
		// records we have not seen yet. Most-recent-first, so walk backwards.
		records := update.Log
		if len(records) < lastLogged {
			// Log shrank, so a new game started.
			lastLogged = 0
		}
		for i := len(records) - lastLogged - 1; i >= 0; i-- {
			log.Info().Str("kind", string(records[i].Kind)).Msg(records[i].Text)
		}
		lastLogged = len(records)
	}

	if err := sess.Err(); err != nil {
		return fmt.Errorf("game channel closed: %w", err)
	}
	return nil
}

func tokenStore(cfg *Config) (*token.Store, error) {
	path := cfg.TokenPath
	if path == "" {
		var err error
		path, err = token.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token path: %w", err)
		}
	}
	return token.NewStore(path), nil
}

// resolveToken reuses a persisted client token when one exists, otherwise
// registers with the lobby (as a player when a name was given, as a
// spectator otherwise) and persists the token it was issued.
func resolveToken(lobby *lobby_api_client.LobbyApiClient, store *token.Store, gameCode, playerName string) (string, error) {
	if clientToken, found, err := store.Load(); err != nil {
		return "", fmt.Errorf("failed to load client token: %w", err)
	} else if found {
		joined, err := lobby.JoinGame(gameCode, clientToken)
		if err != nil {
			return "", fmt.Errorf("failed to join game: %w", err)
		}
		if joined.IsExistingPlayer {
			log.Info().Msg("rejoining as existing player")
			return clientToken, nil
		}
	}

	var clientToken string
	if playerName != "" {
		created, err := lobby.CreatePlayer(gameCode, playerName)
		if err != nil {
			return "", fmt.Errorf("failed to create player: %w", err)
		}
		clientToken = created.WebsocketID
	} else {
		created, err := lobby.CreateSpectator(gameCode)
		if err != nil {
			return "", fmt.Errorf("failed to create spectator: %w", err)
		}
		clientToken = created.WebsocketID
	}

	if err := store.Save(clientToken); err != nil {
		log.Warn().Err(err).Msg("failed to persist client token")
	}
	return clientToken, nil
}
