package views

import (
	"context"
	"log/slog"

	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// Games is the game data screen: the levels and the configuration of the
// selected one
type Games struct {
	Levels   []model.Level     `json:"levels"`
	Selected model.ID          `json:"selected,omitempty"`
	Config   *model.GameConfig `json:"config,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// GamesScreen loads the game data screen
type GamesScreen struct {
	game   GameAPI
	logger *slog.Logger
}

// NewGamesScreen creates the game data screen
func NewGamesScreen(game GameAPI, logger *slog.Logger) *GamesScreen {
	return &GamesScreen{game: game, logger: logger}
}

// Load fetches the levels and, when selected is set, that level's config
func (s *GamesScreen) Load(ctx context.Context, selected model.ID) Games {
	games := Games{Levels: []model.Level{}, Selected: selected}

	levels, err := s.game.Levels(ctx)
	if err != nil {
		games.Error = client.MessageOr(err, "Could not load levels. Please try again.")
		return games
	}
	games.Levels = levels

	if selected.IsZero() {
		return games
	}
	cfg, err := s.game.Config(ctx, selected)
	if err != nil {
		s.logger.Warn("level config unavailable", slog.String("level_id", selected.String()), slog.String("error", err.Error()))
		games.Error = client.MessageOr(err, "Could not load the level configuration. Please try again.")
		return games
	}
	games.Config = &cfg
	return games
}
