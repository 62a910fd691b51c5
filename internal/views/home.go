package views

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// configFetchLimit bounds the concurrent config requests of the home screen
const configFetchLimit = 4

// HomeLevel is a playable level with its configuration, when it loaded
type HomeLevel struct {
	Level  model.Level       `json:"level"`
	Config *model.GameConfig `json:"config,omitempty"`
}

// Home is the player landing screen
type Home struct {
	User   *model.UserSummary `json:"user,omitempty"`
	Levels []HomeLevel        `json:"levels"`
	Error  string             `json:"error,omitempty"`
}

// ProfileReader returns the profile cached with the session
type ProfileReader interface {
	User(ctx context.Context) (*model.UserSummary, error)
}

// HomeScreen loads the player home
type HomeScreen struct {
	game    GameAPI
	profile ProfileReader
	logger  *slog.Logger
}

// NewHomeScreen creates the home screen
func NewHomeScreen(game GameAPI, profile ProfileReader, logger *slog.Logger) *HomeScreen {
	return &HomeScreen{game: game, profile: profile, logger: logger}
}

// Load fetches the levels, then every level's config concurrently. Configs
// that fail to load are left out; the level is still listed.
func (s *HomeScreen) Load(ctx context.Context) Home {
	home := Home{Levels: []HomeLevel{}}
	if user, err := s.profile.User(ctx); err == nil {
		home.User = user
	}

	levels, err := s.game.Levels(ctx)
	if err != nil {
		home.Error = client.MessageOr(err, "Could not load levels. Please try again.")
		return home
	}

	home.Levels = make([]HomeLevel, len(levels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(configFetchLimit)
	for i, level := range levels {
		home.Levels[i].Level = level
		if level.ID.IsZero() {
			continue
		}
		g.Go(func() error {
			cfg, err := s.game.Config(gctx, level.ID)
			if err != nil {
				s.logger.Warn("level config unavailable",
					slog.String("level_id", level.ID.String()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			home.Levels[i].Config = &cfg
			return nil
		})
	}
	_ = g.Wait()
	return home
}
