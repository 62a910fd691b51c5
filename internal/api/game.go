package api

import (
	"context"

	"github.com/mcoot/fleetbattle-console/internal/envelope"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// Game is the read-only game data module available to every role
type Game struct {
	backend Backend
}

// NewGame creates the game data module
func NewGame(backend Backend) *Game {
	return &Game{backend: backend}
}

// Levels returns the playable levels
func (g *Game) Levels(ctx context.Context) ([]model.Level, error) {
	body, err := g.backend.Get(ctx, levelsPath)
	if err != nil {
		return nil, err
	}
	return envelope.List[model.Level](body, "levels")
}

// Config returns the configuration of one level
func (g *Game) Config(ctx context.Context, levelID model.ID) (model.GameConfig, error) {
	return gameConfig(ctx, g.backend, levelID)
}
