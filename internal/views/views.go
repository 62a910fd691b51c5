// Package views holds the screen models shared by the web console and the
// command line. A screen fetches what it shows, applies the operator's
// action and turns failures into the messages the operator reads.
package views

import (
	"context"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// UserAPI is the account surface used by the screens
type UserAPI interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id model.ID) (model.User, error)
	UpdateRole(ctx context.Context, id model.ID, role model.Role) (api.Ack, error)
	UpdateStatus(ctx context.Context, id model.ID, active bool) (api.Ack, error)
	Delete(ctx context.Context, id model.ID) (api.Ack, error)
	Roles(ctx context.Context) ([]model.Role, error)
}

// Registrar creates accounts through the public sign-up endpoint
type Registrar interface {
	Register(ctx context.Context, req api.RegisterRequest) (api.Ack, error)
}

// LevelAPI is the admin level surface used by the screens
type LevelAPI interface {
	List(ctx context.Context) ([]model.Level, error)
	Get(ctx context.Context, id model.ID) (model.GameConfig, error)
	Create(ctx context.Context, req api.CreateLevelRequest) (api.Ack, error)
	Update(ctx context.Context, id model.ID, req api.UpdateLevelRequest) (api.Ack, error)
	Delete(ctx context.Context, id model.ID) (api.Ack, error)
	ConfigureShips(ctx context.Context, id model.ID, ships []model.LevelShipConfig) (api.Ack, error)
}

// ShipTypeAPI is the ship catalog surface used by the screens
type ShipTypeAPI interface {
	List(ctx context.Context) ([]model.ShipType, error)
	Get(ctx context.Context, id model.ID) (model.ShipType, error)
	Create(ctx context.Context, req api.ShipTypeRequest) (api.Ack, error)
	Update(ctx context.Context, id model.ID, req api.ShipTypeRequest) (api.Ack, error)
	Delete(ctx context.Context, id model.ID) (api.Ack, error)
}

// GameAPI is the read-only game data surface
type GameAPI interface {
	Levels(ctx context.Context) ([]model.Level, error)
	Config(ctx context.Context, levelID model.ID) (model.GameConfig, error)
}
