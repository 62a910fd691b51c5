package api

import (
	"context"
	"strings"

	"github.com/mcoot/fleetbattle-console/internal/envelope"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

const levelsPath = "/game/levels"

// CreateLevelRequest is the body of POST /game/levels
type CreateLevelRequest struct {
	LevelName string `json:"levelName"`
	BoardSize int    `json:"boardSize"`
	TimeLimit int    `json:"timeLimit"`
}

// NewCreateLevelRequest builds a request from form or flag text
func NewCreateLevelRequest(name, boardSize, timeLimit string) (CreateLevelRequest, error) {
	upd, err := NewUpdateLevelRequest(boardSize, timeLimit)
	if err != nil {
		return CreateLevelRequest{}, err
	}
	req := CreateLevelRequest{
		LevelName: strings.TrimSpace(name),
		BoardSize: upd.BoardSize,
		TimeLimit: upd.TimeLimit,
	}
	return req, req.Validate()
}

// Validate checks the level has a name and positive dimensions
func (r CreateLevelRequest) Validate() error {
	if r.LevelName == "" {
		return model.NewValidationError("levelName", "is required")
	}
	return UpdateLevelRequest{BoardSize: r.BoardSize, TimeLimit: r.TimeLimit}.Validate()
}

// UpdateLevelRequest is the body of PUT /game/levels/{id}. The name of a
// level cannot be changed.
type UpdateLevelRequest struct {
	BoardSize int `json:"boardSize"`
	TimeLimit int `json:"timeLimit"`
}

// NewUpdateLevelRequest builds a request from form or flag text
func NewUpdateLevelRequest(boardSize, timeLimit string) (UpdateLevelRequest, error) {
	size, err := model.ParseInt("boardSize", boardSize)
	if err != nil {
		return UpdateLevelRequest{}, err
	}
	limit, err := model.ParseInt("timeLimit", timeLimit)
	if err != nil {
		return UpdateLevelRequest{}, err
	}
	req := UpdateLevelRequest{BoardSize: size, TimeLimit: limit}
	return req, req.Validate()
}

// Validate checks the dimensions are positive
func (r UpdateLevelRequest) Validate() error {
	if r.BoardSize <= 0 {
		return model.NewValidationError("boardSize", "must be greater than zero")
	}
	if r.TimeLimit <= 0 {
		return model.NewValidationError("timeLimit", "must be greater than zero")
	}
	return nil
}

// Levels is the admin level module
type Levels struct {
	backend Backend
}

// NewLevels creates the levels module
func NewLevels(backend Backend) *Levels {
	return &Levels{backend: backend}
}

// List returns every level
func (l *Levels) List(ctx context.Context) ([]model.Level, error) {
	body, err := l.backend.Get(ctx, levelsPath)
	if err != nil {
		return nil, err
	}
	return envelope.List[model.Level](body, "levels")
}

// Get returns the full configuration of a level
func (l *Levels) Get(ctx context.Context, id model.ID) (model.GameConfig, error) {
	return gameConfig(ctx, l.backend, id)
}

// Create adds a level
func (l *Levels) Create(ctx context.Context, req CreateLevelRequest) (Ack, error) {
	if err := req.Validate(); err != nil {
		return Ack{}, err
	}
	body, err := l.backend.Post(ctx, levelsPath, req)
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "levelId"), nil
}

// Update changes the dimensions of a level
func (l *Levels) Update(ctx context.Context, id model.ID, req UpdateLevelRequest) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	if err := req.Validate(); err != nil {
		return Ack{}, err
	}
	body, err := l.backend.Put(ctx, resourcePath(levelsPath, id), req)
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "levelId"), nil
}

// Delete removes a level
func (l *Levels) Delete(ctx context.Context, id model.ID) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	body, err := l.backend.Delete(ctx, resourcePath(levelsPath, id))
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "levelId"), nil
}

// ConfigureShips sets the ship allotment of a level. Entries with no
// quantity are dropped; at least one must remain.
func (l *Levels) ConfigureShips(ctx context.Context, id model.ID, ships []model.LevelShipConfig) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}

	send := make([]model.LevelShipConfig, 0, len(ships))
	for _, s := range ships {
		if s.Quantity > 0 {
			send = append(send, model.LevelShipConfig{ShipTypeID: s.ShipTypeID, Quantity: s.Quantity})
		}
	}
	if len(send) == 0 {
		return Ack{}, model.NewValidationError("ships", "choose at least one ship type with a quantity above zero")
	}

	body, err := l.backend.Post(ctx, resourcePath(levelsPath, id, "ships"), send)
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "levelId"), nil
}

func gameConfig(ctx context.Context, backend Backend, id model.ID) (model.GameConfig, error) {
	if err := requireID(id); err != nil {
		return model.GameConfig{}, err
	}
	body, err := backend.Get(ctx, resourcePath("/game/config", id))
	if err != nil {
		return model.GameConfig{}, err
	}
	cfg, err := envelope.Object[model.GameConfig](body)
	if err != nil {
		return model.GameConfig{}, err
	}
	if cfg.LevelID.IsZero() {
		cfg.LevelID = id
	}
	return cfg, nil
}
