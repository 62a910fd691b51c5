package views

import (
	"context"
	"log/slog"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// ShipQuantity is one row of the ship configuration form
type ShipQuantity struct {
	Ship     model.ShipType `json:"ship"`
	Quantity int            `json:"quantity"`
}

// ShipConfigForm is the ship configuration modal of a level. Every ship type
// starts at zero.
type ShipConfigForm struct {
	LevelID model.ID       `json:"levelId"`
	Rows    []ShipQuantity `json:"rows"`
}

// Entries returns the form as ship allotments
func (f ShipConfigForm) Entries() []model.LevelShipConfig {
	out := make([]model.LevelShipConfig, 0, len(f.Rows))
	for _, r := range f.Rows {
		out = append(out, model.LevelShipConfig{ShipTypeID: r.Ship.ID, Quantity: r.Quantity})
	}
	return out
}

// SetQuantities fills the form from text inputs keyed by ship type id. Blank
// inputs mean zero.
func (f *ShipConfigForm) SetQuantities(values map[model.ID]string) error {
	for i, r := range f.Rows {
		v, ok := values[r.Ship.ID]
		if !ok {
			continue
		}
		n, err := model.ParseOptionalInt("quantity["+r.Ship.Name+"]", v)
		if err != nil {
			return err
		}
		if n < 0 {
			return model.NewValidationError("quantity["+r.Ship.Name+"]", "cannot be negative")
		}
		f.Rows[i].Quantity = n
	}
	return nil
}

// LevelsScreen backs the level table and its modals
type LevelsScreen struct {
	levels LevelAPI
	ships  ShipTypeAPI
	logger *slog.Logger
}

// NewLevelsScreen creates the level screen
func NewLevelsScreen(levels LevelAPI, ships ShipTypeAPI, logger *slog.Logger) *LevelsScreen {
	return &LevelsScreen{levels: levels, ships: ships, logger: logger}
}

// Load fetches every level
func (s *LevelsScreen) Load(ctx context.Context) ([]model.Level, error) {
	levels, err := s.levels.List(ctx)
	if err != nil {
		return []model.Level{}, err
	}
	return levels, nil
}

// Detail fetches the configuration of a level for the detail modal
func (s *LevelsScreen) Detail(ctx context.Context, id model.ID) (model.GameConfig, error) {
	return s.levels.Get(ctx, id)
}

// LevelDetail is the level detail modal: the stored configuration with each
// allotted ship named from the catalog
type LevelDetail struct {
	Config model.GameConfig `json:"config"`
	Fleet  []ShipQuantity   `json:"fleet"`
}

// View fetches a level's configuration and names its ships. A catalog that
// cannot be read leaves the ships named by id.
func (s *LevelsScreen) View(ctx context.Context, id model.ID) (LevelDetail, error) {
	cfg, err := s.levels.Get(ctx, id)
	if err != nil {
		return LevelDetail{}, err
	}
	detail := LevelDetail{Config: cfg, Fleet: []ShipQuantity{}}
	allotted := cfg.Ships()
	if len(allotted) == 0 {
		return detail, nil
	}

	catalog := make(map[model.ID]model.ShipType)
	ships, err := s.ships.List(ctx)
	if err != nil {
		s.logger.Warn("ship types unavailable for level detail", slog.String("error", err.Error()))
	}
	for _, ship := range ships {
		catalog[ship.ID] = ship
	}

	for _, a := range allotted {
		ship, ok := catalog[a.ShipTypeID]
		if !ok {
			ship = model.ShipType{ID: a.ShipTypeID, Name: "Ship " + a.ShipTypeID.String()}
		}
		detail.Fleet = append(detail.Fleet, ShipQuantity{Ship: ship, Quantity: a.Quantity})
	}
	return detail, nil
}

// Create adds a level
func (s *LevelsScreen) Create(ctx context.Context, req api.CreateLevelRequest) (string, error) {
	if _, err := s.levels.Create(ctx, req); err != nil {
		return "", err
	}
	return "Level created successfully", nil
}

// Update changes the dimensions of a level
func (s *LevelsScreen) Update(ctx context.Context, id model.ID, req api.UpdateLevelRequest) (string, error) {
	if _, err := s.levels.Update(ctx, id, req); err != nil {
		return "", err
	}
	return "Level updated successfully", nil
}

// Delete removes a level
func (s *LevelsScreen) Delete(ctx context.Context, id model.ID) (string, error) {
	if _, err := s.levels.Delete(ctx, id); err != nil {
		return "", err
	}
	return "Level deleted successfully", nil
}

// ShipConfigForm loads the ship types for the configuration modal
func (s *LevelsScreen) ShipConfigForm(ctx context.Context, id model.ID) (ShipConfigForm, error) {
	form := ShipConfigForm{LevelID: id, Rows: []ShipQuantity{}}
	ships, err := s.ships.List(ctx)
	if err != nil {
		return form, err
	}
	for _, ship := range ships {
		form.Rows = append(form.Rows, ShipQuantity{Ship: ship})
	}
	return form, nil
}

// ConfigureShips sends the form; rows left at zero are not sent
func (s *LevelsScreen) ConfigureShips(ctx context.Context, form ShipConfigForm) (string, error) {
	if _, err := s.levels.ConfigureShips(ctx, form.LevelID, form.Entries()); err != nil {
		return "", err
	}
	return "Ships configured successfully", nil
}

// FailureMessage is the text shown for a failed action on this screen
func (s *LevelsScreen) FailureMessage(err error) string {
	return client.MessageOr(err, "Could not save the level. Please try again.")
}

// LoadFailureMessage is the text shown when the table cannot be loaded
func (s *LevelsScreen) LoadFailureMessage(err error) string {
	return client.MessageOr(err, "Could not load levels. Please try again.")
}
