package views

import (
	"context"
	"log/slog"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// ShipsScreen backs the ship catalog table and its modals
type ShipsScreen struct {
	ships  ShipTypeAPI
	logger *slog.Logger
}

// NewShipsScreen creates the ship catalog screen
func NewShipsScreen(ships ShipTypeAPI, logger *slog.Logger) *ShipsScreen {
	return &ShipsScreen{ships: ships, logger: logger}
}

// Load fetches the catalog
func (s *ShipsScreen) Load(ctx context.Context) ([]model.ShipType, error) {
	ships, err := s.ships.List(ctx)
	if err != nil {
		return []model.ShipType{}, err
	}
	return ships, nil
}

// Get fetches one ship type
func (s *ShipsScreen) Get(ctx context.Context, id model.ID) (model.ShipType, error) {
	return s.ships.Get(ctx, id)
}

// Create adds a ship type
func (s *ShipsScreen) Create(ctx context.Context, req api.ShipTypeRequest) (string, error) {
	if _, err := s.ships.Create(ctx, req); err != nil {
		return "", err
	}
	return "Ship type created successfully", nil
}

// Update replaces a ship type
func (s *ShipsScreen) Update(ctx context.Context, id model.ID, req api.ShipTypeRequest) (string, error) {
	if _, err := s.ships.Update(ctx, id, req); err != nil {
		return "", err
	}
	return "Ship type updated successfully", nil
}

// Delete removes a ship type
func (s *ShipsScreen) Delete(ctx context.Context, id model.ID) (string, error) {
	if _, err := s.ships.Delete(ctx, id); err != nil {
		return "", err
	}
	return "Ship type deleted successfully", nil
}

// FailureMessage is the text shown for a failed action on this screen
func (s *ShipsScreen) FailureMessage(err error) string {
	return client.MessageOr(err, "Could not save the ship type. Please try again.")
}

// LoadFailureMessage is the text shown when the table cannot be loaded
func (s *ShipsScreen) LoadFailureMessage(err error) string {
	return client.MessageOr(err, "Could not load ship types. Please try again.")
}
