package api

import (
	"context"
	"strings"

	"github.com/mcoot/fleetbattle-console/internal/envelope"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

const shipTypesPath = "/game/shiptypes"

// ShipTypeRequest is the body of both POST and PUT on ship types
type ShipTypeRequest struct {
	ShipName  string `json:"shipName"`
	Size      int    `json:"size"`
	ModelCode string `json:"modelCode"`
}

// NewShipTypeRequest builds a request from form or flag text
func NewShipTypeRequest(name, size, modelCode string) (ShipTypeRequest, error) {
	n, err := model.ParseInt("size", size)
	if err != nil {
		return ShipTypeRequest{}, err
	}
	req := ShipTypeRequest{
		ShipName:  strings.TrimSpace(name),
		Size:      n,
		ModelCode: strings.TrimSpace(modelCode),
	}
	return req, req.Validate()
}

// Validate checks the ship has a name and a positive size
func (r ShipTypeRequest) Validate() error {
	if r.ShipName == "" {
		return model.NewValidationError("shipName", "is required")
	}
	if r.Size <= 0 {
		return model.NewValidationError("size", "must be greater than zero")
	}
	return nil
}

// ShipTypes is the admin ship catalog module
type ShipTypes struct {
	backend Backend
}

// NewShipTypes creates the ship types module
func NewShipTypes(backend Backend) *ShipTypes {
	return &ShipTypes{backend: backend}
}

// List returns the catalog
func (s *ShipTypes) List(ctx context.Context) ([]model.ShipType, error) {
	body, err := s.backend.Get(ctx, shipTypesPath)
	if err != nil {
		return nil, err
	}
	return envelope.List[model.ShipType](body, "shipTypes")
}

// Get returns one ship type
func (s *ShipTypes) Get(ctx context.Context, id model.ID) (model.ShipType, error) {
	if err := requireID(id); err != nil {
		return model.ShipType{}, err
	}
	body, err := s.backend.Get(ctx, resourcePath(shipTypesPath, id))
	if err != nil {
		return model.ShipType{}, err
	}
	return envelope.Object[model.ShipType](body)
}

// Create adds a ship type
func (s *ShipTypes) Create(ctx context.Context, req ShipTypeRequest) (Ack, error) {
	if err := req.Validate(); err != nil {
		return Ack{}, err
	}
	body, err := s.backend.Post(ctx, shipTypesPath, req)
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "shipTypeId"), nil
}

// Update replaces a ship type
func (s *ShipTypes) Update(ctx context.Context, id model.ID, req ShipTypeRequest) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	if err := req.Validate(); err != nil {
		return Ack{}, err
	}
	body, err := s.backend.Put(ctx, resourcePath(shipTypesPath, id), req)
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "shipTypeId"), nil
}

// Delete removes a ship type
func (s *ShipTypes) Delete(ctx context.Context, id model.ID) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	body, err := s.backend.Delete(ctx, resourcePath(shipTypesPath, id))
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "shipTypeId"), nil
}
