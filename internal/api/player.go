package api

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mcoot/fleetbattle-console/internal/envelope"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// CreatePlayerRequest is the body of POST /Player/create
type CreatePlayerRequest struct {
	GroupID     model.ID `json:"groupId"`
	DisplayName string   `json:"displayName"`
}

// Validate checks both fields are filled in
func (r CreatePlayerRequest) Validate() error {
	if r.GroupID.IsZero() {
		return model.NewValidationError("groupId", "is required")
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		return model.NewValidationError("displayName", "is required")
	}
	return nil
}

// Players is the player module
type Players struct {
	backend Backend
}

// NewPlayers creates the player module
func NewPlayers(backend Backend) *Players {
	return &Players{backend: backend}
}

// Create registers a player in a group. Fields the backend does not echo
// are filled from the request.
func (p *Players) Create(ctx context.Context, req CreatePlayerRequest) (model.Player, error) {
	if err := req.Validate(); err != nil {
		return model.Player{}, err
	}
	sent := CreatePlayerRequest{
		GroupID:     model.ID(strings.TrimSpace(req.GroupID.String())),
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	body, err := p.backend.Post(ctx, "/Player/create", sent)
	if err != nil {
		return model.Player{}, err
	}

	var player model.Player
	if gjson.ParseBytes(body).IsObject() {
		if player, err = envelope.Object[model.Player](body); err != nil {
			return model.Player{}, err
		}
	}
	if player.GroupID == "" {
		player.GroupID = sent.GroupID
	}
	if player.DisplayName == "" {
		player.DisplayName = sent.DisplayName
	}
	return player, nil
}
