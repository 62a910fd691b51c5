package api

import (
	"context"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

// Health checks the backend
type Health struct {
	backend Backend
}

// NewHealth creates the health module
func NewHealth(backend Backend) *Health {
	return &Health{backend: backend}
}

// Check calls GET /Health
func (h *Health) Check(ctx context.Context) (model.Health, error) {
	body, err := h.backend.Get(ctx, "/Health")
	if err != nil {
		return model.Health{}, err
	}
	return model.HealthFromBody(body), nil
}
