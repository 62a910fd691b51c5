package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

// HealthChecker reports the backend status
type HealthChecker interface {
	Check(ctx context.Context) (model.Health, error)
}

// HealthHandler answers liveness checks. The console itself is up whenever it
// answers; the backend status is reported alongside.
type HealthHandler struct {
	backend HealthChecker
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(backend HealthChecker) *HealthHandler {
	return &HealthHandler{backend: backend}
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// Health handles GET /healthz
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	health, err := h.backend.Check(r.Context())
	if err != nil {
		resp.Backend = "unreachable"
		resp.Error = err.Error()
	} else {
		resp.Backend = health.Status
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
