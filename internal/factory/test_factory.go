package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/fleetbattle-console/internal/config"
	"github.com/mcoot/fleetbattle-console/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the in-memory session storage, for inspection
	Memory *memory.Storage
}

// NewTestApp creates an App talking to baseURL with an in-memory session
func NewTestApp(baseURL string) *TestApp {
	st := memory.New()
	cfg := config.Config{
		APIBaseURL:     baseURL,
		RequestTimeout: 5 * time.Second,
		RateBurst:      1,
		SessionBackend: config.BackendMemory,
		Output:         "text",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &TestApp{
		App:    newWithStorage(cfg, st, logger),
		Memory: st,
	}
}
