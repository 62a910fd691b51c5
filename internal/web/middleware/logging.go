package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/fleetbattle-console/internal/middleware"
)

// Logging creates access logging middleware for the console
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "console")))
}
