package middleware

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/middleware"
)

// Recovery creates panic recovery middleware for the console
// Returns an HTML error page on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, consolePanicHandler)
}

func consolePanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Error | Fleet Battle Console</title></head>
<body>
<h1>Something went wrong</h1>
<p>The console hit an unexpected error. Request id: ` + templ.EscapeString(middleware.RequestID(r.Context())) + `</p>
<p><a href="/">Back to the console</a></p>
</body>
</html>`))
}
