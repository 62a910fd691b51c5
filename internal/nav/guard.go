package nav

import (
	"context"
	"log/slog"
	"net/http"
)

// TokenChecker reports whether a session token is stored
type TokenChecker interface {
	HasToken(ctx context.Context) bool
}

// Guard admits navigation into the protected screens only while a token is
// stored. It does not look at token freshness or role.
type Guard struct {
	session TokenChecker
	logger  *slog.Logger
}

// NewGuard creates a Guard
func NewGuard(session TokenChecker, logger *slog.Logger) *Guard {
	return &Guard{session: session, logger: logger}
}

// Admit reports whether the operation may continue. When it may not, the
// operation is navigated to the login screen.
func (g *Guard) Admit(ctx context.Context) bool {
	if g.session.HasToken(ctx) {
		return true
	}
	g.logger.Debug("no session, redirecting to login", slog.String("from", Location(ctx)))
	Navigate(ctx, PathLogin)
	return false
}

// Middleware applies the guard to every request, answering unauthenticated
// ones with 303 See Other to the login screen
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Admit(r.Context()) {
			http.Redirect(w, r, PathLogin, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
