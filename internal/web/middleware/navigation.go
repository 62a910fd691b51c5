package middleware

import (
	"net/http"
	"strings"

	"github.com/mcoot/fleetbattle-console/internal/middleware"
	"github.com/mcoot/fleetbattle-console/internal/nav"
)

// Navigation returns middleware that gives every request its navigation
// state. A request navigated away during handling, and not yet answered,
// is answered with 303 See Other to the new location.
func Navigation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := nav.WithLocation(r.Context(), r.URL.Path)
			wrapped := middleware.Wrap(w)

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			if target, ok := nav.Redirected(ctx); ok && !wrapped.Written() {
				http.Redirect(wrapped, r, target, http.StatusSeeOther)
			}
		})
	}
}

// Shell returns middleware that keeps guarded requests inside the layout
// picked for the signed-in role. The layout is derived again from the stored
// role on every request, since another process may have signed in over the
// same storage. Requests for a screen the layout does not have are sent to
// its root.
func Shell(shell *nav.Shell) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shell.Refresh(r.Context())
			screen := ScreenOf(r.URL.Path)
			if resolved := shell.Resolve(r.Context(), screen); resolved != screen {
				http.Redirect(w, r, resolved, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ScreenOf returns the screen a path belongs to: /users/7/edit is on /users
func ScreenOf(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nav.PathRoot
	}
	first, _, _ := strings.Cut(trimmed, "/")
	return "/" + first
}
