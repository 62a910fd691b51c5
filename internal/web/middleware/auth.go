package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// ProfileReader returns the profile cached with the session
type ProfileReader interface {
	User(ctx context.Context) (*model.UserSummary, error)
}

// GetUser retrieves the signed-in user from the request context
// Returns nil if the session holds no readable profile
func GetUser(ctx context.Context) *model.UserSummary {
	user, _ := ctx.Value(userContextKey).(*model.UserSummary)
	return user
}

// Auth returns middleware that requires a stored session token.
// Redirects to the login screen if there is none.
func Auth(guard *nav.Guard, profile ProfileReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return guard.Middleware(OptionalAuth(profile)(next))
	}
}

// OptionalAuth returns middleware that loads the cached profile when there is one
func OptionalAuth(profile ProfileReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// A missing or unreadable profile leaves the user unset
			user, _ := profile.User(r.Context())
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
