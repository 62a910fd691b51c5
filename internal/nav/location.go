package nav

import (
	"context"
	"sync"
)

type locationKey struct{}

// location is the navigation state of one operation: where it started and
// where it was sent, if anywhere
type location struct {
	mu      sync.Mutex
	current string
	target  string
}

// WithLocation returns a context carrying path as the current location
func WithLocation(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, locationKey{}, &location{current: path})
}

func fromContext(ctx context.Context) *location {
	loc, _ := ctx.Value(locationKey{}).(*location)
	return loc
}

// Location returns the current location, or the empty string outside any
// navigation
func Location(ctx context.Context) string {
	loc := fromContext(ctx)
	if loc == nil {
		return ""
	}
	loc.mu.Lock()
	defer loc.mu.Unlock()
	return loc.current
}

// Navigate replaces the current location with path. It is a no-op outside
// any navigation.
func Navigate(ctx context.Context, path string) {
	loc := fromContext(ctx)
	if loc == nil {
		return
	}
	loc.mu.Lock()
	defer loc.mu.Unlock()
	loc.current = path
	loc.target = path
}

// Redirected reports where the operation was sent by Navigate
func Redirected(ctx context.Context) (string, bool) {
	loc := fromContext(ctx)
	if loc == nil {
		return "", false
	}
	loc.mu.Lock()
	defer loc.mu.Unlock()
	return loc.target, loc.target != ""
}

// ContextNavigator implements client.Navigator over the context state
type ContextNavigator struct{}

func (ContextNavigator) Location(ctx context.Context) string {
	return Location(ctx)
}

func (ContextNavigator) Navigate(ctx context.Context, path string) {
	Navigate(ctx, path)
}
