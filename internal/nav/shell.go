package nav

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/session"
)

// SessionSource is what the shell watches to pick a layout
type SessionSource interface {
	Role(ctx context.Context) model.Role
	Subscribe(fn func(session.Event)) func()
}

// Shell holds the layout chosen from the cached role. The layout is derived
// again on every session event, so a login made elsewhere in the process, or
// by another process sharing the session, is picked up without restarting.
type Shell struct {
	session SessionSource
	logger  *slog.Logger

	mu          sync.RWMutex
	role        model.Role
	layout      Layout
	unsubscribe func()
}

// NewShell derives the initial layout and subscribes to session events.
// Close releases the subscription.
func NewShell(src SessionSource, logger *slog.Logger) *Shell {
	s := &Shell{session: src, logger: logger}
	s.Refresh(context.Background())
	s.unsubscribe = src.Subscribe(func(evt session.Event) {
		s.logger.Debug("session changed", slog.String("event", evt.Kind.String()))
		s.Refresh(context.Background())
	})
	return s
}

// Refresh derives the layout from the stored role
func (s *Shell) Refresh(ctx context.Context) {
	role := s.session.Role(ctx)
	layout := LayoutFor(role)

	s.mu.Lock()
	changed := layout != s.layout || role != s.role
	s.role = role
	s.layout = layout
	s.mu.Unlock()

	if changed {
		s.logger.Debug("layout selected", slog.String("role", role.String()), slog.String("layout", layout.String()))
	}
}

// Layout returns the current layout
func (s *Shell) Layout() Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.layout
}

// Role returns the role the current layout was derived from
func (s *Shell) Role() model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Resolve maps path into the current layout, navigating the operation when
// the path is not one of its screens
func (s *Shell) Resolve(ctx context.Context, path string) string {
	resolved := s.Layout().Resolve(path)
	if resolved != clean(path) {
		Navigate(ctx, resolved)
	}
	return resolved
}

// Close stops following session events
func (s *Shell) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
