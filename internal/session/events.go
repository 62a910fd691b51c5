package session

import (
	"context"
	"log/slog"

	"github.com/mcoot/fleetbattle-console/internal/storage"
)

// EventKind says what changed the session
type EventKind int

const (
	// EventLogin follows Save in this process
	EventLogin EventKind = iota + 1
	// EventLogout follows Clear in this process
	EventLogout
	// EventExternal is a write made by another process sharing the storage
	EventExternal
)

func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	case EventExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Event notifies subscribers that the session changed. Subscribers re-read
// the Store; the event carries no session data.
type Event struct {
	Kind EventKind
	Key  string // set for EventExternal
}

// Subscribe registers fn for every session change and returns a function
// that removes it. fn runs synchronously on the goroutine that made the
// change, so it must not call Subscribe or the unsubscribe function.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) publish(evt Event) {
	s.mu.Lock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(evt)
	}
}

// Watch forwards writes made by other processes as EventExternal until ctx is
// done. It returns immediately when the storage cannot observe them.
func (s *Store) Watch(ctx context.Context) error {
	w, ok := s.storage.(storage.Watcher)
	if !ok {
		return nil
	}

	s.logger.Debug("watching session storage for external changes")
	return w.Watch(ctx, func(key string) {
		if key != TokenKey && key != UserKey {
			return
		}
		s.logger.Debug("session changed externally", slog.String("key", key))
		s.publish(Event{Kind: EventExternal, Key: key})
	})
}
