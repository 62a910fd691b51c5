package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/storage"
)

// Storage keys. The session is exactly these two values.
const (
	TokenKey = "token"
	UserKey  = "user"
)

var (
	// ErrNoProfile is returned by User when no profile is stored
	ErrNoProfile = errors.New("no user profile stored")
	// ErrCorruptProfile is returned by User when the stored profile is not valid JSON
	ErrCorruptProfile = errors.New("stored user profile is corrupt")
	// ErrEmptyToken is returned by Save when the login response had no token
	ErrEmptyToken = errors.New("empty session token")
)

// Store is the session context: a bearer token and the profile cached at
// login, persisted in a key-value storage. Every read goes to the storage;
// nothing is cached in memory.
type Store struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.Mutex
	subs   map[int]func(Event)
	nextID int
}

// New creates a Store over the given storage
func New(st storage.Storage, logger *slog.Logger) *Store {
	return &Store{
		storage: st,
		logger:  logger,
		subs:    make(map[int]func(Event)),
	}
}

// Save persists the token and profile, then notifies subscribers with
// EventLogin before returning
func (s *Store) Save(ctx context.Context, token string, user model.UserSummary) error {
	if token == "" {
		return ErrEmptyToken
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}

	if err := s.storage.Put(ctx, map[string]string{
		TokenKey: token,
		UserKey:  string(data),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Debug("session saved",
		slog.String("username", user.Username),
		slog.String("role", user.Role.String()),
	)
	s.publish(Event{Kind: EventLogin})
	return nil
}

// Clear removes the token and profile, then notifies subscribers with
// EventLogout
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Debug("session cleared")
	s.publish(Event{Kind: EventLogout})
	return nil
}

// Token returns the stored bearer token. Storage failures are logged and
// reported as no token.
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read session token", slog.String("error", err.Error()))
		}
		return "", false
	}
	return token, token != ""
}

// HasToken reports whether a token is stored
func (s *Store) HasToken(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// User returns the cached profile. A missing profile yields ErrNoProfile and a
// profile that does not parse yields ErrCorruptProfile; neither panics.
func (s *Store) User(ctx context.Context) (*model.UserSummary, error) {
	data, err := s.storage.Get(ctx, UserKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoProfile
		}
		s.logger.Warn("failed to read user profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrNoProfile, err)
	}

	var user model.UserSummary
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		s.logger.Error("failed to parse user profile", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrCorruptProfile, err)
	}
	return &user, nil
}

// Role returns the cached role, or the empty role when there is no readable
// profile
func (s *Store) Role(ctx context.Context) model.Role {
	user, err := s.User(ctx)
	if err != nil {
		return ""
	}
	return user.Role
}
