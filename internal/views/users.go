package views

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// UsersPerPage is the page size of the accounts table
const UsersPerPage = 10

// UserQuery selects a page of the accounts table
type UserQuery struct {
	Search string
	Page   int
}

// UserCounts are computed over every account, not just the matches
type UserCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Admins int `json:"admins"`
}

// UsersPage is one page of the accounts table
type UsersPage struct {
	Users   []model.User `json:"users"`
	Counts  UserCounts   `json:"counts"`
	Search  string       `json:"search,omitempty"`
	Matches int          `json:"matches"`
	Page    int          `json:"page"`
	Pages   int          `json:"pages"`
}

// BuildUsersPage filters all by the search text, matching username or email
// without regard to case, and cuts out the requested page. Pages are
// numbered from 1 and out of range pages are clamped.
func BuildUsersPage(all []model.User, q UserQuery) UsersPage {
	search := strings.TrimSpace(q.Search)
	needle := strings.ToLower(search)

	matches := make([]model.User, 0, len(all))
	for _, u := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			matches = append(matches, u)
		}
	}

	pages := (len(matches) + UsersPerPage - 1) / UsersPerPage
	if pages == 0 {
		pages = 1
	}
	page := min(max(q.Page, 1), pages)
	start := min((page-1)*UsersPerPage, len(matches))
	end := min(start+UsersPerPage, len(matches))

	return UsersPage{
		Users: matches[start:end],
		Counts: UserCounts{
			Total:  len(all),
			Active: countActive(all),
			Admins: countAdmins(all),
		},
		Search:  search,
		Matches: len(matches),
		Page:    page,
		Pages:   pages,
	}
}

// UserEdit is the role and status form of the account detail
type UserEdit struct {
	Role   model.Role
	Active bool
}

// ErrNoChanges is returned when an edit would not change the account
var ErrNoChanges = model.NewValidationError("", "Nothing to save: role and status are unchanged")

// UsersScreen backs the accounts table and its modals
type UsersScreen struct {
	users    UserAPI
	accounts Registrar
	logger   *slog.Logger
}

// NewUsersScreen creates the accounts screen. New accounts are made through
// accounts, the same way a visitor signs up.
func NewUsersScreen(users UserAPI, accounts Registrar, logger *slog.Logger) *UsersScreen {
	return &UsersScreen{users: users, accounts: accounts, logger: logger}
}

// Load fetches every account and returns the requested page
func (s *UsersScreen) Load(ctx context.Context, q UserQuery) (UsersPage, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return BuildUsersPage(nil, q), err
	}
	return BuildUsersPage(all, q), nil
}

// Get fetches one account for the detail modal
func (s *UsersScreen) Get(ctx context.Context, id model.ID) (model.User, error) {
	return s.users.Get(ctx, id)
}

// RoleChoices returns the roles offered by the backend, or Admin and Player
// when it offers none
func (s *UsersScreen) RoleChoices(ctx context.Context) []model.Role {
	roles, err := s.users.Roles(ctx)
	if err != nil {
		s.logger.Warn("roles unavailable, using defaults", slog.String("error", err.Error()))
		return append([]model.Role(nil), model.DefaultRoleChoices...)
	}
	if len(roles) == 0 {
		return append([]model.Role(nil), model.DefaultRoleChoices...)
	}
	return roles
}

// Create registers an account. The backend gives it its default role; an
// admin changes the role afterwards with ApplyEdit.
func (s *UsersScreen) Create(ctx context.Context, req api.RegisterRequest) (string, error) {
	if _, err := s.accounts.Register(ctx, req); err != nil {
		return "", err
	}
	return "User created successfully", nil
}

// ApplyEdit sends the role when it changed and the status when it changed.
// An edit that changes neither is rejected before any request.
func (s *UsersScreen) ApplyEdit(ctx context.Context, current model.User, edit UserEdit) (string, error) {
	roleChanged := edit.Role != "" && edit.Role != current.Role
	statusChanged := edit.Active != current.Active()
	if !roleChanged && !statusChanged {
		return "", ErrNoChanges
	}

	if roleChanged {
		if _, err := s.users.UpdateRole(ctx, current.ID, edit.Role); err != nil {
			return "", err
		}
	}
	if statusChanged {
		if _, err := s.users.UpdateStatus(ctx, current.ID, edit.Active); err != nil {
			return "", err
		}
	}
	return "User updated successfully", nil
}

// Delete removes an account
func (s *UsersScreen) Delete(ctx context.Context, user model.User) (string, error) {
	if _, err := s.users.Delete(ctx, user.ID); err != nil {
		return "", err
	}
	return "User \"" + user.Username + "\" deleted", nil
}

// FailureMessage is the text shown for a failed action on this screen
func (s *UsersScreen) FailureMessage(err error) string {
	return client.MessageOr(err, "Could not complete the request. Please try again.")
}

// LoadFailureMessage is the text shown when the table cannot be loaded
func (s *UsersScreen) LoadFailureMessage(err error) string {
	return client.MessageOr(err, "Could not load users. Please try again.")
}
