package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mcoot/fleetbattle-console/internal/envelope"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

const usersPath = "/admin/users"

// CreateUserRequest is the body of POST /admin/users
type CreateUserRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role,omitempty"`
}

// Validate checks the account fields are filled in
func (r CreateUserRequest) Validate() error {
	return RegisterRequest{Username: r.Username, Password: r.Password, Email: r.Email}.Validate()
}

// UpdateUserRequest is the body of PUT /admin/users/{id}
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validate checks the account fields are filled in
func (r UpdateUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return model.NewValidationError("username", "is required")
	}
	return nil
}

type roleRequest struct {
	Role model.Role `json:"role"`
}

type statusRequest struct {
	IsActive bool `json:"isActive"`
}

// Users is the admin account module
type Users struct {
	backend Backend
}

// NewUsers creates the users module
func NewUsers(backend Backend) *Users {
	return &Users{backend: backend}
}

// List returns every account
func (u *Users) List(ctx context.Context) ([]model.User, error) {
	body, err := u.backend.Get(ctx, usersPath)
	if err != nil {
		return nil, err
	}
	return envelope.List[model.User](body, "users")
}

// Get returns one account
func (u *Users) Get(ctx context.Context, id model.ID) (model.User, error) {
	if err := requireID(id); err != nil {
		return model.User{}, err
	}
	body, err := u.backend.Get(ctx, resourcePath(usersPath, id))
	if err != nil {
		return model.User{}, err
	}
	return envelope.Object[model.User](body)
}

// Create adds an account
func (u *Users) Create(ctx context.Context, req CreateUserRequest) (Ack, error) {
	if err := req.Validate(); err != nil {
		return Ack{}, err
	}
	body, err := u.backend.Post(ctx, usersPath, CreateUserRequest{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Email:    strings.TrimSpace(req.Email),
		Role:     req.Role,
	})
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "userId"), nil
}

// Update changes the username and email of an account
func (u *Users) Update(ctx context.Context, id model.ID, req UpdateUserRequest) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	if err := req.Validate(); err != nil {
		return Ack{}, err
	}
	body, err := u.backend.Put(ctx, resourcePath(usersPath, id), UpdateUserRequest{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
	})
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "userId"), nil
}

// UpdateRole changes the role of an account
func (u *Users) UpdateRole(ctx context.Context, id model.ID, role model.Role) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	if role == "" {
		return Ack{}, model.NewValidationError("role", "is required")
	}
	body, err := u.backend.Put(ctx, resourcePath(usersPath, id, "role"), roleRequest{Role: role})
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "userId"), nil
}

// UpdateStatus locks or unlocks an account
func (u *Users) UpdateStatus(ctx context.Context, id model.ID, active bool) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	body, err := u.backend.Put(ctx, resourcePath(usersPath, id, "status"), statusRequest{IsActive: active})
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "userId"), nil
}

// Delete removes an account
func (u *Users) Delete(ctx context.Context, id model.ID) (Ack, error) {
	if err := requireID(id); err != nil {
		return Ack{}, err
	}
	body, err := u.backend.Delete(ctx, resourcePath(usersPath, id))
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "userId"), nil
}

// Roles returns the role names the backend offers. Entries are either plain
// strings or objects naming the role under roleName, name or role.
func (u *Users) Roles(ctx context.Context) ([]model.Role, error) {
	body, err := u.backend.Get(ctx, "/admin/roles")
	if err != nil {
		return nil, err
	}
	entries, err := envelope.List[json.RawMessage](body, "roles")
	if err != nil {
		return nil, err
	}

	roles := make([]model.Role, 0, len(entries))
	for _, entry := range entries {
		if name := roleName(gjson.ParseBytes(entry)); name != "" {
			roles = append(roles, model.Role(name))
		}
	}
	return roles, nil
}

func roleName(entry gjson.Result) string {
	if entry.Type == gjson.String {
		return entry.Str
	}
	for _, field := range []string{"roleName", "name", "role"} {
		if v := entry.Get(field); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
