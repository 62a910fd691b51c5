package api

import (
	"context"
	"errors"
	"strings"

	"github.com/mcoot/fleetbattle-console/internal/envelope"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

// ErrNoToken is returned by Login when the backend accepted the credentials
// but sent no token, leaving nothing to save
var ErrNoToken = errors.New("login response carried no token")

// SessionWriter is the part of the session the login flow writes
type SessionWriter interface {
	Save(ctx context.Context, token string, user model.UserSummary) error
	Clear(ctx context.Context) error
	HasToken(ctx context.Context) bool
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the credentials are filled in
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return model.NewValidationError("username", "is required")
	}
	if r.Password == "" {
		return model.NewValidationError("password", "is required")
	}
	return nil
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Validate checks every field is filled in
func (r RegisterRequest) Validate() error {
	if err := (LoginRequest{Username: r.Username, Password: r.Password}).Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Email) == "" {
		return model.NewValidationError("email", "is required")
	}
	return nil
}

// Auth covers registration, login and logout
type Auth struct {
	backend Backend
	session SessionWriter
}

// NewAuth creates the auth module
func NewAuth(backend Backend, session SessionWriter) *Auth {
	return &Auth{backend: backend, session: session}
}

// Register creates an account. It does not log in.
func (a *Auth) Register(ctx context.Context, req RegisterRequest) (Ack, error) {
	if err := req.Validate(); err != nil {
		return Ack{}, err
	}
	body, err := a.backend.Post(ctx, "/auth/register", RegisterRequest{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Email:    strings.TrimSpace(req.Email),
	})
	if err != nil {
		return Ack{}, err
	}
	return ackFromBody(body, "userId"), nil
}

// Login authenticates and, when the backend returns a token, saves the
// session before returning
func (a *Auth) Login(ctx context.Context, req LoginRequest) (model.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return model.AuthResponse{}, err
	}
	body, err := a.backend.Post(ctx, "/auth/login", LoginRequest{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	})
	if err != nil {
		return model.AuthResponse{}, err
	}

	resp, err := envelope.Object[model.AuthResponse](body)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if resp.Token == "" {
		return resp, ErrNoToken
	}
	if err := a.session.Save(ctx, resp.Token, resp.Summary()); err != nil {
		return resp, err
	}
	return resp, nil
}

// Logout clears the session. The backend is not told.
func (a *Auth) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// IsAuthenticated reports whether a token is stored
func (a *Auth) IsAuthenticated(ctx context.Context) bool {
	return a.session.HasToken(ctx)
}
