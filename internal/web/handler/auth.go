package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/web/middleware"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/pages"
)

// SessionReader is the part of the session the login screen looks at
type SessionReader interface {
	HasToken(ctx context.Context) bool
	Role(ctx context.Context) model.Role
}

// AuthHandler handles the login screen and logout
type AuthHandler struct {
	page    *Page
	auth    *api.Auth
	session SessionReader
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(page *Page, auth *api.Auth, session SessionReader) *AuthHandler {
	return &AuthHandler{
		page:    page,
		auth:    auth,
		session: session,
	}
}

// LoginPage renders the login screen, or the registration form with ?mode=register
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.session.HasToken(r.Context()) {
		// Already signed in
		http.Redirect(w, r, nav.LandingPath(h.session.Role(r.Context())), http.StatusSeeOther)
		return
	}

	h.render(w, r, pages.LoginData{Register: r.URL.Query().Get("mode") == "register"})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, pages.LoginData{Error: "Invalid form data"})
		return
	}

	req := api.LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.render(w, r, pages.LoginData{
			Username: req.Username,
			Error:    loginMessage(err, "Login failed. Please try again."),
		})
		return
	}

	http.Redirect(w, r, nav.LandingPath(resp.Role), http.StatusSeeOther)
}

// Register handles registration form submission. The new account is not
// signed in; the operator is sent back to the login form.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, pages.LoginData{Register: true, Error: "Invalid form data"})
		return
	}

	req := api.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if _, err := h.auth.Register(r.Context(), req); err != nil {
		h.render(w, r, pages.LoginData{
			Register: true,
			Username: req.Username,
			Email:    req.Email,
			Error:    loginMessage(err, "Registration failed. Please try again."),
		})
		return
	}

	h.page.Success(w, r, nav.PathLogin, "Registration successful! Please sign in.")
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.page.logger.Warn("logout failed", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, nav.PathLogin, http.StatusSeeOther)
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, data pages.LoginData) {
	title := "Sign in"
	if data.Register {
		title = "Register"
	}
	data.PageData = layout.PageData{
		Title:  title,
		Notice: middleware.GetNotice(r.Context()),
	}
	h.page.Render(w, r, pages.Login(data))
}

func loginMessage(err error, fallback string) string {
	if errors.Is(err, api.ErrNoToken) {
		return "The server did not return a session. Please try again."
	}
	return client.MessageOr(err, fallback)
}
