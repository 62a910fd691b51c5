package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/pages"
)

// UsersHandler handles the accounts screen
type UsersHandler struct {
	page   *Page
	screen *views.UsersScreen
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(page *Page, screen *views.UsersScreen) *UsersHandler {
	return &UsersHandler{page: page, screen: screen}
}

func userQuery(r *http.Request) views.UserQuery {
	page, _ := strconv.Atoi(r.FormValue("page"))
	return views.UserQuery{Search: strings.TrimSpace(r.FormValue("search")), Page: page}
}

// load builds the screen with the table filled in
func (h *UsersHandler) load(r *http.Request) pages.UsersData {
	page, err := h.screen.Load(r.Context(), userQuery(r))
	data := pages.UsersData{PageData: h.page.Data(r, "Users"), Page: page}
	if err != nil {
		data.LoadError = h.screen.LoadFailureMessage(err)
	}
	return data
}

// List renders the table, with a modal open when ?modal= names one
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	data := h.load(r)
	data.Modal = r.URL.Query().Get("modal")

	switch data.Modal {
	case pages.ModalCreateUser:
	case pages.ModalViewUser, pages.ModalEditUser, pages.ModalDeleteUser:
		user, err := h.screen.Get(r.Context(), model.ID(r.URL.Query().Get("id")))
		if err != nil {
			data.Modal = ""
			data.LoadError = h.screen.LoadFailureMessage(err)
			break
		}
		data.Selected = &user
		data.Form = pages.UserFormFrom(user)
		if data.Modal == pages.ModalEditUser {
			data.Roles = h.screen.RoleChoices(r.Context())
		}
	default:
		data.Modal = ""
	}
	h.page.Render(w, r, pages.Users(data))
}

// Create handles the new user form
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page.Failure(w, r, "/users", "Invalid form data")
		return
	}
	req := api.RegisterRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	msg, err := h.screen.Create(r.Context(), req)
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalCreateUser
		data.Form = pages.UserForm{Username: req.Username, Email: req.Email}
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Users(data))
		return
	}
	h.page.Success(w, r, "/users", msg)
}

// Edit handles the role and status form
func (h *UsersHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page.Failure(w, r, "/users", "Invalid form data")
		return
	}
	id := model.ID(mux.Vars(r)["id"])
	current, err := h.screen.Get(r.Context(), id)
	if err != nil {
		h.page.Failure(w, r, "/users", h.screen.LoadFailureMessage(err))
		return
	}

	edit := views.UserEdit{
		Role:   model.Role(r.FormValue("role")),
		Active: r.FormValue("active") == "true",
	}
	msg, err := h.screen.ApplyEdit(r.Context(), current, edit)
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalEditUser
		data.Selected = &current
		data.Roles = h.screen.RoleChoices(r.Context())
		data.Form = pages.UserForm{Username: current.Username, Email: current.Email, Role: edit.Role.String(), Active: edit.Active}
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Users(data))
		return
	}
	h.page.Success(w, r, "/users", msg)
}

// Delete handles the delete confirmation
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.ID(mux.Vars(r)["id"])
	user, err := h.screen.Get(r.Context(), id)
	if err != nil {
		h.page.Failure(w, r, "/users", h.screen.LoadFailureMessage(err))
		return
	}

	msg, err := h.screen.Delete(r.Context(), user)
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalDeleteUser
		data.Selected = &user
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Users(data))
		return
	}
	h.page.Success(w, r, "/users", msg)
}
