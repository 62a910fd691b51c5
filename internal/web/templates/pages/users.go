package pages

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// User modals
const (
	ModalCreateUser = "create"
	ModalViewUser   = "view"
	ModalEditUser   = "edit"
	ModalDeleteUser = "delete"
)

// UserForm holds the values typed into the user modals
type UserForm struct {
	Username string
	Email    string
	Role     string
	Active   bool
}

// UserFormFrom prefills the edit modal
func UserFormFrom(u model.User) UserForm {
	return UserForm{Username: u.Username, Email: u.Email, Role: u.Role.String(), Active: u.Active()}
}

// UsersData is the accounts screen
type UsersData struct {
	layout.PageData
	Page      views.UsersPage
	LoadError string

	Modal    string
	Selected *model.User
	Roles    []model.Role
	Form     UserForm
	Error    string
}

// Users renders the accounts screen
func Users(data UsersData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		page := data.Page

		p.Raw(`<div class="page-header">`)
		p.Element("h1", "", "Users")
		p.Raw(`<a class="button" href="/users?modal=create">New user</a></div>`)

		p.Raw(`<section class="stats">`)
		statCard(p, "count-total", "Total", page.Counts.Total)
		statCard(p, "count-active", "Active", page.Counts.Active)
		statCard(p, "count-admins", "Administrators", page.Counts.Admins)
		p.Raw(`</section>`)

		p.Raw(`<form id="search-form" method="get" action="/users">`)
		layout.Input(p, "Search", "search", "search", page.Search, false)
		p.Raw(`<button type="submit">Search</button></form>`)
		layout.Alert(p, "load-error", data.LoadError)

		if len(page.Users) == 0 {
			p.Element("p", "empty", "No users found.")
		} else {
			usersTable(p, page)
		}
		pagination(p, page)
		userModal(p, data)
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}

func usersHref(page views.UsersPage, extra url.Values) string {
	q := url.Values{}
	if page.Search != "" {
		q.Set("search", page.Search)
	}
	if page.Page > 1 {
		q.Set("page", strconv.Itoa(page.Page))
	}
	for k, v := range extra {
		q[k] = v
	}
	return layout.Href("/users", q)
}

func usersTable(p *layout.Printer, page views.UsersPage) {
	p.Raw(`<table id="users-table"><thead><tr><th>Username</th><th>Email</th><th>Role</th><th>Status</th><th>Rating</th><th>Actions</th></tr></thead><tbody>`)
	for _, u := range page.Users {
		p.Raw(`<tr`)
		p.Attr("data-id", u.ID.String())
		p.Raw(`>`)
		p.Element("td", "username", u.Username)
		p.Element("td", "email", u.Email)
		p.Element("td", "role", u.Role.String())
		if u.Active() {
			p.Element("td", "status status-active", "Active")
		} else {
			p.Element("td", "status status-inactive", "Inactive")
		}
		p.Element("td", "", strconv.Itoa(u.CurrentElo))
		p.Raw(`<td class="actions">`)
		for _, m := range []struct{ modal, label string }{
			{ModalViewUser, "View"}, {ModalEditUser, "Edit"}, {ModalDeleteUser, "Delete"},
		} {
			p.Raw(`<a`)
			p.Attr("href", usersHref(page, url.Values{"modal": {m.modal}, "id": {u.ID.String()}}))
			p.Raw(`>`)
			p.Text(m.label)
			p.Raw(`</a> `)
		}
		p.Raw(`</td></tr>`)
	}
	p.Raw(`</tbody></table>`)
}

func pagination(p *layout.Printer, page views.UsersPage) {
	if page.Pages <= 1 {
		return
	}
	p.Raw(`<nav class="pagination">`)
	for i := 1; i <= page.Pages; i++ {
		q := url.Values{"page": {strconv.Itoa(i)}}
		if page.Search != "" {
			q.Set("search", page.Search)
		}
		p.Raw(`<a`)
		p.Attr("href", layout.Href("/users", q))
		if i == page.Page {
			p.Attr("class", "active")
			p.Attr("aria-current", "page")
		}
		p.Raw(`>`)
		p.Text(strconv.Itoa(i))
		p.Raw(`</a>`)
	}
	p.Raw(`</nav>`)
}

func roleOptions(roles []model.Role) []layout.Option {
	opts := make([]layout.Option, 0, len(roles))
	for _, r := range roles {
		opts = append(opts, layout.Option{Value: r.String(), Label: r.String()})
	}
	return opts
}

func userModal(p *layout.Printer, data UsersData) {
	closeHref := usersHref(data.Page, nil)

	switch data.Modal {
	case ModalCreateUser:
		layout.Modal(p, ModalCreateUser, "New user", data.Error, closeHref, func() {
			end := layout.Form(p, "create-user-form", "/users", "Create")
			layout.Input(p, "Username", "username", "text", data.Form.Username, true)
			layout.Input(p, "Email", "email", "email", data.Form.Email, true)
			layout.Input(p, "Password", "password", "password", "", true)
			end()
		})
	case ModalViewUser:
		if data.Selected == nil {
			return
		}
		u := data.Selected
		layout.Modal(p, ModalViewUser, u.Username, data.Error, closeHref, func() {
			p.Raw(`<dl class="user-detail">`)
			layout.Detail(p, "Email", u.Email)
			layout.Detail(p, "Role", u.Role.String())
			if u.Active() {
				layout.Detail(p, "Status", "Active")
			} else {
				layout.Detail(p, "Status", "Inactive")
			}
			layout.Detail(p, "Rating", strconv.Itoa(u.CurrentElo))
			layout.Detail(p, "Wins", strconv.Itoa(u.Wins))
			layout.Detail(p, "Games", strconv.Itoa(u.TotalGames))
			if !u.CreatedAt.IsZero() {
				layout.Detail(p, "Joined", u.CreatedAt.Format("2 Jan 2006"))
			}
			p.Raw(`</dl>`)
		})
	case ModalEditUser:
		if data.Selected == nil {
			return
		}
		layout.Modal(p, ModalEditUser, "Edit "+data.Selected.Username, data.Error, closeHref, func() {
			end := layout.Form(p, "edit-user-form", "/users/"+url.PathEscape(data.Selected.ID.String())+"/edit", "Save")
			layout.Select(p, "Role", "role", data.Form.Role, roleOptions(data.Roles))
			layout.Checkbox(p, "Active", "active", data.Form.Active)
			end()
		})
	case ModalDeleteUser:
		if data.Selected == nil {
			return
		}
		layout.Modal(p, ModalDeleteUser, "Delete user", data.Error, closeHref, func() {
			p.Raw(`<p>Delete user <strong>`)
			p.Text(data.Selected.Username)
			p.Raw(`</strong>? This cannot be undone.</p>`)
			end := layout.Form(p, "delete-user-form", "/users/"+url.PathEscape(data.Selected.ID.String())+"/delete", "Delete")
			end()
		})
	}
}
