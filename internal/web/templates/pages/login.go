package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// LoginData is the login screen, which doubles as the registration screen
type LoginData struct {
	layout.PageData
	Register bool
	Username string
	Email    string
	Error    string
}

// Login renders the login screen
func Login(data LoginData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Raw(`<section class="login-card">`)
		p.Element("h1", "", "Fleet Battle Console")
		layout.Alert(p, "login-error", data.Error)

		if data.Register {
			p.Element("h2", "", "Create an account")
			end := layout.Form(p, "register-form", "/register", "Register")
			layout.Input(p, "Username", "username", "text", data.Username, true)
			layout.Input(p, "Email", "email", "email", data.Email, true)
			layout.Input(p, "Password", "password", "password", "", true)
			end()
			p.Raw(`<p class="mode-switch">Already have an account? <a href="/login">Sign in</a></p>`)
		} else {
			p.Element("h2", "", "Sign in")
			end := layout.Form(p, "login-form", "/login", "Sign in")
			layout.Input(p, "Username", "username", "text", data.Username, true)
			layout.Input(p, "Password", "password", "password", "", true)
			end()
			p.Raw(`<p class="mode-switch">No account yet? <a href="/login?mode=register">Register</a></p>`)
		}
		p.Raw(`</section>`)
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}
