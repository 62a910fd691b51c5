package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/views"
)

// PageData is shared by every page
type PageData struct {
	Title  string
	User   *model.UserSummary
	Notice *views.Notice
	// Guarded pages are drawn inside the layout chosen by the shell
	Guarded bool
	Layout  nav.Layout
	// Active is the path of the current screen, highlighted in the sidebar
	Active string
}

// Base renders the document around body
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := NewPrinter(w)
		p.Raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
		p.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
		p.Raw("<title>")
		p.Text(data.Title + " | Fleet Battle Console")
		p.Raw("</title>\n</head>\n")

		p.Raw("<body")
		if data.Guarded {
			p.Attr("class", "layout-"+data.Layout.String())
		}
		p.Raw(">\n")

		if data.Guarded {
			header(p, data)
			if data.Layout == nav.LayoutAdmin {
				sidebar(p, data.Active)
			}
		}
		notice(p, data.Notice)

		p.Raw("<main>\n")
		p.Render(ctx, body)
		p.Raw("</main>\n</body>\n</html>\n")
		return p.Err()
	})
}

func header(p *Printer, data PageData) {
	p.Raw(`<header class="topbar">`)
	p.Element("span", "brand", "Fleet Battle")
	if data.User != nil {
		p.Raw(`<span class="current-user">`)
		p.Text(data.User.Username)
		if data.User.Role != "" {
			p.Raw(` <span class="role-badge">`)
			p.Text(data.User.Role.String())
			p.Raw(`</span>`)
		}
		p.Raw(`</span>`)
	}
	p.Raw(`<form method="post" action="/logout" class="logout-form"><button type="submit">Log out</button></form>`)
	p.Raw("</header>\n")
}

func sidebar(p *Printer, active string) {
	p.Raw(`<nav class="sidebar"><ul>`)
	for _, route := range nav.LayoutAdmin.Routes() {
		p.Raw("<li><a")
		p.Attr("href", route.Path)
		if route.Path == active {
			p.Attr("class", "active")
			p.Attr("aria-current", "page")
		}
		p.Raw(">")
		p.Text(route.Title)
		p.Raw("</a></li>")
	}
	p.Raw("</ul></nav>\n")
}

func notice(p *Printer, n *views.Notice) {
	if n == nil {
		return
	}
	p.Raw(`<div role="status"`)
	p.Attr("class", "notice notice-"+string(n.Kind))
	p.Raw(">")
	p.Text(n.Text)
	p.Raw(`<form method="post" action="/notices/dismiss"><button type="submit" aria-label="Dismiss">&times;</button></form>`)
	p.Raw("</div>\n")
}

// Alert renders an inline error box
func Alert(p *Printer, class, text string) {
	if text == "" {
		return
	}
	p.Raw(`<div role="alert"`)
	p.Attr("class", "alert "+class)
	p.Raw(">")
	p.Text(text)
	p.Raw("</div>")
}

// Modal renders a dialog named name with a close link back to closeHref
func Modal(p *Printer, name, title, errText, closeHref string, body func()) {
	p.Raw(`<div class="modal" role="dialog" aria-modal="true"`)
	p.Attr("id", "modal-"+name)
	p.Raw(">")
	p.Raw(`<div class="modal-header">`)
	p.Element("h2", "", title)
	p.Raw(`<a class="modal-close"`)
	p.Attr("href", closeHref)
	p.Raw(">Close</a></div>")
	Alert(p, "modal-error", errText)
	body()
	p.Raw("</div>\n")
}
