package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/middleware"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// Page holds what every screen handler needs to answer a request
type Page struct {
	shell   *nav.Shell
	notices *views.Notices
	logger  *slog.Logger
}

// NewPage creates the shared page helpers
func NewPage(shell *nav.Shell, notices *views.Notices, logger *slog.Logger) *Page {
	return &Page{shell: shell, notices: notices, logger: logger}
}

// Data returns the layout data of a guarded screen
func (p *Page) Data(r *http.Request, title string) layout.PageData {
	ctx := r.Context()
	return layout.PageData{
		Title:   title,
		User:    middleware.GetUser(ctx),
		Notice:  middleware.GetNotice(ctx),
		Guarded: true,
		Layout:  p.shell.Layout(),
		Active:  middleware.ScreenOf(r.URL.Path),
	}
}

// Render writes the component, unless the request was navigated away while
// it was being handled
func (p *Page) Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	if target, ok := nav.Redirected(r.Context()); ok {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		p.logger.Error("render failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Redirect sends the browser to path, or wherever the request was navigated
func (p *Page) Redirect(w http.ResponseWriter, r *http.Request, path string) {
	if target, ok := nav.Redirected(r.Context()); ok {
		path = target
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// Success posts a success notice and redirects
func (p *Page) Success(w http.ResponseWriter, r *http.Request, path, message string) {
	p.notices.Success(middleware.NoticeKey, message)
	p.Redirect(w, r, path)
}

// Failure posts an error notice and redirects
func (p *Page) Failure(w http.ResponseWriter, r *http.Request, path, message string) {
	if _, redirected := nav.Redirected(r.Context()); !redirected {
		p.notices.Error(middleware.NoticeKey, message)
	}
	p.Redirect(w, r, path)
}

// DismissNotice clears the pending status message
func (p *Page) DismissNotice(w http.ResponseWriter, r *http.Request) {
	p.notices.Dismiss(middleware.NoticeKey)
	back := nav.PathRoot
	// Only the path of the referring page is kept
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" {
		back = ref.Path
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
