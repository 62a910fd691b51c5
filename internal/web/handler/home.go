package handler

import (
	"net/http"

	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/pages"
)

// HomeHandler handles the landing screens of both layouts
type HomeHandler struct {
	page      *Page
	shell     *nav.Shell
	dashboard *views.DashboardScreen
	home      *views.HomeScreen
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(page *Page, shell *nav.Shell, dashboard *views.DashboardScreen, home *views.HomeScreen) *HomeHandler {
	return &HomeHandler{
		page:      page,
		shell:     shell,
		dashboard: dashboard,
		home:      home,
	}
}

// Root renders the dashboard for administrators and the home screen for players
func (h *HomeHandler) Root(w http.ResponseWriter, r *http.Request) {
	if h.shell.Layout() == nav.LayoutPlayer {
		h.Home(w, r)
		return
	}
	data := pages.DashboardData{
		PageData:  h.page.Data(r, "Dashboard"),
		Dashboard: h.dashboard.Load(r.Context()),
	}
	h.page.Render(w, r, pages.Dashboard(data))
}

// Home renders the player home screen
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData: h.page.Data(r, "Home"),
		Home:     h.home.Load(r.Context()),
	}
	h.page.Render(w, r, pages.Home(data))
}
