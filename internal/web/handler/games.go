package handler

import (
	"net/http"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/pages"
)

// GamesHandler handles the game data screen
type GamesHandler struct {
	page   *Page
	screen *views.GamesScreen
}

// NewGamesHandler creates a new GamesHandler
func NewGamesHandler(page *Page, screen *views.GamesScreen) *GamesHandler {
	return &GamesHandler{page: page, screen: screen}
}

// View renders the levels and the configuration of ?level=
func (h *GamesHandler) View(w http.ResponseWriter, r *http.Request) {
	data := pages.GamesData{
		PageData: h.page.Data(r, "Games"),
		Games:    h.screen.Load(r.Context(), model.ID(r.URL.Query().Get("level"))),
	}
	h.page.Render(w, r, pages.Games(data))
}
