package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/pages"
)

const shipQuantityPrefix = "qty_"

// LevelsHandler handles the levels screen
type LevelsHandler struct {
	page   *Page
	screen *views.LevelsScreen
}

// NewLevelsHandler creates a new LevelsHandler
func NewLevelsHandler(page *Page, screen *views.LevelsScreen) *LevelsHandler {
	return &LevelsHandler{page: page, screen: screen}
}

func (h *LevelsHandler) load(r *http.Request) pages.LevelsData {
	levels, err := h.screen.Load(r.Context())
	data := pages.LevelsData{PageData: h.page.Data(r, "Levels"), Levels: levels}
	if err != nil {
		data.LoadError = h.screen.LoadFailureMessage(err)
	}
	return data
}

// selected finds id among the loaded levels
func selected(levels []model.Level, id model.ID) *model.Level {
	for i := range levels {
		if levels[i].ID == id {
			return &levels[i]
		}
	}
	return nil
}

// List renders the table, with a modal open when ?modal= names one
func (h *LevelsHandler) List(w http.ResponseWriter, r *http.Request) {
	data := h.load(r)
	data.Modal = r.URL.Query().Get("modal")
	id := model.ID(r.URL.Query().Get("id"))

	switch data.Modal {
	case pages.ModalCreateLevel:
	case pages.ModalViewLevel:
		detail, err := h.screen.View(r.Context(), id)
		if err != nil {
			data.Modal = ""
			data.LoadError = h.screen.LoadFailureMessage(err)
			break
		}
		data.Detail = &detail
		data.Selected = selected(data.Levels, id)
	case pages.ModalEditLevel, pages.ModalDeleteLevel, pages.ModalLevelShips:
		data.Selected = selected(data.Levels, id)
		if data.Selected == nil {
			data.Modal = ""
			break
		}
		data.Form = pages.LevelFormFrom(*data.Selected)
		if data.Modal == pages.ModalLevelShips {
			h.fillShips(r, &data)
		}
	default:
		data.Modal = ""
	}
	h.page.Render(w, r, pages.Levels(data))
}

// fillShips loads the ship rows of the configuration modal, prefilled with
// the level's current fleet when it can be read
func (h *LevelsHandler) fillShips(r *http.Request, data *pages.LevelsData) {
	form, err := h.screen.ShipConfigForm(r.Context(), data.Selected.ID)
	if err != nil {
		data.Error = h.screen.LoadFailureMessage(err)
	}
	if cfg, err := h.screen.Detail(r.Context(), data.Selected.ID); err == nil {
		current := make(map[model.ID]int)
		for _, s := range cfg.Ships() {
			current[s.ShipTypeID] = s.Quantity
		}
		for i := range form.Rows {
			form.Rows[i].Quantity = current[form.Rows[i].Ship.ID]
		}
	}
	data.Ships = form
}

// Create handles the new level form
func (h *LevelsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page.Failure(w, r, "/levels", "Invalid form data")
		return
	}
	form := pages.LevelForm{
		Name:      r.FormValue("levelName"),
		BoardSize: r.FormValue("boardSize"),
		TimeLimit: r.FormValue("timeLimit"),
	}

	req, err := api.NewCreateLevelRequest(form.Name, form.BoardSize, form.TimeLimit)
	var msg string
	if err == nil {
		msg, err = h.screen.Create(r.Context(), req)
	}
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalCreateLevel
		data.Form = form
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Levels(data))
		return
	}
	h.page.Success(w, r, "/levels", msg)
}

// Edit handles the level settings form
func (h *LevelsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page.Failure(w, r, "/levels", "Invalid form data")
		return
	}
	id := model.ID(mux.Vars(r)["id"])
	form := pages.LevelForm{
		BoardSize: r.FormValue("boardSize"),
		TimeLimit: r.FormValue("timeLimit"),
	}

	req, err := api.NewUpdateLevelRequest(form.BoardSize, form.TimeLimit)
	var msg string
	if err == nil {
		msg, err = h.screen.Update(r.Context(), id, req)
	}
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalEditLevel
		data.Selected = selected(data.Levels, id)
		if data.Selected == nil {
			data.Selected = &model.Level{ID: id}
		}
		form.Name = data.Selected.Name
		data.Form = form
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Levels(data))
		return
	}
	h.page.Success(w, r, "/levels", msg)
}

// Delete handles the delete confirmation
func (h *LevelsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.ID(mux.Vars(r)["id"])
	msg, err := h.screen.Delete(r.Context(), id)
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalDeleteLevel
		data.Selected = selected(data.Levels, id)
		if data.Selected == nil {
			data.Selected = &model.Level{ID: id}
		}
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Levels(data))
		return
	}
	h.page.Success(w, r, "/levels", msg)
}

// Ships handles the fleet configuration form. Quantities arrive as
// qty_<ship type id> fields.
func (h *LevelsHandler) Ships(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page.Failure(w, r, "/levels", "Invalid form data")
		return
	}
	id := model.ID(mux.Vars(r)["id"])

	values := make(map[model.ID]string)
	for key := range r.PostForm {
		if shipID, ok := strings.CutPrefix(key, shipQuantityPrefix); ok {
			values[model.ID(shipID)] = r.PostForm.Get(key)
		}
	}

	form, err := h.screen.ShipConfigForm(r.Context(), id)
	if err == nil {
		err = form.SetQuantities(values)
	}
	var msg string
	if err == nil {
		msg, err = h.screen.ConfigureShips(r.Context(), form)
	}
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalLevelShips
		data.Selected = selected(data.Levels, id)
		if data.Selected == nil {
			data.Selected = &model.Level{ID: id}
		}
		data.Ships = form
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Levels(data))
		return
	}
	h.page.Success(w, r, "/levels", msg)
}
