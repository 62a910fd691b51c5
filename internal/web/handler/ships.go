package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/pages"
)

// ShipsHandler handles the ship types screen
type ShipsHandler struct {
	page   *Page
	screen *views.ShipsScreen
}

// NewShipsHandler creates a new ShipsHandler
func NewShipsHandler(page *Page, screen *views.ShipsScreen) *ShipsHandler {
	return &ShipsHandler{page: page, screen: screen}
}

func (h *ShipsHandler) load(r *http.Request) pages.ShipsData {
	ships, err := h.screen.Load(r.Context())
	data := pages.ShipsData{PageData: h.page.Data(r, "Ships"), Ships: ships}
	if err != nil {
		data.LoadError = h.screen.LoadFailureMessage(err)
	}
	return data
}

// List renders the table, with a modal open when ?modal= names one
func (h *ShipsHandler) List(w http.ResponseWriter, r *http.Request) {
	data := h.load(r)
	data.Modal = r.URL.Query().Get("modal")

	switch data.Modal {
	case pages.ModalCreateShip:
	case pages.ModalViewShip, pages.ModalEditShip, pages.ModalDeleteShip:
		ship, err := h.screen.Get(r.Context(), model.ID(r.URL.Query().Get("id")))
		if err != nil {
			data.Modal = ""
			data.LoadError = h.screen.LoadFailureMessage(err)
			break
		}
		data.Selected = &ship
		data.Form = pages.ShipFormFrom(ship)
	default:
		data.Modal = ""
	}
	h.page.Render(w, r, pages.Ships(data))
}

func shipForm(r *http.Request) pages.ShipForm {
	return pages.ShipForm{
		Name:      r.FormValue("shipName"),
		Size:      r.FormValue("size"),
		ModelCode: r.FormValue("modelCode"),
	}
}

// Create handles the new ship type form
func (h *ShipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page.Failure(w, r, "/ships", "Invalid form data")
		return
	}
	form := shipForm(r)

	req, err := api.NewShipTypeRequest(form.Name, form.Size, form.ModelCode)
	var msg string
	if err == nil {
		msg, err = h.screen.Create(r.Context(), req)
	}
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalCreateShip
		data.Form = form
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Ships(data))
		return
	}
	h.page.Success(w, r, "/ships", msg)
}

// Edit handles the ship type form
func (h *ShipsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.page.Failure(w, r, "/ships", "Invalid form data")
		return
	}
	id := model.ID(mux.Vars(r)["id"])
	form := shipForm(r)

	req, err := api.NewShipTypeRequest(form.Name, form.Size, form.ModelCode)
	var msg string
	if err == nil {
		msg, err = h.screen.Update(r.Context(), id, req)
	}
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalEditShip
		data.Selected = &model.ShipType{ID: id, Name: form.Name}
		data.Form = form
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Ships(data))
		return
	}
	h.page.Success(w, r, "/ships", msg)
}

// Delete handles the delete confirmation
func (h *ShipsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.ID(mux.Vars(r)["id"])
	msg, err := h.screen.Delete(r.Context(), id)
	if err != nil {
		data := h.load(r)
		data.Modal = pages.ModalDeleteShip
		data.Selected = &model.ShipType{ID: id}
		for _, s := range data.Ships {
			if s.ID == id {
				data.Selected = &s
				break
			}
		}
		data.Error = h.screen.FailureMessage(err)
		h.page.Render(w, r, pages.Ships(data))
		return
	}
	h.page.Success(w, r, "/ships", msg)
}
