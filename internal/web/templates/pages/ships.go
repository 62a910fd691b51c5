package pages

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// Ship type modals
const (
	ModalViewShip   = "view"
	ModalCreateShip = "create"
	ModalEditShip   = "edit"
	ModalDeleteShip = "delete"
)

// ShipForm holds the values typed into the ship type modals
type ShipForm struct {
	Name      string
	Size      string
	ModelCode string
}

// ShipFormFrom prefills the edit modal
func ShipFormFrom(s model.ShipType) ShipForm {
	return ShipForm{Name: s.Name, Size: strconv.Itoa(s.Size), ModelCode: s.ModelCode}
}

// ShipsData is the ship types screen
type ShipsData struct {
	layout.PageData
	Ships     []model.ShipType
	LoadError string

	Modal    string
	Selected *model.ShipType
	Form     ShipForm
	Error    string
}

// Ships renders the ship types screen
func Ships(data ShipsData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Raw(`<div class="page-header">`)
		p.Element("h1", "", "Ship types")
		p.Raw(`<a class="button" href="/ships?modal=create">New ship type</a></div>`)
		layout.Alert(p, "load-error", data.LoadError)

		if len(data.Ships) == 0 {
			p.Element("p", "empty", "No ship types found.")
		} else {
			p.Raw(`<table id="ships-table"><thead><tr><th>Name</th><th>Size</th><th>Model</th><th>Actions</th></tr></thead><tbody>`)
			for _, s := range data.Ships {
				p.Raw(`<tr`)
				p.Attr("data-id", s.ID.String())
				p.Raw(`>`)
				p.Element("td", "", s.Name)
				p.Element("td", "", strconv.Itoa(s.Size))
				p.Element("td", "", s.ModelCode)
				p.Raw(`<td class="actions"><a`)
				p.Attr("href", layout.Href("/ships", url.Values{"modal": {ModalViewShip}, "id": {s.ID.String()}}))
				p.Raw(`>View</a> <a`)
				p.Attr("href", layout.Href("/ships", url.Values{"modal": {ModalEditShip}, "id": {s.ID.String()}}))
				p.Raw(`>Edit</a> <a`)
				p.Attr("href", layout.Href("/ships", url.Values{"modal": {ModalDeleteShip}, "id": {s.ID.String()}}))
				p.Raw(`>Delete</a></td></tr>`)
			}
			p.Raw(`</tbody></table>`)
		}

		shipModal(p, data)
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}

func shipModal(p *layout.Printer, data ShipsData) {
	fields := func() {
		layout.Input(p, "Name", "shipName", "text", data.Form.Name, true)
		layout.Input(p, "Size", "size", "number", data.Form.Size, true)
		layout.Input(p, "Model code", "modelCode", "text", data.Form.ModelCode, false)
	}

	switch data.Modal {
	case ModalViewShip:
		if data.Selected == nil {
			return
		}
		s := data.Selected
		layout.Modal(p, ModalViewShip, s.Name, data.Error, "/ships", func() {
			p.Raw(`<dl class="ship-detail">`)
			layout.Detail(p, "Ship type ID", orNA(s.ID.String()))
			layout.Detail(p, "Name", orNA(s.Name))
			if s.Size > 0 {
				layout.Detail(p, "Size", strconv.Itoa(s.Size)+" cells")
			} else {
				layout.Detail(p, "Size", "N/A")
			}
			layout.Detail(p, "Model code", orNA(s.ModelCode))
			p.Raw(`</dl>`)
		})
	case ModalCreateShip:
		layout.Modal(p, ModalCreateShip, "New ship type", data.Error, "/ships", func() {
			end := layout.Form(p, "create-ship-form", "/ships", "Create")
			fields()
			end()
		})
	case ModalEditShip:
		if data.Selected == nil {
			return
		}
		layout.Modal(p, ModalEditShip, "Edit "+data.Selected.Name, data.Error, "/ships", func() {
			end := layout.Form(p, "edit-ship-form", "/ships/"+url.PathEscape(data.Selected.ID.String())+"/edit", "Save")
			fields()
			end()
		})
	case ModalDeleteShip:
		if data.Selected == nil {
			return
		}
		layout.Modal(p, ModalDeleteShip, "Delete ship type", data.Error, "/ships", func() {
			p.Raw(`<p>Delete ship type <strong>`)
			p.Text(data.Selected.Name)
			p.Raw(`</strong>? This cannot be undone.</p>`)
			end := layout.Form(p, "delete-ship-form", "/ships/"+url.PathEscape(data.Selected.ID.String())+"/delete", "Delete")
			end()
		})
	}
}
