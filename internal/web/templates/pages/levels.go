package pages

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// Level modals
const (
	ModalViewLevel   = "view"
	ModalCreateLevel = "create"
	ModalEditLevel   = "edit"
	ModalDeleteLevel = "delete"
	ModalLevelShips  = "ships"
)

// LevelForm holds the values typed into the level modals
type LevelForm struct {
	Name      string
	BoardSize string
	TimeLimit string
}

// LevelFormFrom prefills the edit modal
func LevelFormFrom(l model.Level) LevelForm {
	return LevelForm{Name: l.Name, BoardSize: strconv.Itoa(l.BoardSize), TimeLimit: strconv.Itoa(l.TimeLimit)}
}

// LevelsData is the levels screen
type LevelsData struct {
	layout.PageData
	Levels    []model.Level
	LoadError string

	Modal    string
	Selected *model.Level
	Detail   *views.LevelDetail
	Form     LevelForm
	Ships    views.ShipConfigForm
	Error    string
}

// Levels renders the levels screen
func Levels(data LevelsData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Raw(`<div class="page-header">`)
		p.Element("h1", "", "Levels")
		p.Raw(`<a class="button" href="/levels?modal=create">New level</a></div>`)
		layout.Alert(p, "load-error", data.LoadError)

		levelsTable(p, "levels-table", data.Levels, func(l model.Level) {
			for _, m := range []struct{ modal, label string }{
				{ModalViewLevel, "View"}, {ModalEditLevel, "Edit"}, {ModalLevelShips, "Ships"}, {ModalDeleteLevel, "Delete"},
			} {
				p.Raw(`<a`)
				p.Attr("href", layout.Href("/levels", url.Values{"modal": {m.modal}, "id": {l.ID.String()}}))
				p.Raw(`>`)
				p.Text(m.label)
				p.Raw(`</a> `)
			}
		})

		levelModal(p, data)
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}

func levelModal(p *layout.Printer, data LevelsData) {
	switch data.Modal {
	case ModalViewLevel:
		if data.Detail == nil {
			return
		}
		levelDetail(p, data)
	case ModalCreateLevel:
		layout.Modal(p, ModalCreateLevel, "New level", data.Error, "/levels", func() {
			end := layout.Form(p, "create-level-form", "/levels", "Create")
			layout.Input(p, "Name", "levelName", "text", data.Form.Name, true)
			layout.Input(p, "Board size", "boardSize", "number", data.Form.BoardSize, true)
			layout.Input(p, "Time limit (seconds)", "timeLimit", "number", data.Form.TimeLimit, true)
			end()
		})
	case ModalEditLevel:
		if data.Selected == nil {
			return
		}
		layout.Modal(p, ModalEditLevel, "Edit "+data.Selected.Name, data.Error, "/levels", func() {
			end := layout.Form(p, "edit-level-form", "/levels/"+url.PathEscape(data.Selected.ID.String())+"/edit", "Save")
			layout.Input(p, "Board size", "boardSize", "number", data.Form.BoardSize, true)
			layout.Input(p, "Time limit (seconds)", "timeLimit", "number", data.Form.TimeLimit, true)
			end()
		})
	case ModalDeleteLevel:
		if data.Selected == nil {
			return
		}
		layout.Modal(p, ModalDeleteLevel, "Delete level", data.Error, "/levels", func() {
			p.Raw(`<p>Delete level <strong>`)
			p.Text(data.Selected.Name)
			p.Raw(`</strong>? This cannot be undone.</p>`)
			end := layout.Form(p, "delete-level-form", "/levels/"+url.PathEscape(data.Selected.ID.String())+"/delete", "Delete")
			end()
		})
	case ModalLevelShips:
		if data.Selected == nil {
			return
		}
		layout.Modal(p, ModalLevelShips, "Ships for "+data.Selected.Name, data.Error, "/levels", func() {
			if len(data.Ships.Rows) == 0 {
				p.Element("p", "empty", "No ship types defined yet.")
				return
			}
			end := layout.Form(p, "level-ships-form", "/levels/"+url.PathEscape(data.Selected.ID.String())+"/ships", "Save fleet")
			for _, row := range data.Ships.Rows {
				label := row.Ship.Name + " (size " + strconv.Itoa(row.Ship.Size) + ")"
				layout.Input(p, label, "qty_"+row.Ship.ID.String(), "number", strconv.Itoa(row.Quantity), false)
			}
			end()
		})
	}
}

func levelDetail(p *layout.Printer, data LevelsData) {
	cfg := data.Detail.Config
	var row model.Level
	if data.Selected != nil {
		row = *data.Selected
	}

	name := firstNonEmpty(cfg.Name(), row.Name)
	size := cfg.BoardSize()
	if size == 0 {
		size = row.BoardSize
	}
	limit := cfg.TimeLimit()
	if limit == 0 {
		limit = row.TimeLimit
	}
	id := cfg.LevelID
	if id.IsZero() {
		id = row.ID
	}

	title := "Level"
	if name != "" {
		title = name
	}
	layout.Modal(p, ModalViewLevel, title, data.Error, "/levels", func() {
		p.Raw(`<dl class="level-detail">`)
		layout.Detail(p, "Level ID", orNA(id.String()))
		layout.Detail(p, "Name", orNA(name))
		if size > 0 {
			layout.Detail(p, "Board size", fmt.Sprintf("%dx%d (%d cells)", size, size, size*size))
		} else {
			layout.Detail(p, "Board size", "N/A")
		}
		if limit > 0 {
			layout.Detail(p, "Time limit", fmt.Sprintf("%ds (%dm %ds)", limit, limit/60, limit%60))
		} else {
			layout.Detail(p, "Time limit", "N/A")
		}
		p.Raw(`</dl>`)

		if len(data.Detail.Fleet) == 0 {
			p.Element("p", "empty", "No ships configured for this level.")
			return
		}
		p.Element("h3", "", "Fleet")
		p.Raw(`<table id="level-fleet"><thead><tr><th>Ship</th><th>Size</th><th>Quantity</th></tr></thead><tbody>`)
		for _, f := range data.Detail.Fleet {
			p.Raw(`<tr`)
			p.Attr("data-id", f.Ship.ID.String())
			p.Raw(`>`)
			p.Element("td", "", f.Ship.Name)
			if f.Ship.Size > 0 {
				p.Element("td", "", strconv.Itoa(f.Ship.Size))
			} else {
				p.Element("td", "", "N/A")
			}
			p.Element("td", "", strconv.Itoa(f.Quantity))
			p.Raw(`</tr>`)
		}
		p.Raw(`</tbody></table>`)
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// levelsTable renders levels; actions, when set, fills a trailing column
func levelsTable(p *layout.Printer, id string, levels []model.Level, actions func(model.Level)) {
	if len(levels) == 0 {
		p.Element("p", "empty", "No levels found.")
		return
	}
	p.Raw(`<table`)
	p.Attr("id", id)
	p.Raw(`><thead><tr><th>Name</th><th>Board size</th><th>Time limit</th>`)
	if actions != nil {
		p.Raw(`<th>Actions</th>`)
	}
	p.Raw(`</tr></thead><tbody>`)
	for _, l := range levels {
		p.Raw(`<tr`)
		p.Attr("data-id", l.ID.String())
		p.Raw(`>`)
		p.Element("td", "", l.Name)
		p.Element("td", "", strconv.Itoa(l.BoardSize)+"x"+strconv.Itoa(l.BoardSize))
		p.Element("td", "", strconv.Itoa(l.TimeLimit)+"s")
		if actions != nil {
			p.Raw(`<td class="actions">`)
			actions(l)
			p.Raw(`</td>`)
		}
		p.Raw(`</tr>`)
	}
	p.Raw(`</tbody></table>`)
}
