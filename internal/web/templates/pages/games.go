package pages

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// GamesData is the game data screen
type GamesData struct {
	layout.PageData
	Games views.Games
}

// Games renders the game data screen
func Games(data GamesData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Element("h1", "", "Game data")
		layout.Alert(p, "load-error", data.Games.Error)

		p.Raw(`<ul class="level-picker">`)
		for _, l := range data.Games.Levels {
			p.Raw(`<li><a`)
			p.Attr("href", layout.Href("/games", url.Values{"level": {l.ID.String()}}))
			if l.ID == data.Games.Selected {
				p.Attr("class", "active")
			}
			p.Raw(`>`)
			p.Text(l.Name)
			p.Raw(`</a></li>`)
		}
		p.Raw(`</ul>`)

		if cfg := data.Games.Config; cfg != nil {
			p.Raw(`<section id="game-config">`)
			p.Element("h2", "", "Configuration")
			p.Raw(`<dl>`)
			for _, f := range cfg.Fields() {
				p.Element("dt", "", f.Key)
				p.Element("dd", "", f.Value)
			}
			p.Raw(`</dl>`)
			if ships := cfg.Ships(); len(ships) > 0 {
				p.Raw(`<table id="config-ships"><thead><tr><th>Ship type</th><th>Quantity</th></tr></thead><tbody>`)
				for _, s := range ships {
					p.Raw(`<tr>`)
					p.Element("td", "", s.ShipTypeID.String())
					p.Element("td", "", strconv.Itoa(s.Quantity))
					p.Raw(`</tr>`)
				}
				p.Raw(`</tbody></table>`)
			}
			p.Raw(`</section>`)
		} else if len(data.Games.Levels) > 0 {
			p.Element("p", "hint", "Select a level to see its configuration.")
		}
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}
