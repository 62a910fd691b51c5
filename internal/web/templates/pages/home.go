package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// HomeData is the player landing screen
type HomeData struct {
	layout.PageData
	Home views.Home
}

// Home renders the player landing screen
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		name := "Captain"
		if u := data.Home.User; u != nil && u.Username != "" {
			name = u.Username
		}
		p.Raw(`<h1 class="welcome">Welcome, `)
		p.Text(name)
		p.Raw(`</h1>`)

		if u := data.Home.User; u != nil {
			p.Raw(`<section class="player-stats">`)
			statCard(p, "stat-elo", "Rating", u.CurrentElo)
			statCard(p, "stat-wins", "Wins", u.Wins)
			statCard(p, "stat-games", "Games played", u.TotalGames)
			p.Raw(`</section>`)
		}

		layout.Alert(p, "load-error", data.Home.Error)
		p.Element("h2", "", "Levels")
		if len(data.Home.Levels) == 0 {
			p.Element("p", "empty", "No levels available yet.")
			return p.Err()
		}
		p.Raw(`<div class="level-cards">`)
		for _, hl := range data.Home.Levels {
			p.Raw(`<article class="level-card"`)
			p.Attr("data-id", hl.Level.ID.String())
			p.Raw(`>`)
			p.Element("h3", "", hl.Level.Name)
			p.Element("p", "board", "Board "+strconv.Itoa(hl.Level.BoardSize)+"x"+strconv.Itoa(hl.Level.BoardSize))
			p.Element("p", "time", "Time limit "+strconv.Itoa(hl.Level.TimeLimit)+"s")
			if hl.Config != nil {
				fleet := 0
				for _, s := range hl.Config.Ships() {
					fleet += s.Quantity
				}
				p.Element("p", "fleet", "Fleet of "+strconv.Itoa(fleet)+" ships")
			}
			p.Raw(`</article>`)
		}
		p.Raw(`</div>`)
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}
