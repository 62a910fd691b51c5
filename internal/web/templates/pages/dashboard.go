package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/templates/layout"
)

// DashboardData is the admin landing screen
type DashboardData struct {
	layout.PageData
	Dashboard views.Dashboard
}

// Dashboard renders the admin landing screen
func Dashboard(data DashboardData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := layout.NewPrinter(w)
		p.Element("h1", "", "Dashboard")
		if len(data.Dashboard.Unavailable) > 0 {
			layout.Alert(p, "dashboard-warning", "Some data could not be loaded: "+strings.Join(data.Dashboard.Unavailable, ", "))
		}

		stats := data.Dashboard.Stats
		p.Raw(`<section class="stats">`)
		statCard(p, "stat-total-users", "Total users", stats.TotalUsers)
		statCard(p, "stat-active-users", "Active users", stats.ActiveUsers)
		statCard(p, "stat-admins", "Administrators", stats.Admins)
		statCard(p, "stat-total-levels", "Levels", stats.TotalLevels)
		p.Raw(`</section>`)

		p.Element("h2", "", "Levels")
		levelsTable(p, "dashboard-levels", data.Dashboard.Levels, nil)
		return p.Err()
	})
	return layout.Base(data.PageData, body)
}

func statCard(p *layout.Printer, id, label string, value int) {
	p.Raw(`<div class="stat-card"`)
	p.Attr("id", id)
	p.Raw(`>`)
	p.Element("span", "stat-label", label)
	p.Element("span", "stat-value", strconv.Itoa(value))
	p.Raw(`</div>`)
}
