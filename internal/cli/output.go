package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/views"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	stdout io.Writer
	stderr io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, stdout, stderr io.Writer) *Output {
	return &Output{format: format, stdout: stdout, stderr: stderr}
}

// LoginResult is what a successful login reports
type LoginResult struct {
	User    model.UserSummary `json:"user"`
	Landing string            `json:"landing"`
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(o.stdout, data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	msg := describe(err)
	if o.format == "json" {
		o.printJSON(o.stderr, map[string]any{
			"error": map[string]string{"message": msg},
		})
	} else {
		fmt.Fprintf(o.stderr, "Error: %s\n", msg)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(o.stdout, map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.stdout, msg)
	}
}

func (o *Output) printJSON(w io.Writer, data any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		o.printLogin(v)
	case model.UserSummary:
		o.printSummary(v)
	case views.UsersPage:
		o.printUsersPage(v)
	case model.User:
		o.printUser(v)
	case []model.Role:
		for _, r := range v {
			fmt.Fprintln(o.stdout, r)
		}
	case []model.Level:
		o.printLevels(v)
	case model.GameConfig:
		o.printGameConfig(v)
	case []model.ShipType:
		o.printShips(v)
	case model.ShipType:
		o.printShips([]model.ShipType{v})
	case views.Dashboard:
		o.printDashboard(v)
	case views.Home:
		o.printHome(v)
	case views.Games:
		o.printGames(v)
	case views.LevelDetail:
		o.printLevelDetail(v)
	case views.ShipConfigForm:
		o.printShipConfig(v)
	case model.Health:
		o.printHealth(v)
	case model.Player:
		fmt.Fprintf(o.stdout, "Player: %s (%s)\n", v.DisplayName, v.ID)
		fmt.Fprintf(o.stdout, "Group: %s\n", v.GroupID)
	case api.Ack:
		o.printAck(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(o.stdout, data)
	}
}

func (o *Output) table(header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(o.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...any) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func (o *Output) printLogin(r LoginResult) {
	fmt.Fprintf(o.stdout, "Signed in as %s (%s)\n", r.User.Username, roleLabel(r.User.Role))
	fmt.Fprintf(o.stdout, "Landing: %s\n", r.Landing)
}

func (o *Output) printSummary(u model.UserSummary) {
	fmt.Fprintf(o.stdout, "User: %s (%s)\n", u.Username, u.UserID)
	fmt.Fprintf(o.stdout, "Role: %s\n", roleLabel(u.Role))
	if u.Email != "" {
		fmt.Fprintf(o.stdout, "Email: %s\n", u.Email)
	}
	fmt.Fprintf(o.stdout, "ELO: %d  Wins: %d  Games: %d\n", u.CurrentElo, u.Wins, u.TotalGames)
}

func (o *Output) printUsersPage(p views.UsersPage) {
	fmt.Fprintf(o.stdout, "Users: %d  Active: %d  Admins: %d\n", p.Counts.Total, p.Counts.Active, p.Counts.Admins)
	if p.Search != "" {
		fmt.Fprintf(o.stdout, "Matching %q: %d\n", p.Search, p.Matches)
	}
	if len(p.Users) == 0 {
		fmt.Fprintln(o.stdout, "No users found")
		return
	}
	tw := o.table("ID", "USERNAME", "EMAIL", "ROLE", "STATUS", "ELO")
	for _, u := range p.Users {
		row(tw, u.ID, u.Username, u.Email, roleLabel(u.Role), status(u.Active()), u.CurrentElo)
	}
	_ = tw.Flush()
	if p.Pages > 1 {
		fmt.Fprintf(o.stdout, "Page %d of %d\n", p.Page, p.Pages)
	}
}

func (o *Output) printUser(u model.User) {
	fmt.Fprintf(o.stdout, "User: %s (%s)\n", u.Username, u.ID)
	fmt.Fprintf(o.stdout, "Email: %s\n", u.Email)
	fmt.Fprintf(o.stdout, "Role: %s\n", roleLabel(u.Role))
	fmt.Fprintf(o.stdout, "Status: %s\n", status(u.Active()))
	fmt.Fprintf(o.stdout, "ELO: %d  Wins: %d  Games: %d\n", u.CurrentElo, u.Wins, u.TotalGames)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(o.stdout, "Created: %s\n", u.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (o *Output) printLevels(levels []model.Level) {
	if len(levels) == 0 {
		fmt.Fprintln(o.stdout, "No levels found")
		return
	}
	tw := o.table("ID", "NAME", "BOARD", "TIME LIMIT")
	for _, l := range levels {
		row(tw, l.ID, l.Name, fmt.Sprintf("%dx%d", l.BoardSize, l.BoardSize), l.TimeLimit)
	}
	_ = tw.Flush()
}

func (o *Output) printGameConfig(c model.GameConfig) {
	tw := o.table("FIELD", "VALUE")
	for _, f := range c.Fields() {
		row(tw, f.Key, f.Value)
	}
	_ = tw.Flush()
}

func (o *Output) printShips(ships []model.ShipType) {
	if len(ships) == 0 {
		fmt.Fprintln(o.stdout, "No ship types found")
		return
	}
	tw := o.table("ID", "NAME", "SIZE", "MODEL")
	for _, s := range ships {
		row(tw, s.ID, s.Name, s.Size, s.ModelCode)
	}
	_ = tw.Flush()
}

func (o *Output) printLevelDetail(d views.LevelDetail) {
	o.printGameConfig(d.Config)
	if len(d.Fleet) == 0 {
		return
	}
	fmt.Fprintln(o.stdout)
	tw := o.table("SHIP", "SIZE", "QUANTITY")
	for _, f := range d.Fleet {
		row(tw, f.Ship.Name, f.Ship.Size, f.Quantity)
	}
	_ = tw.Flush()
}

func (o *Output) printShipConfig(f views.ShipConfigForm) {
	fmt.Fprintf(o.stdout, "Fleet for level %s:\n", f.LevelID)
	tw := o.table("SHIP", "SIZE", "QUANTITY")
	for _, r := range f.Rows {
		row(tw, r.Ship.Name, r.Ship.Size, r.Quantity)
	}
	_ = tw.Flush()
}

func (o *Output) printDashboard(d views.Dashboard) {
	if len(d.Unavailable) > 0 {
		fmt.Fprintf(o.stdout, "Warning: could not load %s\n", strings.Join(d.Unavailable, ", "))
	}
	fmt.Fprintf(o.stdout, "Total users: %d\n", d.Stats.TotalUsers)
	fmt.Fprintf(o.stdout, "Active users: %d\n", d.Stats.ActiveUsers)
	fmt.Fprintf(o.stdout, "Admins: %d\n", d.Stats.Admins)
	fmt.Fprintf(o.stdout, "Total levels: %d\n", d.Stats.TotalLevels)
	if len(d.Levels) > 0 {
		fmt.Fprintln(o.stdout)
		o.printLevels(d.Levels)
	}
}

func (o *Output) printHome(h views.Home) {
	if h.User != nil {
		fmt.Fprintf(o.stdout, "Welcome, %s\n", h.User.Username)
		fmt.Fprintf(o.stdout, "ELO: %d  Wins: %d  Games: %d\n", h.User.CurrentElo, h.User.Wins, h.User.TotalGames)
	}
	if h.Error != "" {
		fmt.Fprintf(o.stdout, "Error: %s\n", h.Error)
	}
	if len(h.Levels) == 0 {
		return
	}
	fmt.Fprintln(o.stdout)
	tw := o.table("LEVEL", "BOARD", "TIME LIMIT", "SHIPS")
	for _, hl := range h.Levels {
		ships := 0
		if hl.Config != nil {
			for _, s := range hl.Config.Ships() {
				ships += s.Quantity
			}
		}
		row(tw, hl.Level.Name, fmt.Sprintf("%dx%d", hl.Level.BoardSize, hl.Level.BoardSize), hl.Level.TimeLimit, ships)
	}
	_ = tw.Flush()
}

func (o *Output) printGames(g views.Games) {
	if g.Error != "" {
		fmt.Fprintf(o.stdout, "Error: %s\n", g.Error)
	}
	if g.Config == nil {
		o.printLevels(g.Levels)
		return
	}
	fmt.Fprintf(o.stdout, "Configuration for level %s:\n", g.Selected)
	o.printGameConfig(*g.Config)
}

func (o *Output) printHealth(h model.Health) {
	fmt.Fprintf(o.stdout, "Status: %s\n", h.Status)
}

func (o *Output) printAck(a api.Ack) {
	switch {
	case a.Message != "" && !a.ID.IsZero():
		fmt.Fprintf(o.stdout, "%s (id %s)\n", a.Message, a.ID)
	case a.Message != "":
		fmt.Fprintln(o.stdout, a.Message)
	case !a.ID.IsZero():
		fmt.Fprintf(o.stdout, "OK (id %s)\n", a.ID)
	default:
		fmt.Fprintln(o.stdout, "OK")
	}
}

func roleLabel(r model.Role) string {
	if r == "" {
		return "-"
	}
	return r.String()
}

func status(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
