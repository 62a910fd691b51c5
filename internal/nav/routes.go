package nav

import (
	"strings"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

// Navigation paths
const (
	PathLogin  = "/login"
	PathRoot   = "/"
	PathHome   = "/home"
	PathUsers  = "/users"
	PathLevels = "/levels"
	PathShips  = "/ships"
	PathGames  = "/games"
)

// Layout is one of the two mutually exclusive shells behind the guard
type Layout int

const (
	LayoutAdmin Layout = iota
	LayoutPlayer
)

func (l Layout) String() string {
	if l == LayoutPlayer {
		return "player"
	}
	return "admin"
}

// Route is a screen reachable inside a layout
type Route struct {
	Path  string
	Title string
}

var playerRoutes = []Route{
	{Path: PathRoot, Title: "Home"},
	{Path: PathHome, Title: "Home"},
}

// adminRoutes is also the sidebar, in order
var adminRoutes = []Route{
	{Path: PathRoot, Title: "Dashboard"},
	{Path: PathUsers, Title: "Users"},
	{Path: PathLevels, Title: "Levels"},
	{Path: PathShips, Title: "Ships"},
	{Path: PathGames, Title: "Games"},
}

// LayoutFor picks the layout for a role. Only Player gets the player
// layout; every other value, including no role at all, gets the admin one.
func LayoutFor(role model.Role) Layout {
	if role.IsPlayer() {
		return LayoutPlayer
	}
	return LayoutAdmin
}

// Routes returns the screens of the layout
func (l Layout) Routes() []Route {
	if l == LayoutPlayer {
		return playerRoutes
	}
	return adminRoutes
}

// Allows reports whether path is a screen of the layout
func (l Layout) Allows(path string) bool {
	path = clean(path)
	for _, r := range l.Routes() {
		if r.Path == path {
			return true
		}
	}
	return false
}

// Resolve maps path to a screen of the layout; unmatched paths go to the root
func (l Layout) Resolve(path string) string {
	if l.Allows(path) {
		return clean(path)
	}
	return PathRoot
}

// Title returns the screen title of path within the layout
func (l Layout) Title(path string) string {
	path = l.Resolve(path)
	for _, r := range l.Routes() {
		if r.Path == path {
			return r.Title
		}
	}
	return ""
}

// LandingPath is where a login lands for the given role
func LandingPath(role model.Role) string {
	if LayoutFor(role) == LayoutPlayer {
		return PathHome
	}
	return PathRoot
}

func clean(path string) string {
	if path == "" {
		return PathRoot
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
