package views

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

// DashboardStats are the headline numbers of the admin dashboard
type DashboardStats struct {
	TotalUsers  int `json:"totalUsers"`
	ActiveUsers int `json:"activeUsers"`
	Admins      int `json:"admins"`
	TotalLevels int `json:"totalLevels"`
}

// Dashboard is the admin landing screen
type Dashboard struct {
	Stats  DashboardStats `json:"stats"`
	Levels []model.Level  `json:"levels"`
	// Unavailable names the sources that failed and were counted as empty
	Unavailable []string `json:"unavailable,omitempty"`
}

// DashboardScreen loads the dashboard
type DashboardScreen struct {
	users  UserAPI
	levels LevelAPI
	logger *slog.Logger
}

// NewDashboardScreen creates the dashboard screen
func NewDashboardScreen(users UserAPI, levels LevelAPI, logger *slog.Logger) *DashboardScreen {
	return &DashboardScreen{users: users, levels: levels, logger: logger}
}

// Load fetches users and levels concurrently. A source that fails counts as
// empty instead of failing the screen.
func (s *DashboardScreen) Load(ctx context.Context) Dashboard {
	var (
		users     []model.User
		levels    []model.Level
		usersErr  error
		levelsErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		users, usersErr = s.users.List(ctx)
		return nil
	})
	g.Go(func() error {
		levels, levelsErr = s.levels.List(ctx)
		return nil
	})
	_ = g.Wait()

	var d Dashboard
	if usersErr != nil {
		s.logger.Warn("dashboard users unavailable", slog.String("error", usersErr.Error()))
		d.Unavailable = append(d.Unavailable, "users")
		users = nil
	}
	if levelsErr != nil {
		s.logger.Warn("dashboard levels unavailable", slog.String("error", levelsErr.Error()))
		d.Unavailable = append(d.Unavailable, "levels")
		levels = nil
	}

	d.Stats = DashboardStats{
		TotalUsers:  len(users),
		ActiveUsers: countActive(users),
		Admins:      countAdmins(users),
		TotalLevels: len(levels),
	}
	d.Levels = levels
	if d.Levels == nil {
		d.Levels = []model.Level{}
	}
	return d
}

func countActive(users []model.User) int {
	n := 0
	for _, u := range users {
		if u.Active() {
			n++
		}
	}
	return n
}

func countAdmins(users []model.User) int {
	n := 0
	for _, u := range users {
		if u.Role.IsAdmin() {
			n++
		}
	}
	return n
}
