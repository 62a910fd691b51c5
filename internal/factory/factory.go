package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/config"
	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/session"
	"github.com/mcoot/fleetbattle-console/internal/storage"
	"github.com/mcoot/fleetbattle-console/internal/storage/file"
	"github.com/mcoot/fleetbattle-console/internal/storage/memory"
	redisstorage "github.com/mcoot/fleetbattle-console/internal/storage/redis"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web"
)

// App contains all wired application components
type App struct {
	Config config.Config
	Logger *slog.Logger

	// Session
	Storage storage.Storage
	Session *session.Store

	// HTTP access layer
	Client   *client.Client
	Registry *prometheus.Registry

	// Domain API modules
	Auth      *api.Auth
	Users     *api.Users
	Levels    *api.Levels
	ShipTypes *api.ShipTypes
	Game      *api.Game
	Players   *api.Players
	Health    *api.Health

	// Navigation
	Guard *nav.Guard
	Shell *nav.Shell

	// Screens
	Dashboard   *views.DashboardScreen
	UsersScreen *views.UsersScreen
	LevelsView  *views.LevelsScreen
	ShipsView   *views.ShipsScreen
	GamesView   *views.GamesScreen
	Home        *views.HomeScreen
	Notices     *views.Notices

	closers []io.Closer
}

// New creates a new application with all dependencies wired
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	st, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	app := newWithStorage(cfg, st, logger)
	if c, ok := st.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}
	return app, nil
}

func newStorage(cfg config.Config) (storage.Storage, error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendFile, "":
		dir := cfg.SessionDir
		if dir == "" {
			dir = file.DefaultDir()
		}
		return file.New(dir), nil
	case config.BackendRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("redis_url required when session_backend is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		if cfg.RedisPrefix != "" {
			redisCfg.KeyPrefix = cfg.RedisPrefix
		}
		return redisstorage.New(redisCfg)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.SessionBackend)
	}
}

// newWithStorage wires everything above the session storage (useful for testing)
func newWithStorage(cfg config.Config, st storage.Storage, logger *slog.Logger) *App {
	store := session.New(st, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	clientCfg := client.DefaultConfig()
	clientCfg.BaseURL = cfg.APIBaseURL
	clientCfg.Timeout = cfg.RequestTimeout
	clientCfg.RateLimit = cfg.RateLimit
	clientCfg.Burst = cfg.RateBurst
	clientCfg.LoginPath = nav.PathLogin
	httpClient := client.New(clientCfg, store, nav.ContextNavigator{}, logger, registry)

	users := api.NewUsers(httpClient)
	levels := api.NewLevels(httpClient)
	shipTypes := api.NewShipTypes(httpClient)
	game := api.NewGame(httpClient)
	auth := api.NewAuth(httpClient, store)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Storage:     st,
		Session:     store,
		Client:      httpClient,
		Registry:    registry,
		Auth:        auth,
		Users:       users,
		Levels:      levels,
		ShipTypes:   shipTypes,
		Game:        game,
		Players:     api.NewPlayers(httpClient),
		Health:      api.NewHealth(httpClient),
		Guard:       nav.NewGuard(store, logger),
		Shell:       nav.NewShell(store, logger),
		Dashboard:   views.NewDashboardScreen(users, levels, logger),
		UsersScreen: views.NewUsersScreen(users, auth, logger),
		LevelsView:  views.NewLevelsScreen(levels, shipTypes, logger),
		ShipsView:   views.NewShipsScreen(shipTypes, logger),
		GamesView:   views.NewGamesScreen(game, logger),
		Home:        views.NewHomeScreen(game, store, logger),
		Notices:     views.NewNotices(),
	}
}

// RouterConfig returns the console router wiring for this app
func (a *App) RouterConfig() web.RouterConfig {
	return web.RouterConfig{
		Logger:    a.Logger,
		Session:   a.Session,
		Auth:      a.Auth,
		Health:    a.Health,
		Guard:     a.Guard,
		Shell:     a.Shell,
		Notices:   a.Notices,
		Registry:  a.Registry,
		Dashboard: a.Dashboard,
		Home:      a.Home,
		Users:     a.UsersScreen,
		Levels:    a.LevelsView,
		Ships:     a.ShipsView,
		Games:     a.GamesView,
	}
}

// Close releases the shell subscription and the session storage
func (a *App) Close() error {
	a.Shell.Close()
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
