package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/session"
	"github.com/mcoot/fleetbattle-console/internal/views"
	"github.com/mcoot/fleetbattle-console/internal/web/handler"
	"github.com/mcoot/fleetbattle-console/internal/web/middleware"
)

// RouterConfig holds configuration for the console router
type RouterConfig struct {
	Logger   *slog.Logger
	Session  *session.Store
	Auth     *api.Auth
	Health   *api.Health
	Guard    *nav.Guard
	Shell    *nav.Shell
	Notices  *views.Notices
	Registry *prometheus.Registry

	Dashboard *views.DashboardScreen
	Home      *views.HomeScreen
	Users     *views.UsersScreen
	Levels    *views.LevelsScreen
	Ships     *views.ShipsScreen
	Games     *views.GamesScreen
}

// NewRouter creates a new console router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	navigationMiddleware := middleware.Navigation()
	noticesMiddleware := middleware.Notices(cfg.Notices)
	authMiddleware := middleware.Auth(cfg.Guard, cfg.Session)
	shellMiddleware := middleware.Shell(cfg.Shell)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(navigationMiddleware)

	// Create handlers
	page := handler.NewPage(cfg.Shell, cfg.Notices, cfg.Logger)
	authHandler := handler.NewAuthHandler(page, cfg.Auth, cfg.Session)
	homeHandler := handler.NewHomeHandler(page, cfg.Shell, cfg.Dashboard, cfg.Home)
	usersHandler := handler.NewUsersHandler(page, cfg.Users)
	levelsHandler := handler.NewLevelsHandler(page, cfg.Levels)
	shipsHandler := handler.NewShipsHandler(page, cfg.Ships)
	gamesHandler := handler.NewGamesHandler(page, cfg.Games)
	healthHandler := handler.NewHealthHandler(cfg.Health)

	// Health and metrics
	r.HandleFunc("/healthz", healthHandler.Health).Methods(http.MethodGet)
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// Public routes
	public := r.NewRoute().Subrouter()
	public.Use(noticesMiddleware)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	public.HandleFunc("/notices/dismiss", page.DismissNotice).Methods(http.MethodPost)

	// Protected routes (require a session and a screen of the current layout)
	protected := r.NewRoute().Subrouter()
	protected.Use(noticesMiddleware)
	protected.Use(authMiddleware)
	protected.Use(shellMiddleware)

	protected.HandleFunc("/", homeHandler.Root).Methods(http.MethodGet)
	protected.HandleFunc("/home", homeHandler.Home).Methods(http.MethodGet)

	// User routes
	protected.HandleFunc("/users", usersHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/users", usersHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id}/edit", usersHandler.Edit).Methods(http.MethodPost)
	protected.HandleFunc("/users/{id}/delete", usersHandler.Delete).Methods(http.MethodPost)

	// Level routes
	protected.HandleFunc("/levels", levelsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/levels", levelsHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/levels/{id}/edit", levelsHandler.Edit).Methods(http.MethodPost)
	protected.HandleFunc("/levels/{id}/delete", levelsHandler.Delete).Methods(http.MethodPost)
	protected.HandleFunc("/levels/{id}/ships", levelsHandler.Ships).Methods(http.MethodPost)

	// Ship type routes
	protected.HandleFunc("/ships", shipsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/ships", shipsHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/ships/{id}/edit", shipsHandler.Edit).Methods(http.MethodPost)
	protected.HandleFunc("/ships/{id}/delete", shipsHandler.Delete).Methods(http.MethodPost)

	// Game data
	protected.HandleFunc("/games", gamesHandler.View).Methods(http.MethodGet)

	// Anything else behind the guard lands on the layout root
	protected.PathPrefix("/").HandlerFunc(homeHandler.Root).Methods(http.MethodGet)

	return r
}
