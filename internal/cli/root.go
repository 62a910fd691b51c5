package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/client"
	"github.com/mcoot/fleetbattle-console/internal/config"
	"github.com/mcoot/fleetbattle-console/internal/factory"
	"github.com/mcoot/fleetbattle-console/internal/nav"
)

// routeAnnotation names the screen a command stands for. Commands carrying
// one are admitted by the guard and checked against the shell's layout.
const routeAnnotation = "route"

// locationAnnotation places an unguarded command on a screen, so the client
// treats its requests the way it treats that screen's
const locationAnnotation = "location"

var (
	ErrNotSignedIn  = errors.New("not signed in: run `fbconsole login` first")
	ErrNotAvailable = errors.New("not available to this account")
)

// console is the state shared by the commands of one invocation
type console struct {
	v       *viper.Viper
	envFile string
	cfg     config.Config
	logger  *slog.Logger
	app     *factory.App
	out     *Output
}

func route(path string) map[string]string {
	return map[string]string{routeAnnotation: path}
}

func location(path string) map[string]string {
	return map[string]string{locationAnnotation: path}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&console{v: config.New()})
}

func newRootCmd(c *console) *cobra.Command {

	rootCmd := &cobra.Command{
		Use:   "fbconsole",
		Short: "Administration console for Fleet Battle",
		Long: `fbconsole administers a Fleet Battle backend: accounts, levels, ship types
and game data.

Every screen of the web console has a command group here; "fbconsole serve"
starts the web console itself. The session is shared between the two.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("api", "", "Backend API base URL (env: FBCONSOLE_API_BASE_URL)")
	flags.String("session-backend", "", "Session storage: file, memory, redis (env: FBCONSOLE_SESSION_BACKEND)")
	flags.String("session-dir", "", "Session directory for the file backend (env: FBCONSOLE_SESSION_DIR)")
	flags.String("redis-url", "", "Redis URL for the redis backend (env: FBCONSOLE_REDIS_URL)")
	flags.StringP("output", "o", "", "Output format: text, json")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringVar(&c.envFile, "env-file", ".env", "Environment file loaded before the FBCONSOLE_* variables")
	bindFlags(c.v, rootCmd, map[string]string{
		config.KeyAPIBaseURL:     "api",
		config.KeySessionBackend: "session-backend",
		config.KeySessionDir:     "session-dir",
		config.KeyRedisURL:       "redis-url",
		config.KeyOutput:         "output",
		config.KeyVerbose:        "verbose",
	})

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd(c))
	rootCmd.AddCommand(newRegisterCmd(c))
	rootCmd.AddCommand(newLogoutCmd(c))
	rootCmd.AddCommand(newWhoamiCmd(c))
	rootCmd.AddCommand(newHealthCmd(c))
	rootCmd.AddCommand(newDashboardCmd(c))
	rootCmd.AddCommand(newHomeCmd(c))
	rootCmd.AddCommand(newUsersCmd(c))
	rootCmd.AddCommand(newLevelsCmd(c))
	rootCmd.AddCommand(newShipsCmd(c))
	rootCmd.AddCommand(newGamesCmd(c))
	rootCmd.AddCommand(newPlayerCmd(c))
	rootCmd.AddCommand(newServeCmd(c))

	return rootCmd
}

// setup loads the configuration, wires the app and applies the guard and
// the shell to commands that stand for a screen
func (c *console) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(c.v)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = cfg.Logger(cmd.ErrOrStderr(), cmd.Name() == "serve")
	c.out = NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

	app, err := factory.New(cfg, c.logger)
	if err != nil {
		return err
	}
	c.app = app

	path, guarded := cmd.Annotations[routeAnnotation]
	if !guarded {
		path = cmd.Annotations[locationAnnotation]
	}
	ctx := nav.WithLocation(cmd.Context(), path)
	if guarded {
		if !app.Guard.Admit(ctx) {
			return ErrNotSignedIn
		}
		if resolved := app.Shell.Resolve(ctx, path); resolved != path {
			return fmt.Errorf("%w: %s is not part of the %s console", ErrNotAvailable, path, app.Shell.Layout())
		}
	}
	cmd.SetContext(ctx)
	return nil
}

func (c *console) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// Run executes the command line and returns the process exit code
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &console{v: config.New()}
	defer func() { _ = c.close() }()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	out := NewOutput(outputFormat(root), stdout, stderr)
	out.PrintError(err)
	return 1
}

func outputFormat(root *cobra.Command) string {
	if f := root.PersistentFlags().Lookup("output"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "text"
}

// describe turns a command failure into the text shown to the operator
func describe(err error) string {
	switch {
	case client.IsSessionExpired(err):
		return "Your session has expired. Please log in again."
	case errors.Is(err, api.ErrNoToken):
		return "The server did not return a session. Please try again."
	case errors.Is(err, ErrNotSignedIn), errors.Is(err, ErrNotAvailable):
		return err.Error()
	}
	return client.MessageOr(err, err.Error())
}
