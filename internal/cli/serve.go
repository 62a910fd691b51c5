package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mcoot/fleetbattle-console/internal/web"
)

func newServeCmd(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web console",
		Long: `Run the web console on listen_addr (env: FBCONSOLE_LISTEN_ADDR).

The console acts for the operator whose session is stored in the configured
backend. With the redis backend, a login or logout made from another process
switches the console layout as soon as it happens.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serverCfg := web.DefaultServerConfig()
			serverCfg.Addr = c.cfg.ListenAddr
			server := web.NewServer(web.NewRouter(c.app.RouterConfig()), serverCfg, c.logger)

			g, ctx := errgroup.WithContext(ctx)
			g.Go(server.Start)
			g.Go(func() error {
				return c.app.Session.Watch(ctx)
			})
			g.Go(func() error {
				<-ctx.Done()
				c.logger.Info("shutdown signal received")
				return server.Shutdown(context.Background())
			})

			if err := g.Wait(); err != nil {
				c.logger.Error("console stopped with error", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}

	return cmd
}
