package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/fleetbattle-console/internal/nav"
)

func newDashboardCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "dashboard",
		Short:       "Show account and level totals",
		Long:        "Show account and level totals. Players are shown their home screen instead.",
		Annotations: route(nav.PathRoot),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.app.Shell.Layout() == nav.LayoutPlayer {
				c.out.Print(c.app.Home.Load(cmd.Context()))
				return nil
			}
			c.out.Print(c.app.Dashboard.Load(cmd.Context()))
			return nil
		},
	}
}

func newHomeCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "home",
		Short:       "Show the player home screen",
		Annotations: route(nav.PathHome),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.out.Print(c.app.Home.Load(cmd.Context()))
			return nil
		},
	}
}
