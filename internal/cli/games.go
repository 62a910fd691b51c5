package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
)

func newGamesCmd(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Game data commands",
	}

	cmd.AddCommand(newGamesConfigCmd(c))

	return cmd
}

func newGamesConfigCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "config [LEVEL_ID]",
		Short:       "List levels, or show the game configuration of one",
		Args:        cobra.MaximumNArgs(1),
		Annotations: route(nav.PathGames),
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected model.ID
			if len(args) == 1 {
				id, err := model.ParseID(args[0])
				if err != nil {
					return err
				}
				selected = id
			}
			games := c.app.GamesView.Load(cmd.Context(), selected)
			if games.Error != "" && games.Config == nil && len(games.Levels) == 0 {
				return errors.New(games.Error)
			}
			c.out.Print(games)
			return nil
		},
	}
}
