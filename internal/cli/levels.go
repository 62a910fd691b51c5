package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
)

func newLevelsCmd(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Level management commands",
	}

	cmd.AddCommand(newLevelsListCmd(c))
	cmd.AddCommand(newLevelsGetCmd(c))
	cmd.AddCommand(newLevelsCreateCmd(c))
	cmd.AddCommand(newLevelsUpdateCmd(c))
	cmd.AddCommand(newLevelsDeleteCmd(c))
	cmd.AddCommand(newLevelsShipsCmd(c))

	return cmd
}

func newLevelsListCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List levels",
		Annotations: route(nav.PathLevels),
		RunE: func(cmd *cobra.Command, args []string) error {
			levels, err := c.app.LevelsView.Load(cmd.Context())
			if err != nil {
				return err
			}
			c.out.Print(levels)
			return nil
		},
	}
}

func newLevelsGetCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "get ID",
		Short:       "Show the configuration of a level",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathLevels),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}
			detail, err := c.app.LevelsView.View(cmd.Context(), id)
			if err != nil {
				return err
			}
			c.out.Print(detail)
			return nil
		},
	}
}

func newLevelsCreateCmd(c *console) *cobra.Command {
	var name, boardSize, timeLimit string

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Create a level",
		Annotations: route(nav.PathLevels),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := api.NewCreateLevelRequest(name, boardSize, timeLimit)
			if err != nil {
				return err
			}
			msg, err := c.app.LevelsView.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Level name (required)")
	cmd.Flags().StringVar(&boardSize, "board-size", "", "Board size (required)")
	cmd.Flags().StringVar(&timeLimit, "time-limit", "", "Time limit in seconds (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLevelsUpdateCmd(c *console) *cobra.Command {
	var boardSize, timeLimit string

	cmd := &cobra.Command{
		Use:         "update ID",
		Short:       "Change the board size and time limit of a level",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathLevels),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}
			req, err := api.NewUpdateLevelRequest(boardSize, timeLimit)
			if err != nil {
				return err
			}
			msg, err := c.app.LevelsView.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&boardSize, "board-size", "", "Board size (required)")
	cmd.Flags().StringVar(&timeLimit, "time-limit", "", "Time limit in seconds (required)")

	return cmd
}

func newLevelsDeleteCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "delete ID",
		Short:       "Delete a level",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathLevels),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}
			msg, err := c.app.LevelsView.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}
}

func newLevelsShipsCmd(c *console) *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "ships ID",
		Short: "Show or set the fleet of a level",
		Long: `Show the fleet of a level, or set it with --set SHIP_TYPE_ID=QUANTITY.
Ship types left out of --set are sent as zero and dropped from the fleet.`,
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathLevels),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			form, err := c.app.LevelsView.ShipConfigForm(ctx, id)
			if err != nil {
				return err
			}

			if len(set) == 0 {
				cfg, err := c.app.LevelsView.Detail(ctx, id)
				if err != nil {
					return err
				}
				current := map[model.ID]string{}
				for _, s := range cfg.Ships() {
					current[s.ShipTypeID] = fmt.Sprint(s.Quantity)
				}
				if err := form.SetQuantities(current); err != nil {
					return err
				}
				c.out.Print(form)
				return nil
			}

			values, err := parseQuantities(set)
			if err != nil {
				return err
			}
			if err := form.SetQuantities(values); err != nil {
				return err
			}
			msg, err := c.app.LevelsView.ConfigureShips(ctx, form)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&set, "set", nil, "Quantity for a ship type as ID=QUANTITY (repeatable)")

	return cmd
}

func parseQuantities(set []string) (map[model.ID]string, error) {
	values := make(map[model.ID]string, len(set))
	for _, entry := range set {
		key, qty, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, model.NewValidationError("set", fmt.Sprintf("%q is not ID=QUANTITY", entry))
		}
		id, err := model.ParseID(key)
		if err != nil {
			return nil, err
		}
		values[id] = qty
	}
	return values, nil
}
