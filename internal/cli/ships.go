package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
)

func newShipsCmd(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ships",
		Short: "Ship type management commands",
	}

	cmd.AddCommand(newShipsListCmd(c))
	cmd.AddCommand(newShipsGetCmd(c))
	cmd.AddCommand(newShipsCreateCmd(c))
	cmd.AddCommand(newShipsUpdateCmd(c))
	cmd.AddCommand(newShipsDeleteCmd(c))

	return cmd
}

func newShipsListCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List ship types",
		Annotations: route(nav.PathShips),
		RunE: func(cmd *cobra.Command, args []string) error {
			ships, err := c.app.ShipsView.Load(cmd.Context())
			if err != nil {
				return err
			}
			c.out.Print(ships)
			return nil
		},
	}
}

func newShipsGetCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "get ID",
		Short:       "Show one ship type",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathShips),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}
			ship, err := c.app.ShipsView.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			c.out.Print(ship)
			return nil
		},
	}
}

// shipFlags are the fields shared by create and update
type shipFlags struct {
	name, size, modelCode string
}

func (f *shipFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Ship name (required)")
	cmd.Flags().StringVar(&f.size, "size", "", "Number of cells (required)")
	cmd.Flags().StringVar(&f.modelCode, "model-code", "", "Model code (required)")
}

func (f *shipFlags) request() (api.ShipTypeRequest, error) {
	return api.NewShipTypeRequest(f.name, f.size, f.modelCode)
}

func newShipsCreateCmd(c *console) *cobra.Command {
	var f shipFlags

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Create a ship type",
		Annotations: route(nav.PathShips),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}
			msg, err := c.app.ShipsView.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func newShipsUpdateCmd(c *console) *cobra.Command {
	var f shipFlags

	cmd := &cobra.Command{
		Use:         "update ID",
		Short:       "Change a ship type",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathShips),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}
			req, err := f.request()
			if err != nil {
				return err
			}
			msg, err := c.app.ShipsView.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func newShipsDeleteCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "delete ID",
		Short:       "Delete a ship type",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathShips),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(args[0])
			if err != nil {
				return err
			}
			msg, err := c.app.ShipsView.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}
}
