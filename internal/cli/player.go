package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

func newPlayerCmd(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerCreateCmd(c))

	return cmd
}

func newPlayerCreateCmd(c *console) *cobra.Command {
	var groupID, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player in a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := model.ParseID(groupID)
			if err != nil {
				return err
			}
			if !c.app.Guard.Admit(cmd.Context()) {
				return ErrNotSignedIn
			}
			player, err := c.app.Players.Create(cmd.Context(), api.CreatePlayerRequest{GroupID: id, DisplayName: name})
			if err != nil {
				return err
			}
			c.out.Print(player)
			return nil
		},
	}

	cmd.Flags().StringVar(&groupID, "group-id", "", "Group id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("group-id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
