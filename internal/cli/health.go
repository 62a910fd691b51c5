package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Health.Check(cmd.Context())
			if err != nil {
				return err
			}
			c.out.Print(result)
			return nil
		},
	}
}
