package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/nav"
	"github.com/mcoot/fleetbattle-console/internal/views"
)

func newUsersCmd(c *console) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Account management commands",
	}

	cmd.AddCommand(newUsersListCmd(c))
	cmd.AddCommand(newUsersGetCmd(c))
	cmd.AddCommand(newUsersCreateCmd(c))
	cmd.AddCommand(newUsersUpdateCmd(c))
	cmd.AddCommand(newUsersRoleCmd(c))
	cmd.AddCommand(newUsersStatusCmd(c))
	cmd.AddCommand(newUsersDeleteCmd(c))
	cmd.AddCommand(newUsersRolesCmd(c))

	return cmd
}

func newUsersListCmd(c *console) *cobra.Command {
	var q views.UserQuery

	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List accounts",
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := c.app.UsersScreen.Load(cmd.Context(), q)
			if err != nil {
				return err
			}
			c.out.Print(page)
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Filter by username or email")
	cmd.Flags().IntVar(&q.Page, "page", 1, "Page number")

	return cmd
}

func newUsersGetCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "get ID",
		Short:       "Show one account",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.user(cmd, args[0])
			if err != nil {
				return err
			}
			c.out.Print(user)
			return nil
		},
	}
}

func newUsersCreateCmd(c *console) *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Create an account",
		Long:        "Create an account with the backend's default role. Use `users role` to change it.",
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := c.app.UsersScreen.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUsersUpdateCmd(c *console) *cobra.Command {
	var req api.UpdateUserRequest

	cmd := &cobra.Command{
		Use:         "update ID",
		Short:       "Change the username and email of an account",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := c.user(cmd, args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("username") {
				req.Username = current.Username
			}
			if !cmd.Flags().Changed("email") {
				req.Email = current.Email
			}
			ack, err := c.app.Users.Update(cmd.Context(), current.ID, req)
			if err != nil {
				return err
			}
			c.out.Print(ack)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "New username")
	cmd.Flags().StringVar(&req.Email, "email", "", "New email address")

	return cmd
}

func newUsersRoleCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "role ID ROLE",
		Short:       "Change the role of an account",
		Args:        cobra.ExactArgs(2),
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := c.user(cmd, args[0])
			if err != nil {
				return err
			}
			edit := views.UserEdit{Role: model.Role(args[1]), Active: current.Active()}
			return c.applyEdit(cmd, current, edit)
		},
	}
}

func newUsersStatusCmd(c *console) *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:         "status ID",
		Short:       "Activate or deactivate an account",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := c.user(cmd, args[0])
			if err != nil {
				return err
			}
			edit := views.UserEdit{Role: current.Role, Active: active}
			return c.applyEdit(cmd, current, edit)
		},
	}

	cmd.Flags().BoolVar(&active, "active", true, "Whether the account is active")

	return cmd
}

func newUsersDeleteCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "delete ID",
		Short:       "Delete an account",
		Args:        cobra.ExactArgs(1),
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.user(cmd, args[0])
			if err != nil {
				return err
			}
			msg, err := c.app.UsersScreen.Delete(cmd.Context(), user)
			if err != nil {
				return err
			}
			c.out.PrintMessage(msg)
			return nil
		},
	}
}

func newUsersRolesCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:         "roles",
		Short:       "List the roles an account can hold",
		Annotations: route(nav.PathUsers),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.out.Print(c.app.UsersScreen.RoleChoices(cmd.Context()))
			return nil
		},
	}
}

func (c *console) user(cmd *cobra.Command, arg string) (model.User, error) {
	id, err := model.ParseID(arg)
	if err != nil {
		return model.User{}, err
	}
	return c.app.UsersScreen.Get(cmd.Context(), id)
}

func (c *console) applyEdit(cmd *cobra.Command, current model.User, edit views.UserEdit) error {
	msg, err := c.app.UsersScreen.ApplyEdit(cmd.Context(), current, edit)
	if err != nil {
		return err
	}
	c.out.PrintMessage(msg)
	return nil
}
