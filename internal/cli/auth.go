package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/fleetbattle-console/internal/api"
	"github.com/mcoot/fleetbattle-console/internal/nav"
)

func newLoginCmd(c *console) *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Sign in and store the session",
		Annotations: location(nav.PathLogin),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.app.Auth.Login(cmd.Context(), api.LoginRequest{Username: user, Password: pass})
			if err != nil {
				return err
			}
			c.out.Print(LoginResult{User: resp.Summary(), Landing: nav.LandingPath(resp.Role)})
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&pass, "password", "p", "", "Password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(c *console) *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Create an account",
		Long:        "Create an account. Registering does not sign in; run login afterwards.",
		Annotations: location(nav.PathLogin),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.app.Auth.Register(cmd.Context(), req); err != nil {
				return err
			}
			c.out.PrintMessage("Registration successful! Please sign in.")
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

func newLogoutCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			c.out.PrintMessage("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.app.Session.HasToken(cmd.Context()) {
				return ErrNotSignedIn
			}
			user, err := c.app.Session.User(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				return ErrNotSignedIn
			}
			c.out.Print(*user)
			return nil
		},
	}
}
