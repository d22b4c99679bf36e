package main

import (
	"github.com/spf13/cobra"

	"shopfront/internal/storefront/app/dto"
)

func newLoginCmd(c *cli) *cobra.Command {
	var pass string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and save the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &dto.LoginRequest{Username: args[0], Password: password(pass)}
			if err := c.app.Auth.Login(cmd.Context(), req); err != nil {
				return err
			}
			return c.print(dto.StatusResponse{Message: "logged in as " + args[0], Success: true})
		},
	}
	cmd.Flags().StringVarP(&pass, "password", "p", "", "password (or set "+EnvPassword+")")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var req dto.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username = args[0]
			req.Password = password(req.Password)
			if req.PasswordConfirm == "" {
				req.PasswordConfirm = req.Password
			}
			resp, err := c.app.Auth.Register(cmd.Context(), &req)
			if err != nil {
				return err
			}
			resp.Access, resp.Refresh = "", ""
			return c.print(resp)
		},
	}
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (or set "+EnvPassword+")")
	cmd.Flags().StringVar(&req.PasswordConfirm, "password-confirm", "", "password confirmation (defaults to --password)")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return c.print(dto.StatusResponse{Message: "logged out", Success: true})
		},
	}
}

func newPasswordResetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password-reset <email>",
		Short: "Request a password reset link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.app.Auth.RequestPasswordReset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}

	var pass string
	confirm := &cobra.Command{
		Use:   "confirm <uid> <token>",
		Short: "Set a new password using the link from the reset email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := password(pass)
			resp, err := c.app.Auth.ConfirmPasswordReset(cmd.Context(), args[0], args[1],
				&dto.PasswordResetConfirmRequest{NewPassword: p, NewPasswordConfirm: p})
			if err != nil {
				return err
			}
			return c.print(resp)
		},
	}
	confirm.Flags().StringVarP(&pass, "password", "p", "", "new password (or set "+EnvPassword+")")

	cmd.AddCommand(confirm)
	return cmd
}
