package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/flock-console/internal/form"
	"github.com/noah-isme/flock-console/internal/ui"
)

// newLoginCmd checks credentials. The session is left open so a printed
// token stays valid.
func newLoginCmd(a *app) *cobra.Command {
	var (
		email     string
		password  string
		showToken bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and optionally print an access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = a.cfg.Auth.Email
			}
			if password == "" {
				password = a.cfg.Auth.Password
			}
			f := form.New(form.LoginDraft{}, formOptions(a, "login", "log in", "Logged in"))
			values := map[string]string{"email": email, "password": password}
			return runForm(cmd.Context(), a, f, values, func(ctx context.Context, d form.LoginDraft) error {
				resp, err := a.auth.Login(ctx, d.ToRequest())
				if err != nil {
					return err
				}
				a.printf("Logged in as %s\n", resp.User.Username)
				if showToken {
					a.println(resp.AccessToken)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (default FLOCK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "account password (default FLOCK_PASSWORD)")
	cmd.Flags().BoolVar(&showToken, "show-token", false, "print the access token for use as FLOCK_TOKEN")
	return cmd
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			user, err := a.auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			pairs := []ui.Pair{
				{Label: "Username", Value: user.Username},
				{Label: "Email", Value: user.Email},
			}
			if exp := a.session.ExpiresAt(); !exp.IsZero() {
				pairs = append(pairs, ui.Pair{Label: "Token expires", Value: exp.Local().Format(time.RFC1123)})
			}
			a.println(a.render.Summary(pairs))
			return nil
		},
	}
}

func newRegisterCmd(a *app) *cobra.Command {
	var email, username, password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.New(form.RegisterDraft{}, formOptions(a, "register", "register", "Account created. You can now log in."))
			values := map[string]string{
				"email":            email,
				"username":         username,
				"password":         password,
				"confirm_password": confirm,
			}
			return runForm(cmd.Context(), a, f, values, func(ctx context.Context, d form.RegisterDraft) error {
				return a.auth.Register(ctx, d.ToRequest())
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "repeat the password")
	return cmd
}

func newPasswordResetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password-reset",
		Short: "Reset a forgotten password",
	}
	cmd.AddCommand(newPasswordResetRequestCmd(a))
	cmd.AddCommand(newPasswordResetConfirmCmd(a))
	return cmd
}

func newPasswordResetRequestCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Email a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.New(form.PasswordResetRequestDraft{},
				formOptions(a, "password_reset_request", "request a password reset", "If the email is registered, a reset link is on its way."))
			return runForm(cmd.Context(), a, f, map[string]string{"email": email}, func(ctx context.Context, d form.PasswordResetRequestDraft) error {
				return a.auth.RequestPasswordReset(ctx, d.ToRequest())
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newPasswordResetConfirmCmd(a *app) *cobra.Command {
	var token, password, confirm string
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Set a new password with a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.New(form.PasswordResetDraft{},
				formOptions(a, "password_reset", "reset password", "Password updated. You can now log in."))
			values := map[string]string{
				"token":            token,
				"new_password":     password,
				"confirm_password": confirm,
			}
			return runForm(cmd.Context(), a, f, values, func(ctx context.Context, d form.PasswordResetDraft) error {
				return a.auth.ConfirmPasswordReset(ctx, d.ToRequest())
			})
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "token from the reset email")
	cmd.Flags().StringVar(&password, "password", "", "new password, at least 8 characters")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "repeat the new password")
	return cmd
}
