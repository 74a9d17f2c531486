package cli

import (
	"io"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/spf13/cobra"
)

func newLoginCommand(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := readSecret(app, password, "Password")
			if err != nil {
				return err
			}

			session, err := app.Session.Login(cmd.Context(), email, secret)
			if err != nil {
				return err
			}

			return renderSession(app, session)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return withoutRestore(cmd)
}

func newLogoutCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}

			return done(app, "Logged out", nil)
		},
	}

	return withoutRestore(cmd)
}

func newRegisterCommand(app *App) *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := readSecret(app, req.Password, "Password")
			if err != nil {
				return err
			}
			req.Password = secret

			if req.ConfirmPassword == "" {
				req.ConfirmPassword = secret
			}

			session, err := app.Session.Register(cmd.Context(), &req)
			if err != nil {
				return err
			}

			return renderSession(app, session)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (read from stdin when omitted)")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")

	return withoutRestore(cmd)
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Session.RequireAuth(); err != nil {
				return err
			}

			return renderSession(app, app.Session.Current())
		},
	}
}

type sessionView struct {
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	UserID    int64      `json:"user_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func renderSession(app *App, s models.Session) error {
	view := sessionView{Email: s.Email, Role: s.Role, UserID: s.UserID}
	if !s.ExpiresAt.IsZero() {
		view.ExpiresAt = &s.ExpiresAt
	}

	return render(app, view, func(w io.Writer) {
		row(w, "EMAIL", "ROLE", "USER ID", "EXPIRES")
		expires := "-"
		if view.ExpiresAt != nil {
			expires = view.ExpiresAt.Local().Format(time.DateTime)
		}
		row(w, view.Email, view.Role, view.UserID, expires)
	})
}
