package cli

import (
	"io"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/spf13/cobra"
)

func newProfileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your account",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show account details",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				user, err := app.Profile.Info(cmd.Context())
				if err != nil {
					return err
				}

				return renderUser(app, user)
			},
		},
		newProfileUpdateCommand(app),
		newProfilePasswordCommand(app),
		&cobra.Command{
			Use:   "delete",
			Short: "Delete the account and log out",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := app.Profile.Delete(cmd.Context()); err != nil {
					return err
				}

				return done(app, "Account deleted", nil)
			},
		},
		newProfileOrdersCommand(app),
		newProfileRateCommand(app),
	)

	return cmd
}

func newProfileUpdateCommand(app *App) *cobra.Command {
	var req models.UpdateProfileRequest

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name or email; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := app.Profile.Info(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("username") {
				req.Username = current.Username
			}
			if !flags.Changed("last-name") {
				req.LastName = current.LastName
			}
			if !flags.Changed("email") {
				req.Email = current.Email
			}

			user, err := app.Profile.Update(cmd.Context(), &req)
			if err != nil {
				return err
			}

			return renderUser(app, user)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "new password")

	return cmd
}

func newProfilePasswordCommand(app *App) *cobra.Command {
	var req models.ChangePasswordRequest

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.ConfirmPassword == "" {
				req.ConfirmPassword = req.NewPassword
			}

			if err := app.Profile.ChangePassword(cmd.Context(), &req); err != nil {
				return err
			}

			return done(app, "Password changed ("+string(app.Profile.PasswordStrength(req.NewPassword))+")", map[string]any{
				"strength": app.Profile.PasswordStrength(req.NewPassword),
			})
		},
	}

	cmd.Flags().StringVar(&req.CurrentPassword, "current", "", "current password")
	cmd.Flags().StringVar(&req.NewPassword, "new", "", "new password, at least 8 characters")
	cmd.Flags().StringVar(&req.ConfirmPassword, "confirm", "", "repeat the new password (defaults to --new)")

	return cmd
}

func newProfileOrdersCommand(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := &models.OrderQuery{}
			if status != "" {
				parsed, err := models.ParseOrderStatus(status)
				if err != nil {
					return err
				}
				query.Status = parsed
			}

			orders, err := app.Profile.Orders(cmd.Context(), query)
			if err != nil {
				return err
			}

			return renderOrders(app, orders)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only orders in this status")

	return cmd
}

func newProfileRateCommand(app *App) *cobra.Command {
	var rating int
	var review string

	cmd := &cobra.Command{
		Use:   "rate <product-id>",
		Short: "Rate a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.Profile.RateProduct(cmd.Context(), productID, rating, review); err != nil {
				return err
			}

			return done(app, "Thanks for the review", map[string]any{"product_id": productID, "rating": rating})
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "stars, 1 to 5")
	cmd.Flags().StringVar(&review, "review", "", "optional review text")

	return cmd
}

func renderUser(app *App, user *models.User) error {
	return render(app, user, func(w io.Writer) {
		row(w, "ID", user.ID)
		row(w, "Username", user.Username)
		row(w, "Last name", user.LastName)
		row(w, "Email", user.Email)
		row(w, "Role", user.Role)
	})
}
