package cli

import (
	"io"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newCartCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the shopping cart",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := loadCart(cmd, app); err != nil {
					return err
				}

				return renderCart(app)
			},
		},
		newCartAddCommand(app),
		&cobra.Command{
			Use:   "update <line-id> <quantity>",
			Short: "Set the quantity of a line; 0 removes it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				lineID, err := parseID(args[0])
				if err != nil {
					return err
				}

				quantity, err := parseQuantity(args[1])
				if err != nil {
					return err
				}

				if err := loadCart(cmd, app); err != nil {
					return err
				}

				if _, err := app.Cart.Update(cmd.Context(), lineID, quantity); err != nil {
					return err
				}

				return renderCart(app)
			},
		},
		&cobra.Command{
			Use:   "remove <line-id>",
			Short: "Remove a line",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				lineID, err := parseID(args[0])
				if err != nil {
					return err
				}

				if err := loadCart(cmd, app); err != nil {
					return err
				}

				if err := app.Cart.Remove(cmd.Context(), lineID); err != nil {
					return err
				}

				return renderCart(app)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := app.Session.RequireAuth(); err != nil {
					return err
				}

				if err := app.Cart.Clear(cmd.Context()); err != nil {
					return err
				}

				return done(app, "Cart cleared", nil)
			},
		},
	)

	return cmd
}

func newCartAddCommand(app *App) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := loadCart(cmd, app); err != nil {
				return err
			}

			if _, err := app.Cart.Add(cmd.Context(), productID, quantity); err != nil {
				return err
			}

			return renderCart(app)
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")

	return cmd
}

func loadCart(cmd *cobra.Command, app *App) error {
	if err := app.Session.RequireAuth(); err != nil {
		return err
	}

	_, err := app.Cart.Load(cmd.Context())

	return err
}

type cartView struct {
	Lines []models.CartLine `json:"lines"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

func renderCart(app *App) error {
	view := cartView{Lines: app.Cart.Lines(), Count: app.Cart.Count(), Total: app.Cart.Total()}
	if view.Lines == nil {
		view.Lines = []models.CartLine{}
	}

	return render(app, view, func(w io.Writer) {
		row(w, "LINE", "PRODUCT", "NAME", "PRICE", "QTY", "SUBTOTAL")
		for _, l := range view.Lines {
			row(w, l.ID, l.ProductID, l.Name, money(l.Price), l.Qty(), l.Subtotal().StringFixed(2))
		}
		row(w, "", "", "", "", view.Count, view.Total.StringFixed(2))
	})
}
