package cli

import (
	"io"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/spf13/cobra"
)

func newCheckoutCommand(app *App) *cobra.Command {
	var address, phone string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := app.Checkout.PlaceOrder(cmd.Context(), address, phone)
			if err != nil {
				return err
			}

			return renderOrders(app, []models.Order{*order})
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "delivery address")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")

	return cmd
}

func renderOrders(app *App, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}

	return render(app, orders, func(w io.Writer) {
		row(w, "ID", "CREATED", "STATUS", "ITEMS", "TOTAL", "ADDRESS")
		for _, o := range orders {
			units := 0
			for _, item := range o.Items {
				units += item.Quantity
			}
			row(w, o.ID, o.CreatedAt.Local().Format("2006-01-02 15:04"), o.Status, units, money(o.TotalPrice), o.Address)
		}
	})
}
