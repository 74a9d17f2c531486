package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/spf13/cobra"
)

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration panels (admin role only)",
	}

	products := &cobra.Command{Use: "products", Short: "Manage products"}
	products.AddCommand(newAdminProductsListCommand(app), newAdminProductSaveCommand(app), newAdminProductDeleteCommand(app))

	users := &cobra.Command{Use: "users", Short: "Manage users"}
	users.AddCommand(
		newAdminUsersListCommand(app),
		newAdminUserUpdateCommand(app),
		newAdminUserCreateCommand(app),
		newAdminUserDeleteCommand(app),
		newAdminTempPasswordCommand(app),
	)

	orders := &cobra.Command{Use: "orders", Short: "Manage orders"}
	orders.AddCommand(newAdminOrdersListCommand(app), newAdminOrderStatusCommand(app))

	cmd.AddCommand(products, users, orders, newAdminStatsCommand(app))

	return cmd
}

func newAdminProductsListCommand(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.Products.Load(cmd.Context()); err != nil {
				return err
			}

			return renderProducts(app, app.Products.Search(search))
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name or category")

	return cmd
}

func newAdminProductSaveCommand(app *App) *cobra.Command {
	var (
		form          models.ProductForm
		originalPrice float64
		imagePath     string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a product, or update it when --id is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()

			if form.ID > 0 {
				if _, err := app.Products.Load(cmd.Context()); err != nil {
					return err
				}

				existing, ok := findProduct(app.Products.Items(), form.ID)
				if !ok {
					return errors.NotFoundError("Product not found")
				}

				base := models.FormFromProduct(&existing)
				for name, apply := range map[string]func(){
					"name":        func() { base.Name = form.Name },
					"category":    func() { base.Category = form.Category },
					"description": func() { base.Description = form.Description },
					"price":       func() { base.Price = form.Price },
					"quantity":    func() { base.Quantity = form.Quantity },
				} {
					if flags.Changed(name) {
						apply()
					}
				}
				form = base
			}

			if flags.Changed("original-price") {
				form.OriginalPrice = &originalPrice
				if originalPrice == 0 {
					form.OriginalPrice = nil
				}
			}

			if imagePath != "" {
				file, err := os.Open(imagePath)
				if err != nil {
					return errors.BadRequestError("cannot open image").WithError(err)
				}
				defer file.Close()

				form.Image = &models.Upload{Filename: filepath.Base(imagePath), Content: file}
			}

			product, err := app.Products.Save(cmd.Context(), &form)
			if err != nil {
				return err
			}

			return renderProducts(app, []models.Product{*product})
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&form.ID, "id", 0, "product to update")
	flags.StringVar(&form.Name, "name", "", "product name")
	flags.StringVar(&form.Category, "category", "", "category")
	flags.StringVar(&form.Description, "description", "", "description")
	flags.Float64Var(&form.Price, "price", 0, "selling price")
	flags.Float64Var(&originalPrice, "original-price", 0, "price before discount; 0 clears it")
	flags.IntVar(&form.Quantity, "quantity", 0, "units in stock")
	flags.StringVar(&imagePath, "image", "", "jpg, png, gif or webp file up to 5 MiB; required when creating")

	return cmd
}

func findProduct(products []models.Product, id int64) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}

	return models.Product{}, false
}

func newAdminProductDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.Products.Delete(cmd.Context(), id); err != nil {
				return err
			}

			return done(app, "Product deleted", map[string]any{"id": id})
		},
	}
}

func renderProducts(app *App, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}

	return render(app, products, func(w io.Writer) {
		row(w, "ID", "NAME", "CATEGORY", "PRICE", "STOCK", "RATING")
		for _, p := range products {
			row(w, p.ID, p.Name, p.Category, money(p.Price), p.Quantity, p.AverageRating)
		}
	})
}

func newAdminUsersListCommand(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with order totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.Users.Load(cmd.Context()); err != nil {
				return err
			}

			users := app.Users.Search(search)

			return render(app, users, func(w io.Writer) {
				row(w, "ID", "USERNAME", "EMAIL", "ROLE", "ORDERS", "SPENT")
				for _, u := range users {
					row(w, u.ID, u.Username, u.Email, u.Role, u.Orders, money(u.TotalSpent))
				}
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by username")

	return cmd
}

func newAdminUserUpdateCommand(app *App) *cobra.Command {
	var req models.UpdateUserRequest

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Edit a user; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			users, err := app.Users.Load(cmd.Context())
			if err != nil {
				return err
			}

			var current *models.UserStats
			for i := range users {
				if users[i].ID == id {
					current = &users[i]
				}
			}
			if current == nil {
				return errors.NotFoundError("User not found")
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
			if !flags.Changed("role") {
				req.Role = current.Role
			}

			user, err := app.Users.Update(cmd.Context(), id, &req)
			if err != nil {
				return err
			}

			return renderUser(app, user)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Role, "role", "", "admin or user")

	return cmd
}

func newAdminUserCreateCommand(app *App) *cobra.Command {
	var req models.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := app.Users.Create(cmd.Context(), &req)
			if err != nil {
				return err
			}

			return renderUser(app, user)
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "display name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")

	return cmd
}

func newAdminUserDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.Users.Delete(cmd.Context(), id); err != nil {
				return err
			}

			return done(app, "User deleted", map[string]any{"id": id})
		},
	}
}

func newAdminTempPasswordCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "temp-password <email>",
		Short: "Issue a temporary password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Users.ResetPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(app, resp, func(w io.Writer) {
				row(w, "EMAIL", "TEMPORARY PASSWORD")
				row(w, resp.Email, resp.TempPassword)
			})
		},
	}
}

func newAdminOrdersListCommand(app *App) *cobra.Command {
	var (
		status, product, search string
		minTotal, maxTotal      float64
		query                   models.OrderQuery
		oldestFirst             bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()

			if status != "" {
				parsed, err := models.ParseOrderStatus(status)
				if err != nil {
					return errors.BadRequestError(err.Error())
				}
				query.Status = parsed
			}
			query.ProductName = product
			if flags.Changed("min-total") {
				query.MinTotalPrice = &minTotal
			}
			if flags.Changed("max-total") {
				query.MaxTotalPrice = &maxTotal
			}

			if _, err := app.Orders.Load(cmd.Context(), &query); err != nil {
				return err
			}

			orders := app.Orders.Sorted(!oldestFirst)
			if search != "" {
				matched := app.Orders.Search(search)
				keep := make(map[int64]bool, len(matched))
				for _, o := range matched {
					keep[o.ID] = true
				}

				filtered := orders[:0]
				for _, o := range orders {
					if keep[o.ID] {
						filtered = append(filtered, o)
					}
				}
				orders = filtered
			}

			return renderOrders(app, orders)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&status, "status", "", "processing, shipped, delivered or cancelled")
	flags.StringVar(&product, "product", "", "orders containing this product name")
	flags.Float64Var(&minTotal, "min-total", 0, "lowest total price")
	flags.Float64Var(&maxTotal, "max-total", 0, "highest total price")
	flags.StringVar(&query.SortBy, "sort", "", "server sort: total_price, status, created_at or user_id")
	flags.StringVar(&query.SortOrder, "order", "", "server sort order: asc or desc")
	flags.StringVarP(&search, "search", "s", "", "order ID contains")
	flags.BoolVar(&oldestFirst, "oldest-first", false, "list oldest orders first")

	return cmd
}

func newAdminOrderStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Change an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			status, err := models.ParseOrderStatus(args[1])
			if err != nil {
				return errors.BadRequestError(err.Error())
			}

			order, err := app.Orders.UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}

			return renderOrders(app, []models.Order{*order})
		},
	}
}

func newAdminStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Sales and counts for the last 30 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := app.Stats.Compute(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			return render(app, stats, func(w io.Writer) {
				row(w, "SALES (30D)", "DELIVERED", "PRODUCTS", "USERS")
				row(w, stats.Sales.StringFixed(2), stats.DeliveredOrders, stats.Products, stats.Users)
			})
		},
	}
}
