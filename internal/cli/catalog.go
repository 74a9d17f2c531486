package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/spf13/cobra"
)

func newCatalogCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse products",
	}

	cmd.AddCommand(newCatalogListCommand(app), newCategoriesCommand(app), newProductShowCommand(app))

	return cmd
}

func newCatalogListCommand(app *App) *cobra.Command {
	var q models.CatalogQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.Catalog.Apply(cmd.Context(), q)
			if err != nil {
				return err
			}

			return render(app, result, func(w io.Writer) {
				row(w, "ID", "NAME", "CATEGORY", "PRICE", "DISCOUNT", "RATING", "STOCK")
				for _, p := range result.Products {
					discount := "-"
					if p.Discount != nil {
						discount = fmt.Sprintf("%d%%", *p.Discount)
					}
					row(w, p.ID, p.Name, p.Category, money(p.Price), discount, fmt.Sprintf("%.1f (%d)", p.AverageRating, p.ReviewsCount), p.Quantity)
				}
				fmt.Fprintf(w, "\npage %d, %d of %d products", result.Page, len(result.Products), result.Total)
				if result.HasNext {
					fmt.Fprint(w, ", more with --page ", result.Page+1)
				}
				fmt.Fprintln(w)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&q.Search, "search", "s", "", "search term")
	flags.StringSliceVarP(&q.Categories, "category", "c", nil, "category filter, repeatable")
	flags.Float64Var(&q.Price.Min, "min-price", 0, "lowest price")
	flags.Float64Var(&q.Price.Max, "max-price", 0, "highest price")
	flags.IntVar(&q.MinRating, "min-rating", 0, "minimum average rating (1-5)")
	flags.BoolVar(&q.InStock, "in-stock", false, "only products in stock")
	flags.StringVar(&q.SortBy, "sort", "", "sort key: "+strings.Join(models.CatalogSortKeys, ", "))
	flags.StringVar(&q.SortOrder, "order", models.SortDesc, "sort order: asc or desc")
	flags.IntVar(&q.Page, "page", 1, "page number")
	flags.IntVar(&q.PageSize, "page-size", 0, "rows per page (defaults to the configured size)")

	return cmd
}

func newCategoriesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := app.Catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}

			return render(app, categories, func(w io.Writer) {
				for _, c := range categories {
					row(w, c)
				}
			})
		},
	}
}

func newProductShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			product, err := app.Catalog.Product(cmd.Context(), id)
			if err != nil {
				return err
			}

			return render(app, product, func(w io.Writer) {
				row(w, "ID", product.ID)
				row(w, "Name", product.Name)
				row(w, "Category", product.Category)
				row(w, "Price", money(product.Price))
				if product.OriginalPrice != nil {
					row(w, "Original price", money(*product.OriginalPrice))
				}
				row(w, "Rating", fmt.Sprintf("%.1f from %d reviews", product.AverageRating, product.ReviewsCount))
				row(w, "In stock", product.Quantity)
				row(w, "Image", product.ImageURL)
				row(w, "Description", product.Description)
			})
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequestError(fmt.Sprintf("invalid id %q", raw))
	}

	return id, nil
}

func parseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequestError(fmt.Sprintf("invalid quantity %q", raw))
	}

	return quantity, nil
}
