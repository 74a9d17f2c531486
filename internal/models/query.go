package models

import (
	"math"
	"net/url"
	"slices"
	"strconv"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

var CatalogSortKeys = []string{"price", "name", "quantity", "rating"}

// PriceRange is the catalog price slider, 0 <= Min <= Max <= limit.
type PriceRange struct {
	Min float64
	Max float64
}

func (r PriceRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Clamp bounds the range to [0, maxPrice], snaps both ends to step and
// swaps them if they cross. A zero Max is open ended and becomes maxPrice.
func (r PriceRange) Clamp(maxPrice, step float64) PriceRange {
	if r.Max == 0 {
		r.Max = maxPrice
	}

	snap := func(v float64) float64 {
		if step > 0 {
			v = math.Round(v/step) * step
		}

		return math.Min(math.Max(v, 0), maxPrice)
	}

	low, high := snap(r.Min), snap(r.Max)
	if low > high {
		low, high = high, low
	}

	return PriceRange{Min: low, Max: high}
}

// CatalogQuery is the product list filter.
type CatalogQuery struct {
	Search     string
	Categories []string
	Price      PriceRange
	MinRating  int
	InStock    bool
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// HasCategory reports whether the category is part of the filter set.
func (q *CatalogQuery) HasCategory(category string) bool {
	return slices.Contains(q.Categories, category)
}

// ToggleCategory adds or removes category, keeping the set sorted.
func (q *CatalogQuery) ToggleCategory(category string) {
	if i := slices.Index(q.Categories, category); i >= 0 {
		q.Categories = slices.Delete(slices.Clone(q.Categories), i, i+1)
		return
	}

	q.Categories = append(slices.Clone(q.Categories), category)
	slices.Sort(q.Categories)
}

// Values encodes the query the way GET /products expects it.
func (q *CatalogQuery) Values() url.Values {
	values := url.Values{}

	if q.Search != "" {
		values.Set("search", q.Search)
	}

	for _, category := range q.Categories {
		values.Add("categories", category)
	}

	if q.Price.Min > 0 {
		values.Set("min_price", formatFloat(q.Price.Min))
	}

	if q.Price.Max > 0 {
		values.Set("max_price", formatFloat(q.Price.Max))
	}

	if q.MinRating > 0 {
		values.Set("min_rating", strconv.Itoa(q.MinRating))
	}

	if q.InStock {
		values.Set("in_stock", "true")
	}

	if q.SortBy != "" {
		values.Set("sort_by", q.SortBy)
	}

	order := q.SortOrder
	if order == "" {
		order = SortDesc
	}
	values.Set("sort_order", order)

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}

	return values
}

// OrderQuery holds the server-side filters of GET /orders.
type OrderQuery struct {
	Status        OrderStatus
	ProductName   string
	MinTotalPrice *float64
	MaxTotalPrice *float64
	SortBy        string `validate:"omitempty,oneof=total_price status created_at user_id"`
	SortOrder     string `validate:"omitempty,oneof=asc desc"`
}

func (q *OrderQuery) Values() url.Values {
	values := url.Values{}

	if q == nil {
		return values
	}

	if q.Status != "" {
		values.Set("search_by_status", string(q.Status))
	}

	if q.ProductName != "" {
		values.Set("search_by_product_name", q.ProductName)
	}

	if q.MinTotalPrice != nil {
		values.Set("min_total_price", formatFloat(*q.MinTotalPrice))
	}

	if q.MaxTotalPrice != nil {
		values.Set("max_total_price", formatFloat(*q.MaxTotalPrice))
	}

	if q.SortBy != "" {
		values.Set("sort_by", q.SortBy)
	}

	if q.SortOrder != "" {
		values.Set("sort_order", q.SortOrder)
	}

	return values
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
