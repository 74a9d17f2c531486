package models

import (
	"io"
	"math"
)

type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Discount      *int     `json:"discount,omitempty"`
	AverageRating float64  `json:"rating"`
	ReviewsCount  int      `json:"reviews"`
	ImageURL      string   `json:"image_url"`
	Category      string   `json:"category"`
	Quantity      int      `json:"quantity"`
}

// InStock reports whether the product can be added to a cart.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// ProductForm is the admin edit form. The full record is re-submitted on
// every save.
type ProductForm struct {
	ID            int64    `validate:"gte=0"`
	Name          string   `validate:"required,min=2,max=200"`
	Description   string   `validate:"max=5000"`
	Category      string   `validate:"required"`
	Price         float64  `validate:"gt=0"`
	OriginalPrice *float64 `validate:"omitempty,gt=0"`
	Discount      *int     `validate:"omitempty,gte=0,lte=100"`
	Quantity      int      `validate:"gte=0"`
	Image         *Upload
}

// Upload is an image attached to a product form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// RecomputeDiscount keeps Discount consistent with Price and OriginalPrice.
func (f *ProductForm) RecomputeDiscount() {
	f.Discount = ComputeDiscount(f.Price, f.OriginalPrice)
}

// ComputeDiscount returns the rounded percentage off the original price, or
// nil when there is no markdown.
func ComputeDiscount(price float64, originalPrice *float64) *int {
	if originalPrice == nil || price <= 0 || *originalPrice <= price {
		return nil
	}

	discount := int(math.Round((*originalPrice - price) / *originalPrice * 100))

	return &discount
}

// FormFromProduct pre-fills the edit form with an existing record.
func FormFromProduct(p *Product) ProductForm {
	return ProductForm{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Quantity:      p.Quantity,
	}
}

type AddToCartRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review,omitempty" validate:"max=2000"`
}
