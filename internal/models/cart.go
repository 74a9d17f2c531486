package models

import "github.com/shopspring/decimal"

type CartLine struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  *int    `json:"quantity,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// Qty is the line quantity; a line without one counts as a single unit.
func (l CartLine) Qty() int {
	if l.Quantity == nil {
		return 1
	}

	return *l.Quantity
}

// Subtotal is price × quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Qty())))
}

func IntPtr(v int) *int {
	return &v
}
