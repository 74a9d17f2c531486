package models

import "github.com/shopspring/decimal"

// AdminStats is the dashboard summary over a trailing window.
type AdminStats struct {
	Sales           decimal.Decimal `json:"sales"`
	DeliveredOrders int             `json:"delivered_orders"`
	Products        int             `json:"products"`
	Users           int             `json:"users"`
}
