package models

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// localized labels stored by older backend versions
var legacyStatusLabels = map[string]OrderStatus{
	"обрабатывается": OrderStatusProcessing,
	"в ожидании":     OrderStatusProcessing,
	"отправлен":      OrderStatusShipped,
	"доставлен":      OrderStatusDelivered,
	"отменен":        OrderStatusCancelled,
}

// NormalizeOrderStatus maps any backend status string onto the enum.
// Unknown values are treated as processing.
func NormalizeOrderStatus(raw string) OrderStatus {
	value := strings.ToLower(strings.TrimSpace(raw))

	for _, status := range OrderStatuses {
		if string(status) == value {
			return status
		}
	}

	if status, ok := legacyStatusLabels[value]; ok {
		return status
	}

	return OrderStatusProcessing
}

// ParseOrderStatus is the strict variant used for user input.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	value := strings.ToLower(strings.TrimSpace(raw))

	for _, status := range OrderStatuses {
		if string(status) == value {
			return status, nil
		}
	}

	if status, ok := legacyStatusLabels[value]; ok {
		return status, nil
	}

	return "", fmt.Errorf("unknown order status %q", raw)
}

// UnmarshalText normalizes statuses as they are decoded.
func (s *OrderStatus) UnmarshalText(text []byte) error {
	*s = NormalizeOrderStatus(string(text))

	return nil
}

type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	OrderID     int64   `json:"order_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type Order struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id,omitempty"`
	Status     OrderStatus `json:"status"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Address    string      `json:"address,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type CreateOrderRequest struct {
	Address string `json:"address" validate:"required,min=5"`
	Phone   string `json:"phone" validate:"required,min=5,max=32"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
}
