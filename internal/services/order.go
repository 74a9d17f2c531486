package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/go-playground/validator/v10"
)

// OrdersPanel is the admin order table.
type OrdersPanel struct {
	api      OrderAPI
	guard    SessionGuard
	validate *validator.Validate
	list     *ListState[models.Order]
}

func NewOrdersPanel(orderAPI OrderAPI, guard SessionGuard) *OrdersPanel {
	return &OrdersPanel{
		api:      orderAPI,
		guard:    guard,
		validate: validator.New(),
		list:     NewListState(func(o models.Order) int64 { return o.ID }),
	}
}

// Load fetches the orders matching the server-side filters; query may be nil.
func (p *OrdersPanel) Load(ctx context.Context, query *models.OrderQuery) ([]models.Order, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	if query != nil {
		if err := utils.ValidateStruct(p.validate, query); err != nil {
			return nil, err
		}
	}

	orders, err := p.api.ListOrders(ctx, query)
	if err != nil {
		return nil, err
	}

	p.list.Replace(orders)

	return orders, nil
}

// Sorted orders by creation time, newest first when desc is set.
func (p *OrdersPanel) Sorted(desc bool) []models.Order {
	return p.list.Sorted(func(a, b models.Order) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if desc {
			return -c
		}
		return c
	})
}

// Search matches orders whose ID contains term.
func (p *OrdersPanel) Search(term string) []models.Order {
	term = strings.TrimSpace(term)

	return p.list.Filter(func(o models.Order) bool {
		return strings.Contains(strconv.FormatInt(o.ID, 10), term)
	})
}

// UpdateStatus changes the status and merges only the status into the local
// row; the items already loaded stay as they are.
func (p *OrdersPanel) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(p.validate, &models.UpdateOrderStatusRequest{Status: status}); err != nil {
		return nil, err
	}

	order, err := p.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if !p.list.Merge(id, func(row models.Order) models.Order {
		row.Status = order.Status
		return row
	}) {
		p.list.Upsert(*order)
	}

	api.LoggerFromContext(ctx).Info("Order status changed", slog.Int64("order_id", id), slog.String("status", string(order.Status)))

	updated, _ := p.list.Get(id)

	return &updated, nil
}
