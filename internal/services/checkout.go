package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/go-playground/validator/v10"
)

// CheckoutService turns the current cart into an order.
type CheckoutService struct {
	orders   OrderAPI
	cart     *CartService
	guard    SessionGuard
	validate *validator.Validate
}

func NewCheckoutService(orderAPI OrderAPI, cart *CartService, guard SessionGuard) *CheckoutService {
	return &CheckoutService{orders: orderAPI, cart: cart, guard: guard, validate: validator.New()}
}

// PlaceOrder creates the order, then empties and reloads the cart. A failure
// after the order exists is logged, not returned.
func (s *CheckoutService) PlaceOrder(ctx context.Context, address, phone string) (*models.Order, error) {
	logger := api.LoggerFromContext(ctx)

	if err := s.guard.RequireAuth(); err != nil {
		return nil, err
	}

	req := &models.CreateOrderRequest{Address: strings.TrimSpace(address), Phone: strings.TrimSpace(phone)}
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	if s.cart.IsEmpty() {
		if _, err := s.cart.Load(ctx); err != nil {
			return nil, err
		}
	}

	if s.cart.IsEmpty() {
		return nil, errors.BadRequestError("Cart is empty")
	}

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Order placed",
		slog.Int64("order_id", order.ID),
		slog.Float64("total_price", order.TotalPrice),
	)

	if err := s.cart.Clear(ctx); err != nil && !errors.IsStatus(err, http.StatusNotFound) {
		logger.Warn("Failed to clear cart after checkout", slog.String("error", err.Error()))
	}

	if _, err := s.cart.Load(ctx); err != nil {
		logger.Warn("Failed to reload cart after checkout", slog.String("error", err.Error()))
	}

	return order, nil
}
