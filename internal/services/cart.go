package service

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CartService mirrors the server cart and applies mutation responses
// locally instead of re-fetching.
type CartService struct {
	api      CartAPI
	validate *validator.Validate

	mu    sync.RWMutex
	lines []models.CartLine
}

func NewCartService(cartAPI CartAPI) *CartService {
	return &CartService{api: cartAPI, validate: validator.New()}
}

// Load replaces the local lines with the server cart. On failure the local
// cart is left empty.
func (s *CartService) Load(ctx context.Context) ([]models.CartLine, error) {
	lines, err := s.api.GetCart(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lines = nil
		return nil, err
	}

	s.lines = lines

	return slices.Clone(s.lines), nil
}

// Add posts the product to the cart. The backend answers with the resulting
// line, so adding a product already present updates its line.
func (s *CartService) Add(ctx context.Context, productID int64, quantity int) (*models.CartLine, error) {
	req := &models.AddToCartRequest{ProductID: productID, Quantity: quantity}
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	line, err := s.api.AddToCart(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.merge(*line)

	api.LoggerFromContext(ctx).Info("Added to cart",
		slog.Int64("product_id", productID),
		slog.Int64("line_id", merged.ID),
		slog.Int("quantity", merged.Qty()),
	)

	return &merged, nil
}

// Update sets the quantity of a line; a quantity of zero or less removes it.
func (s *CartService) Update(ctx context.Context, lineID int64, quantity int) (*models.CartLine, error) {
	if quantity <= 0 {
		return nil, s.Remove(ctx, lineID)
	}

	line, err := s.api.UpdateCartLine(ctx, lineID, quantity)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.merge(*line)

	return &merged, nil
}

func (s *CartService) Remove(ctx context.Context, lineID int64) error {
	if err := s.api.DeleteCartLine(ctx, lineID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = slices.DeleteFunc(s.lines, func(l models.CartLine) bool { return l.ID == lineID })

	return nil
}

// Clear empties the cart. The backend reports an already empty cart as 404,
// which is not an error here.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.api.ClearCart(ctx); err != nil && !errors.IsStatus(err, http.StatusNotFound) {
		return err
	}

	s.Reset()

	return nil
}

// Reset drops the local lines without contacting the backend.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
}

func (s *CartService) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.lines)
}

// Count is the number of units in the cart.
func (s *CartService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.lines {
		count += line.Qty()
	}

	return count
}

func (s *CartService) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}

	return total
}

func (s *CartService) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.lines) == 0
}

// merge applies a line returned by the backend. Fields the response omits
// keep their local values. Caller holds the lock.
func (s *CartService) merge(line models.CartLine) models.CartLine {
	i := slices.IndexFunc(s.lines, func(l models.CartLine) bool { return l.ID == line.ID })
	if i < 0 {
		s.lines = append(s.lines, line)
		return line
	}

	current := s.lines[i]
	if line.Quantity != nil {
		current.Quantity = line.Quantity
	}
	if line.Price != 0 {
		current.Price = line.Price
	}
	if line.Name != "" {
		current.Name = line.Name
	}
	if line.ImageURL != "" {
		current.ImageURL = line.ImageURL
	}
	if line.ProductID != 0 {
		current.ProductID = line.ProductID
	}

	s.lines[i] = current

	return current
}
