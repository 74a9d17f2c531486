// Package mocks holds testify mocks for the interfaces the services consume.
package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/stretchr/testify/mock"
)

// API mocks every backend call; it satisfies all of the service API
// interfaces, like *api.Client does.
type API struct {
	mock.Mock
}

func (m *API) GetCart(ctx context.Context) ([]models.CartLine, error) {
	args := m.Called(ctx)
	lines, _ := args.Get(0).([]models.CartLine)
	return lines, args.Error(1)
}

func (m *API) AddToCart(ctx context.Context, productID int64, quantity int) (*models.CartLine, error) {
	args := m.Called(ctx, productID, quantity)
	line, _ := args.Get(0).(*models.CartLine)
	return line, args.Error(1)
}

func (m *API) UpdateCartLine(ctx context.Context, lineID int64, quantity int) (*models.CartLine, error) {
	args := m.Called(ctx, lineID, quantity)
	line, _ := args.Get(0).(*models.CartLine)
	return line, args.Error(1)
}

func (m *API) DeleteCartLine(ctx context.Context, lineID int64) error {
	return m.Called(ctx, lineID).Error(0)
}

func (m *API) ClearCart(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *API) ListProducts(ctx context.Context, query *models.CatalogQuery) ([]models.Product, error) {
	args := m.Called(ctx, query)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *API) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *API) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]string)
	return categories, args.Error(1)
}

func (m *API) SaveProduct(ctx context.Context, form *models.ProductForm) (*models.Product, error) {
	args := m.Called(ctx, form)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *API) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *API) ReviewProduct(ctx context.Context, id int64, req *models.ReviewRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *API) Me(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *API) UpdateMe(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *API) DeleteMe(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *API) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *API) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *API) UserStats(ctx context.Context) ([]models.UserStats, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.UserStats)
	return users, args.Error(1)
}

func (m *API) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *API) UpdateUser(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *API) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *API) TempPassword(ctx context.Context, email string) (*models.TempPasswordResponse, error) {
	args := m.Called(ctx, email)
	resp, _ := args.Get(0).(*models.TempPasswordResponse)
	return resp, args.Error(1)
}

func (m *API) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *API) ListOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *API) MyOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *API) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

// Guard is a SessionGuard with fixed answers.
type Guard struct {
	mock.Mock
}

func (m *Guard) RequireAuth() error {
	return m.Called().Error(0)
}

func (m *Guard) RequireAdmin() error {
	return m.Called().Error(0)
}

func (m *Guard) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// AllowAll returns a guard that lets every call through.
func AllowAll() *Guard {
	g := new(Guard)
	g.On("RequireAuth").Return(nil).Maybe()
	g.On("RequireAdmin").Return(nil).Maybe()
	g.On("Logout", mock.Anything).Return(nil).Maybe()

	return g
}
