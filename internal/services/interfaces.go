package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
)

// The interfaces below are the slices of *api.Client each state manager
// depends on.

type CartAPI interface {
	GetCart(ctx context.Context) ([]models.CartLine, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (*models.CartLine, error)
	UpdateCartLine(ctx context.Context, lineID int64, quantity int) (*models.CartLine, error)
	DeleteCartLine(ctx context.Context, lineID int64) error
	ClearCart(ctx context.Context) error
}

type CatalogAPI interface {
	ListProducts(ctx context.Context, query *models.CatalogQuery) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type ProductAdminAPI interface {
	ListProducts(ctx context.Context, query *models.CatalogQuery) ([]models.Product, error)
	SaveProduct(ctx context.Context, form *models.ProductForm) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type UserAdminAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UserStats(ctx context.Context) ([]models.UserStats, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	TempPassword(ctx context.Context, email string) (*models.TempPasswordResponse, error)
}

type OrderAPI interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error)
	MyOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
}

type ProfileAPI interface {
	Me(ctx context.Context) (*models.User, error)
	UpdateMe(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error)
	DeleteMe(ctx context.Context) error
	ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error
	MyOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error)
	ReviewProduct(ctx context.Context, id int64, req *models.ReviewRequest) error
}

// SessionGuard gates operations on the authentication state.
type SessionGuard interface {
	RequireAuth() error
	RequireAdmin() error
	Logout(ctx context.Context) error
}
