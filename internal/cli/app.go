package cli

import (
	"io"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/cache"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	service "github.com/aaravmahajanofficial/storefront-client/internal/services"
	"github.com/aaravmahajanofficial/storefront-client/internal/session"
	"github.com/hellofresh/health-go/v5"
)

// App is the dependency graph the commands run against.
type App struct {
	Session  *session.Manager
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Profile  *service.ProfileService
	Products *service.ProductsPanel
	Users    *service.UsersPanel
	Orders   *service.OrdersPanel
	Stats    *service.StatsService
	Health   *health.Health

	In  io.Reader
	Out io.Writer
	Err io.Writer

	JSON bool
}

// NewApp builds the state managers on top of one API client. A 401 from
// any endpoint ends the session and empties the cart.
func NewApp(cfg *config.Config, client *api.Client, manager *session.Manager, c cache.Cache) *App {
	cart := service.NewCartService(client)

	client.SetUnauthorizedHandler(manager.Invalidate)
	manager.OnChange(func(s models.Session) {
		if !s.IsAuthenticated {
			cart.Reset()
		}
	})

	return &App{
		Session:  manager,
		Catalog:  service.NewCatalogService(client, c, &cfg.Catalog, &cfg.Cache),
		Cart:     cart,
		Checkout: service.NewCheckoutService(client, cart, manager),
		Profile:  service.NewProfileService(client, manager),
		Products: service.NewProductsPanel(client, manager),
		Users:    service.NewUsersPanel(client, manager),
		Orders:   service.NewOrdersPanel(client, manager),
		Stats:    service.NewStatsService(client, manager),
	}
}
