package health

import (
	"fmt"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthHttp "github.com/hellofresh/health-go/v5/checks/http"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// probePath is a public endpoint that needs no token.
const probePath = "/products/categories"

// NewHealthChecker checks the backend API and whichever session store the
// configuration selects.
func NewHealthChecker(cfg *config.Config, version string) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:      "api",
			Timeout:   cfg.API.Timeout,
			SkipOnErr: false,
			Check: healthHttp.New(healthHttp.Config{
				URL:            strings.TrimRight(cfg.API.BaseURL, "/") + probePath,
				RequestTimeout: cfg.API.Timeout,
			}),
		},
	}

	switch cfg.Session.Store {
	case "redis":
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	case "postgres":
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: true,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront-client",
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
