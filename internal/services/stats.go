package service

import (
	"context"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/shopspring/decimal"
)

const salesWindow = 30 * 24 * time.Hour

type StatsAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListProducts(ctx context.Context, query *models.CatalogQuery) ([]models.Product, error)
	ListOrders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error)
}

// StatsService computes the admin dashboard counters.
type StatsService struct {
	api   StatsAPI
	guard SessionGuard
}

func NewStatsService(statsAPI StatsAPI, guard SessionGuard) *StatsService {
	return &StatsService{api: statsAPI, guard: guard}
}

// Compute counts users and products, and sums the delivered orders created
// within 30 days before now.
func (s *StatsService) Compute(ctx context.Context, now time.Time) (*models.AdminStats, error) {
	if err := s.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.api.ListProducts(ctx, nil)
	if err != nil {
		return nil, err
	}

	// The backend matches search_by_status against the stored label, which
	// may be a localized one, so filtering happens after normalization.
	orders, err := s.api.ListOrders(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &models.AdminStats{
		Sales:    decimal.Zero,
		Users:    len(users),
		Products: len(products),
	}

	since := now.Add(-salesWindow)
	for _, order := range orders {
		if order.Status != models.OrderStatusDelivered || order.CreatedAt.Before(since) {
			continue
		}

		stats.DeliveredOrders++
		stats.Sales = stats.Sales.Add(decimal.NewFromFloat(order.TotalPrice))
	}

	return stats, nil
}
