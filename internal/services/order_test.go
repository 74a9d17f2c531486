package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	service "github.com/aaravmahajanofficial/storefront-client/internal/services"
	"github.com/aaravmahajanofficial/storefront-client/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrdersPanel(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*service.OrdersPanel, *mocks.API) {
		t.Helper()

		mockAPI := new(mocks.API)
		panel := service.NewOrdersPanel(mockAPI, mocks.AllowAll())

		mockAPI.On("ListOrders", ctx, mock.Anything).Return([]models.Order{
			{ID: 101, Status: models.OrderStatusProcessing, CreatedAt: base, Items: []models.OrderItem{{ProductID: 1, Quantity: 2}}},
			{ID: 215, Status: models.OrderStatusShipped, CreatedAt: base.Add(48 * time.Hour)},
			{ID: 310, Status: models.OrderStatusDelivered, CreatedAt: base.Add(24 * time.Hour)},
		}, nil).Once()
		_, err := panel.Load(ctx, nil)
		require.NoError(t, err)

		return panel, mockAPI
	}

	t.Run("Success - Sorted newest first", func(t *testing.T) {
		panel, _ := setup(t)

		sorted := panel.Sorted(true)

		assert.Equal(t, []int64{215, 310, 101}, []int64{sorted[0].ID, sorted[1].ID, sorted[2].ID})
		assert.Equal(t, int64(101), panel.Sorted(false)[0].ID)
	})

	t.Run("Success - Search by ID substring", func(t *testing.T) {
		panel, _ := setup(t)

		found := panel.Search("1")

		assert.Len(t, found, 3)
		assert.Len(t, panel.Search("21"), 1)
	})

	t.Run("Success - Status update keeps items", func(t *testing.T) {
		// Arrange
		panel, mockAPI := setup(t)
		mockAPI.On("UpdateOrderStatus", ctx, int64(101), models.OrderStatusShipped).
			Return(&models.Order{ID: 101, Status: models.OrderStatusShipped}, nil).Once()

		// Act
		order, err := panel.UpdateStatus(ctx, 101, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, order.Status)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, base, order.CreatedAt)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure - Unknown status", func(t *testing.T) {
		panel, mockAPI := setup(t)

		_, err := panel.UpdateStatus(ctx, 101, models.OrderStatus("lost"))

		assert.Error(t, err)
		mockAPI.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Invalid sort key", func(t *testing.T) {
		mockAPI := new(mocks.API)
		panel := service.NewOrdersPanel(mockAPI, mocks.AllowAll())

		_, err := panel.Load(ctx, &models.OrderQuery{SortBy: "color"})

		assert.Error(t, err)
		mockAPI.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything)
	})
}
