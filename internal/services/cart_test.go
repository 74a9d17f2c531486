package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	service "github.com/aaravmahajanofficial/storefront-client/internal/services"
	"github.com/aaravmahajanofficial/storefront-client/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func loadedCart(t *testing.T, lines ...models.CartLine) (*service.CartService, *mocks.API) {
	t.Helper()

	mockAPI := new(mocks.API)
	cartService := service.NewCartService(mockAPI)

	mockAPI.On("GetCart", mock.Anything).Return(lines, nil).Once()
	_, err := cartService.Load(context.Background())
	require.NoError(t, err)

	return cartService, mockAPI
}

func TestCartLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Replaces lines", func(t *testing.T) {
		// Arrange
		cartService, _ := loadedCart(t,
			models.CartLine{ID: 1, Name: "Lamp", Price: 40, Quantity: models.IntPtr(2)},
			models.CartLine{ID: 2, Name: "Rug", Price: 15.5},
		)

		// Assert
		assert.Len(t, cartService.Lines(), 2)
		assert.Equal(t, 3, cartService.Count())
		assert.Equal(t, "95.5", cartService.Total().String())
	})

	t.Run("Failure - Error leaves empty cart", func(t *testing.T) {
		// Arrange
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 1, Price: 10})
		mockAPI.On("GetCart", mock.Anything).Return(nil, appErrors.TransportError("GET /cart failed")).Once()

		// Act
		lines, err := cartService.Load(ctx)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, lines)
		assert.True(t, cartService.IsEmpty())
		assert.Equal(t, 0, cartService.Count())
		mockAPI.AssertExpectations(t)
	})
}

func TestCartAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Existing product updates its line", func(t *testing.T) {
		// Arrange
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 7, ProductID: 3, Name: "Lamp", Price: 40, Quantity: models.IntPtr(1), ImageURL: "/static/images/lamp.png"})
		mockAPI.On("AddToCart", ctx, int64(3), 2).Return(&models.CartLine{ID: 7, ProductID: 3, Name: "Lamp", Price: 40, Quantity: models.IntPtr(3)}, nil).Once()

		// Act
		line, err := cartService.Add(ctx, 3, 2)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, line.Qty())

		lines := cartService.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Qty())
		assert.Equal(t, "/static/images/lamp.png", lines[0].ImageURL)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Success - New product appended", func(t *testing.T) {
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 7, ProductID: 3, Price: 40})
		mockAPI.On("AddToCart", ctx, int64(4), 1).Return(&models.CartLine{ID: 8, ProductID: 4, Name: "Rug", Price: 10, Quantity: models.IntPtr(1)}, nil).Once()

		_, err := cartService.Add(ctx, 4, 1)

		require.NoError(t, err)
		assert.Len(t, cartService.Lines(), 2)
		assert.Equal(t, "50", cartService.Total().String())
	})

	t.Run("Failure - Zero quantity rejected locally", func(t *testing.T) {
		cartService, mockAPI := loadedCart(t)

		_, err := cartService.Add(ctx, 4, 0)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockAPI.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Backend error keeps lines", func(t *testing.T) {
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 7, Price: 40})
		mockAPI.On("AddToCart", ctx, int64(9), 1).Return(nil, appErrors.NotFoundError("Товар не найден")).Once()

		_, err := cartService.Add(ctx, 9, 1)

		assert.Error(t, err)
		assert.Len(t, cartService.Lines(), 1)
	})
}

func TestCartUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Quantity merged and image kept", func(t *testing.T) {
		// Arrange
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 5, Name: "Lamp", Price: 40, Quantity: models.IntPtr(1), ImageURL: "lamp.png"})
		mockAPI.On("UpdateCartLine", ctx, int64(5), 4).Return(&models.CartLine{ID: 5, Name: "Lamp", Price: 40, Quantity: models.IntPtr(4)}, nil).Once()

		// Act
		line, err := cartService.Update(ctx, 5, 4)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, line.Qty())
		assert.Equal(t, "lamp.png", line.ImageURL)
		assert.Equal(t, 4, cartService.Count())
	})

	t.Run("Success - Zero quantity removes the line", func(t *testing.T) {
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 5, Price: 40}, models.CartLine{ID: 6, Price: 1})
		mockAPI.On("DeleteCartLine", ctx, int64(5)).Return(nil).Once()

		line, err := cartService.Update(ctx, 5, 0)

		require.NoError(t, err)
		assert.Nil(t, line)
		require.Len(t, cartService.Lines(), 1)
		assert.Equal(t, int64(6), cartService.Lines()[0].ID)
		mockAPI.AssertNotCalled(t, "UpdateCartLine", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Clears lines", func(t *testing.T) {
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 1, Price: 3})
		mockAPI.On("ClearCart", ctx).Return(nil).Once()

		require.NoError(t, cartService.Clear(ctx))
		assert.True(t, cartService.IsEmpty())
	})

	t.Run("Success - Already empty on the server", func(t *testing.T) {
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 1, Price: 3})
		mockAPI.On("ClearCart", ctx).Return(appErrors.NotFoundError("Корзина пуста")).Once()

		require.NoError(t, cartService.Clear(ctx))
		assert.True(t, cartService.IsEmpty())
	})

	t.Run("Failure - Server error keeps lines", func(t *testing.T) {
		cartService, mockAPI := loadedCart(t, models.CartLine{ID: 1, Price: 3})
		mockAPI.On("ClearCart", ctx).Return(appErrors.ThirdPartyError("boom")).Once()

		assert.Error(t, cartService.Clear(ctx))
		assert.False(t, cartService.IsEmpty())
	})
}
