package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/cache"
	"github.com/aaravmahajanofficial/storefront-client/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	service "github.com/aaravmahajanofficial/storefront-client/internal/services"
	"github.com/aaravmahajanofficial/storefront-client/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var catalogCfg = &config.Catalog{PageSize: 2, MaxPrice: 1000, PriceStep: 10}

func newCatalog(t *testing.T) (*service.CatalogService, *mocks.API) {
	t.Helper()

	mockAPI := new(mocks.API)
	cacheCfg := &config.CacheConfig{DefaultTTL: time.Minute}

	return service.NewCatalogService(mockAPI, cache.NewMemoryCache(cacheCfg), catalogCfg, cacheCfg), mockAPI
}

func products(ratings ...float64) []models.Product {
	out := make([]models.Product, len(ratings))
	for i, rating := range ratings {
		out[i] = models.Product{ID: int64(i + 1), Name: "p", AverageRating: rating, Quantity: 1}
	}

	return out
}

func TestCatalogFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Filter change resets page", func(t *testing.T) {
		// Arrange
		catalog, mockAPI := newCatalog(t)
		mockAPI.On("ListProducts", ctx, mock.Anything).Return(products(1, 2, 3, 4, 5), nil)

		_, err := catalog.SetPage(ctx, 3)
		require.NoError(t, err)
		require.Equal(t, 3, catalog.Query().Page)

		// Act
		result, err := catalog.ToggleCategory(ctx, "home")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, catalog.Query().Page)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, []string{"home"}, catalog.Query().Categories)
	})

	t.Run("Success - Local pagination when backend returns everything", func(t *testing.T) {
		catalog, mockAPI := newCatalog(t)
		mockAPI.On("ListProducts", ctx, mock.Anything).Return(products(1, 2, 3, 4, 5), nil)

		result, err := catalog.SetPage(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, 5, result.Total)
		require.Len(t, result.Products, 2)
		assert.Equal(t, int64(3), result.Products[0].ID)
		assert.True(t, result.HasNext)

		last, err := catalog.SetPage(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, last.Products, 1)
		assert.False(t, last.HasNext)
	})

	t.Run("Success - Page past the end is empty", func(t *testing.T) {
		// Arrange
		catalog, mockAPI := newCatalog(t)
		mockAPI.On("ListProducts", ctx, mock.Anything).Return(products(1, 2), nil)

		// Act
		second, err := catalog.SetPage(ctx, 2)
		require.NoError(t, err)

		far, err := catalog.SetPage(ctx, 50)
		require.NoError(t, err)

		// Assert
		assert.Empty(t, second.Products)
		assert.Equal(t, 2, second.Total)
		assert.False(t, second.HasNext)

		assert.Empty(t, far.Products)
		assert.Equal(t, 50, far.Page)
		assert.Equal(t, 2, far.Total)
		assert.False(t, far.HasNext)
	})

	t.Run("Success - Min rating filtered locally", func(t *testing.T) {
		catalog, mockAPI := newCatalog(t)
		mockAPI.On("ListProducts", ctx, mock.Anything).Return(products(1, 4.5, 3.9, 4), nil)

		result, err := catalog.SetMinRating(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
		for _, p := range result.Products {
			assert.GreaterOrEqual(t, p.AverageRating, 4.0)
		}
	})

	t.Run("Success - Rating sort is local and not sent", func(t *testing.T) {
		// Arrange
		catalog, mockAPI := newCatalog(t)
		mockAPI.On("ListProducts", ctx, mock.MatchedBy(func(q *models.CatalogQuery) bool {
			return q.SortBy == "" && q.SortOrder == models.SortDesc
		})).Return(products(2, 5, 3), nil).Once()

		// Act
		result, err := catalog.SetSort(ctx, "rating", "")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5.0, result.Products[0].AverageRating)
		assert.Equal(t, 3.0, result.Products[1].AverageRating)
		assert.Equal(t, "rating", catalog.Query().SortBy)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Success - Price range clamped", func(t *testing.T) {
		catalog, mockAPI := newCatalog(t)
		mockAPI.On("ListProducts", ctx, mock.MatchedBy(func(q *models.CatalogQuery) bool {
			return q.Price.Min == 100 && q.Price.Max == 1000
		})).Return(products(), nil).Once()

		_, err := catalog.SetPriceRange(ctx, models.PriceRange{Min: 5000, Max: 104})

		require.NoError(t, err)
		mockAPI.AssertExpectations(t)
	})

	t.Run("Failure - Unknown sort key", func(t *testing.T) {
		catalog, mockAPI := newCatalog(t)

		_, err := catalog.SetSort(ctx, "popularity", "")

		assert.Error(t, err)
		mockAPI.AssertNotCalled(t, "ListProducts", mock.Anything, mock.Anything)
	})
}

func TestCatalogStaleResult(t *testing.T) {
	// Arrange
	ctx := context.Background()
	catalog, mockAPI := newCatalog(t)

	started := make(chan struct{})
	release := make(chan struct{})

	mockAPI.On("ListProducts", ctx, mock.MatchedBy(func(q *models.CatalogQuery) bool { return q.Search == "la" })).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(products(1), nil).Once()
	mockAPI.On("ListProducts", ctx, mock.MatchedBy(func(q *models.CatalogQuery) bool { return q.Search == "lamp" })).
		Return(products(4, 5), nil).Once()

	slow := make(chan error, 1)
	go func() {
		_, err := catalog.SetSearch(ctx, "la")
		slow <- err
	}()
	<-started

	// Act
	fresh, err := catalog.SetSearch(ctx, "lamp")
	require.NoError(t, err)
	close(release)

	// Assert
	assert.ErrorIs(t, <-slow, service.ErrStaleResult)
	assert.Equal(t, fresh, catalog.Result())
	assert.Len(t, catalog.Result().Products, 2)
}

func TestCatalogCategoriesCached(t *testing.T) {
	ctx := context.Background()
	catalog, mockAPI := newCatalog(t)
	mockAPI.On("Categories", ctx).Return([]string{"garden", "home"}, nil).Once()

	first, err := catalog.Categories(ctx)
	require.NoError(t, err)

	second, err := catalog.Categories(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockAPI.AssertNumberOfCalls(t, "Categories", 1)
}

func TestCatalogProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Second read hits cache", func(t *testing.T) {
		catalog, mockAPI := newCatalog(t)
		lamp := &models.Product{ID: 7, Name: "Lamp", Price: 40}
		mockAPI.On("GetProduct", ctx, int64(7)).Return(lamp, nil).Once()

		first, err := catalog.Product(ctx, 7)
		require.NoError(t, err)

		second, err := catalog.Product(ctx, 7)
		require.NoError(t, err)

		assert.Equal(t, "Lamp", second.Name)
		assert.Equal(t, first, second)
		mockAPI.AssertNumberOfCalls(t, "GetProduct", 1)
	})

	t.Run("Failure - Not found is not cached", func(t *testing.T) {
		catalog, mockAPI := newCatalog(t)
		mockAPI.On("GetProduct", ctx, int64(9)).Return(nil, appErrors.NotFoundError("Товар не найден")).Twice()

		_, err := catalog.Product(ctx, 9)
		assert.Error(t, err)

		_, err = catalog.Product(ctx, 9)
		assert.Error(t, err)

		mockAPI.AssertNumberOfCalls(t, "GetProduct", 2)
	})
}
