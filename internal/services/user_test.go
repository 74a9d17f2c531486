package service_test

import (
	"context"
	"testing"

	appErrors "github.com/aaravmahajanofficial/storefront-client/internal/errors"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	service "github.com/aaravmahajanofficial/storefront-client/internal/services"
	"github.com/aaravmahajanofficial/storefront-client/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUsersPanel(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.UsersPanel, *mocks.API) {
		t.Helper()

		mockAPI := new(mocks.API)
		panel := service.NewUsersPanel(mockAPI, mocks.AllowAll())

		mockAPI.On("UserStats", ctx).Return([]models.UserStats{
			{User: models.User{ID: 1, Username: "alice", Email: "alice@shop.test", Role: models.RoleUser}, Orders: 3, TotalSpent: 120},
			{User: models.User{ID: 2, Username: "bob", Email: "bob@shop.test", Role: models.RoleUser}},
		}, nil).Once()
		_, err := panel.Load(ctx)
		require.NoError(t, err)

		return panel, mockAPI
	}

	t.Run("Success - Update keeps order stats", func(t *testing.T) {
		// Arrange
		panel, mockAPI := setup(t)
		req := &models.UpdateUserRequest{Username: "alicia", Email: "alice@shop.test", Role: models.RoleAdmin}
		mockAPI.On("UpdateUser", ctx, int64(1), req).Return(&models.User{ID: 1, Username: "alicia", Email: "alice@shop.test", Role: models.RoleAdmin}, nil).Once()

		// Act
		_, err := panel.Update(ctx, 1, req)

		// Assert
		require.NoError(t, err)
		rows := panel.Search("alicia")
		require.Len(t, rows, 1)
		assert.Equal(t, models.RoleAdmin, rows[0].Role)
		assert.Equal(t, 3, rows[0].Orders)
		assert.Equal(t, 120.0, rows[0].TotalSpent)
		mockAPI.AssertNotCalled(t, "UserStats", mock.Anything)
	})

	t.Run("Success - Create adds zero stats row", func(t *testing.T) {
		panel, mockAPI := setup(t)
		req := &models.CreateUserRequest{Username: "carol", Email: "carol@shop.test", Password: "Password1"}
		mockAPI.On("CreateUser", ctx, req).Return(&models.User{ID: 9, Username: "carol", Email: "carol@shop.test", Role: models.RoleUser}, nil).Once()

		_, err := panel.Create(ctx, req)

		require.NoError(t, err)
		items := panel.Items()
		require.Len(t, items, 3)
		assert.Equal(t, int64(9), items[2].ID)
		assert.Zero(t, items[2].Orders)
	})

	t.Run("Success - Delete removes row", func(t *testing.T) {
		panel, mockAPI := setup(t)
		mockAPI.On("DeleteUser", ctx, int64(2)).Return(nil).Once()

		require.NoError(t, panel.Delete(ctx, 2))
		assert.Len(t, panel.Items(), 1)
	})

	t.Run("Success - Reset password", func(t *testing.T) {
		panel, mockAPI := setup(t)
		mockAPI.On("TempPassword", ctx, "bob@shop.test").Return(&models.TempPasswordResponse{Email: "bob@shop.test", TempPassword: "Xy12ab9Q"}, nil).Once()

		resp, err := panel.ResetPassword(ctx, " bob@shop.test ")

		require.NoError(t, err)
		assert.Equal(t, "Xy12ab9Q", resp.TempPassword)
	})

	t.Run("Failure - Invalid role", func(t *testing.T) {
		panel, mockAPI := setup(t)

		_, err := panel.Update(ctx, 1, &models.UpdateUserRequest{Username: "alice", Email: "alice@shop.test", Role: "owner"})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockAPI.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Backend rejects delete", func(t *testing.T) {
		panel, mockAPI := setup(t)
		mockAPI.On("DeleteUser", ctx, int64(1)).Return(appErrors.NotFoundError("Пользователь не найден")).Once()

		assert.Error(t, panel.Delete(ctx, 1))
		assert.Len(t, panel.Items(), 2)
	})
}
