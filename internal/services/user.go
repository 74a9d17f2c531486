package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/go-playground/validator/v10"
)

// UsersPanel is the admin user table with per-user order aggregates.
type UsersPanel struct {
	api      UserAdminAPI
	guard    SessionGuard
	validate *validator.Validate
	list     *ListState[models.UserStats]
}

func NewUsersPanel(userAPI UserAdminAPI, guard SessionGuard) *UsersPanel {
	return &UsersPanel{
		api:      userAPI,
		guard:    guard,
		validate: validator.New(),
		list:     NewListState(func(u models.UserStats) int64 { return u.ID }),
	}
}

func (p *UsersPanel) Load(ctx context.Context) ([]models.UserStats, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	users, err := p.api.UserStats(ctx)
	if err != nil {
		return nil, err
	}

	p.list.Replace(users)

	return users, nil
}

func (p *UsersPanel) Items() []models.UserStats {
	return p.list.Items()
}

func (p *UsersPanel) Search(term string) []models.UserStats {
	term = strings.ToLower(strings.TrimSpace(term))

	return p.list.Filter(func(u models.UserStats) bool {
		return strings.Contains(strings.ToLower(u.Username), term)
	})
}

// Update saves the user and merges the result into the local row, keeping
// its order aggregates.
func (p *UsersPanel) Update(ctx context.Context, id int64, req *models.UpdateUserRequest) (*models.User, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(p.validate, req); err != nil {
		return nil, err
	}

	user, err := p.api.UpdateUser(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if !p.list.Merge(id, func(row models.UserStats) models.UserStats {
		row.User = *user
		return row
	}) {
		p.list.Upsert(models.UserStats{User: *user})
	}

	api.LoggerFromContext(ctx).Info("User updated", slog.Int64("user_id", id), slog.String("role", user.Role))

	return user, nil
}

// Create adds the user with empty order aggregates.
func (p *UsersPanel) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(p.validate, req); err != nil {
		return nil, err
	}

	user, err := p.api.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	p.list.Upsert(models.UserStats{User: *user})

	return user, nil
}

func (p *UsersPanel) Delete(ctx context.Context, id int64) error {
	if err := p.guard.RequireAdmin(); err != nil {
		return err
	}

	if err := p.api.DeleteUser(ctx, id); err != nil {
		return err
	}

	p.list.Remove(id)

	return nil
}

// ResetPassword issues a temporary password for the account.
func (p *UsersPanel) ResetPassword(ctx context.Context, email string) (*models.TempPasswordResponse, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	req := &models.TempPasswordRequest{Email: strings.TrimSpace(email)}
	if err := utils.ValidateStruct(p.validate, req); err != nil {
		return nil, err
	}

	return p.api.TempPassword(ctx, req.Email)
}
