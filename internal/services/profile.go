package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/aaravmahajanofficial/storefront-client/internal/api"
	"github.com/aaravmahajanofficial/storefront-client/internal/models"
	"github.com/aaravmahajanofficial/storefront-client/internal/utils"
	"github.com/go-playground/validator/v10"
)

type PasswordStrength string

const (
	StrengthNone       PasswordStrength = ""
	StrengthWeak       PasswordStrength = "weak"
	StrengthMedium     PasswordStrength = "medium"
	StrengthStrong     PasswordStrength = "strong"
	StrengthVeryStrong PasswordStrength = "very strong"
)

// ProfileService is the signed-in user's account page.
type ProfileService struct {
	api      ProfileAPI
	guard    SessionGuard
	validate *validator.Validate
}

func NewProfileService(profileAPI ProfileAPI, guard SessionGuard) *ProfileService {
	return &ProfileService{api: profileAPI, guard: guard, validate: validator.New()}
}

func (s *ProfileService) Info(ctx context.Context) (*models.User, error) {
	if err := s.guard.RequireAuth(); err != nil {
		return nil, err
	}

	return s.api.Me(ctx)
}

func (s *ProfileService) Update(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	if err := s.guard.RequireAuth(); err != nil {
		return nil, err
	}

	req.Username = strings.TrimSpace(req.Username)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}

	return s.api.UpdateMe(ctx, req)
}

// Delete removes the account and ends the session.
func (s *ProfileService) Delete(ctx context.Context) error {
	if err := s.guard.RequireAuth(); err != nil {
		return err
	}

	if err := s.api.DeleteMe(ctx); err != nil {
		return err
	}

	api.LoggerFromContext(ctx).Info("Account deleted")

	return s.guard.Logout(ctx)
}

func (s *ProfileService) ChangePassword(ctx context.Context, req *models.ChangePasswordRequest) error {
	if err := s.guard.RequireAuth(); err != nil {
		return err
	}

	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return err
	}

	return s.api.ChangePassword(ctx, req)
}

// Orders lists the user's own orders; query may be nil.
func (s *ProfileService) Orders(ctx context.Context, query *models.OrderQuery) ([]models.Order, error) {
	if err := s.guard.RequireAuth(); err != nil {
		return nil, err
	}

	return s.api.MyOrders(ctx, query)
}

func (s *ProfileService) RateProduct(ctx context.Context, productID int64, rating int, review string) error {
	if err := s.guard.RequireAuth(); err != nil {
		return err
	}

	req := &models.ReviewRequest{Rating: rating, Review: utils.SanitizeText(review)}
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return err
	}

	return s.api.ReviewProduct(ctx, productID, req)
}

// Strength grades a candidate password for display.
func Strength(password string) PasswordStrength {
	switch n := len([]rune(password)); {
	case n == 0:
		return StrengthNone
	case n < 6:
		return StrengthWeak
	case n < 8:
		return StrengthMedium
	}

	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	if lower && upper && digit {
		return StrengthVeryStrong
	}

	return StrengthStrong
}

func (s *ProfileService) PasswordStrength(password string) PasswordStrength {
	return Strength(password)
}
