package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the bearer token issued by /login.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Token is the /login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role,omitempty"`
}

// StoredSession is what a token store persists between runs.
type StoredSession struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	Role      string    `json:"role,omitempty"`
	Email     string    `json:"email,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
}

// Session is the in-memory authentication state.
type Session struct {
	Token           string
	Role            string
	Email           string
	UserID          int64
	IsAuthenticated bool
	ExpiresAt       time.Time
}

func (s Session) IsAdmin() bool {
	return s.IsAuthenticated && s.Role == RoleAdmin
}
