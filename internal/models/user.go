package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	LastName string `json:"last_name,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserStats is a user row of the admin list with order aggregates.
type UserStats struct {
	User
	Orders     int     `json:"orders"`
	TotalSpent float64 `json:"totalSpent"`
}

// for registration
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=2,max=64"`
	LastName        string `json:"last_name,omitempty" validate:"max=64"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	LastName string `json:"last_name,omitempty" validate:"max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,nefield=CurrentPassword"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=NewPassword"`
}

// admin edit form
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	LastName string `json:"last_name,omitempty" validate:"max=64"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	LastName string `json:"last_name,omitempty" validate:"max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type TempPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type TempPasswordResponse struct {
	Email        string `json:"email"`
	TempPassword string `json:"temp_password"`
}
