package dto

import (
	"time"

	"app/internal/model"
)

// UserCreateDTO is used for incoming admin create requests
type UserCreateDTO struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserUpdateDTO is a partial record; nil fields are left untouched.
type UserUpdateDTO struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsAdmin  *bool   `json:"isAdmin,omitempty"`
}

// UserResponseDTO is returned in API responses. The password hash never
// appears on the wire.
type UserResponseDTO struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	IsAdmin     bool       `json:"isAdmin"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	LoginCount  int        `json:"loginCount"`
}

func NewUserResponse(u model.User) UserResponseDTO {
	return UserResponseDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
		LoginCount:  u.LoginCount,
	}
}
