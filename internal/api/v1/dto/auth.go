package dto

// LoginRequest accepts a username or an email in the username field.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type SessionResponse struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}
