package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/service"
	"app/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AuthHandler handles login, logout and the password reset flow.
type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewAuthHandler(authService service.AuthService, v *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 auth routes
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/auth/login", http.HandlerFunc(h.Login))
	mux.Handle("/auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("/auth/me", authMw(http.HandlerFunc(h.Me)))
	mux.Handle("/auth/forgot-password", http.HandlerFunc(h.ForgotPassword))
	mux.Handle("/auth/reset-password", http.HandlerFunc(h.ResetPassword))
}

// Login godoc
// @Summary Authenticate and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorDTO{
			Success:       false,
			Message:       "missing fields",
			MissingFields: missingFields(err),
		})
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error().Err(err).Msg("login failed")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}

	http.SetCookie(w, session.Cookie(token))

	redirect := "/"
	if user.IsAdmin {
		redirect = "/admin/"
	}
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Success:  true,
		Redirect: redirect,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, session.ExpiredCookie())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, dto.SessionResponse{Username: claims.Username, IsAdmin: claims.IsAdmin})
}

// ForgotPassword always acknowledges generically so callers cannot probe for
// registered emails. Token delivery is handled out of band.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorDTO{
			Success:       false,
			Message:       "missing fields",
			MissingFields: missingFields(err),
		})
		return
	}

	token, err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		h.logger.Error().Err(err).Msg("forgot-password failed")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}
	if token != "" {
		h.logger.Debug().Str("token", token).Msg("reset token issued")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "if the account exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorDTO{
			Success:       false,
			Message:       "missing fields",
			MissingFields: missingFields(err),
		})
		return
	}

	err := h.authService.ResetPassword(r.Context(), req.Token, req.Password, req.ConfirmPassword)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidResetToken):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("reset-password failed")
		writeError(w, http.StatusInternalServerError, "failed")
	}
}
