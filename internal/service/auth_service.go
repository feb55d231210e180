package service

import (
	"context"
	"errors"
	"time"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour
const minPasswordLength = 8

var (
	// ErrInvalidCredentials is deliberately generic: it never discloses
	// whether the account or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
)

type AuthService interface {
	// Login verifies credentials by username or email and returns the user
	// plus a signed session token.
	Login(ctx context.Context, identifier, password string) (*model.User, string, error)
	// ForgotPassword issues a reset token for the account with the given
	// email. The empty return for unknown emails is indistinguishable from
	// success at the API surface, preventing account enumeration.
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password, confirm string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	sessions  *session.Manager
	stats     StatsService
	logger    zerolog.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	sessions *session.Manager,
	stats StatsService,
	logger zerolog.Logger,
) AuthService {
	lg := logger.With().Str("service", "AuthService").Logger()
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		sessions:  sessions,
		stats:     stats,
		logger:    lg,
	}
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.Username, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	// Login bookkeeping: last-login timestamp, login counter, daily stats.
	now := time.Now()
	count := user.LoginCount + 1
	updated, err := s.userRepo.Update(ctx, user.ID, model.UserUpdate{
		LastLoginAt: &now,
		LoginCount:  &count,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to record login on user record")
		updated = user
	}
	if err := s.stats.TrackLogin(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to track login stat")
	}

	return updated, token, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	token := model.ResetToken{
		Token:     uuid.NewString(),
		Email:     user.Email,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return "", err
	}
	return token.Token, nil
}

func (s *authService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	t, err := s.tokenRepo.Consume(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	user, err := s.userRepo.GetByUsernameOrEmail(ctx, t.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.Update(ctx, user.ID, model.UserUpdate{PasswordHash: &hash}); err != nil {
		return err
	}
	s.logger.Info().Str("username", user.Username).Msg("password reset completed")
	return nil
}
