package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrUserNotFound = errors.New("user not found")

// UserUpdateParams is the partial record accepted by the admin edit form.
// Nil fields are left untouched; Password is re-hashed when present.
type UserUpdateParams struct {
	Username *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

type UserService interface {
	Create(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error)
	List(ctx context.Context, includeAdmins bool) ([]model.User, error)
	Update(ctx context.Context, id int64, params UserUpdateParams) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	// EnsureSeedAdmin creates the configured admin account when the store is
	// empty, so a fresh deployment is immediately usable.
	EnsureSeedAdmin(ctx context.Context, username, email, password string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

func (s *userService) Create(ctx context.Context, username, email, password string, isAdmin bool) (*model.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, includeAdmins bool) ([]model.User, error) {
	return s.userRepo.List(ctx, includeAdmins)
}

func (s *userService) Update(ctx context.Context, id int64, params UserUpdateParams) (*model.User, error) {
	upd := model.UserUpdate{
		Username: params.Username,
		Email:    params.Email,
		IsAdmin:  params.IsAdmin,
	}
	if params.Password != nil {
		hash, err := hashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		upd.PasswordHash = &hash
	}
	u, err := s.userRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) EnsureSeedAdmin(ctx context.Context, username, email, password string) error {
	n, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = s.Create(ctx, username, email, password, true)
	return err
}
