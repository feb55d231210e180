package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"app/internal/model"
)

// UserRepository handles persistence for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByUsernameOrEmail matches the login identifier against either field.
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	// List returns all users, or only non-admin users when includeAdmins is false.
	List(ctx context.Context, includeAdmins bool) ([]model.User, error)
	Update(ctx context.Context, id int64, upd model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// memoryUserRepo is the in-memory stand-in for the production database.
// Identifiers are time-based (unix milliseconds), bumped on collision so two
// accounts created within the same millisecond stay distinct.
type memoryUserRepo struct {
	mu     sync.RWMutex
	users  []*model.User
	lastID int64
}

func NewMemoryUserRepo() UserRepository {
	return &memoryUserRepo{}
}

func (r *memoryUserRepo) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *memoryUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID()
	u.CreatedAt = time.Now()
	clone := *u
	r.users = append(r.users, &clone)
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) GetByUsernameOrEmail(_ context.Context, identifier string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) List(_ context.Context, includeAdmins bool) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if !includeAdmins && u.IsAdmin {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryUserRepo) Update(_ context.Context, id int64, upd model.UserUpdate) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if upd.Username != nil {
			u.Username = *upd.Username
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		if upd.PasswordHash != nil {
			u.PasswordHash = *upd.PasswordHash
		}
		if upd.IsAdmin != nil {
			u.IsAdmin = *upd.IsAdmin
		}
		if upd.LastLoginAt != nil {
			u.LastLoginAt = upd.LastLoginAt
		}
		if upd.LoginCount != nil {
			u.LoginCount = *upd.LoginCount
		}
		clone := *u
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryUserRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}
