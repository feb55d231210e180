package repository

import (
	"context"
	"sync"
	"time"

	"app/internal/model"
)

// TokenRepository holds single-use password-reset tokens. Tokens are
// ephemeral by design and only have an in-memory implementation.
type TokenRepository interface {
	Save(ctx context.Context, t model.ResetToken) error
	// Consume deletes and returns the token. Unknown, already-consumed and
	// expired tokens all report ErrNotFound.
	Consume(ctx context.Context, token string, now time.Time) (*model.ResetToken, error)
}

type memoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]model.ResetToken
}

func NewMemoryTokenRepo() TokenRepository {
	return &memoryTokenRepo{tokens: make(map[string]model.ResetToken)}
}

func (r *memoryTokenRepo) Save(_ context.Context, t model.ResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[t.Token] = t
	return nil
}

func (r *memoryTokenRepo) Consume(_ context.Context, token string, now time.Time) (*model.ResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	// Single-use: gone whether it validates or not.
	delete(r.tokens, token)
	if now.After(t.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &t, nil
}
