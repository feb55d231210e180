package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUserRepo is the Postgres-backed user store, used when DATABASE_URL is set.
type pgUserRepo struct {
	pool *pgxpool.Pool
}

func NewPgUserRepo(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepo{pool: pool}
}

const userColumns = "id, username, email, password_hash, is_admin, created_at, last_login_at, login_count"

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.LastLoginAt, &u.LoginCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *pgUserRepo) Create(ctx context.Context, u *model.User) error {
	// Identifiers stay time-based to match the in-memory stand-in.
	u.ID = time.Now().UnixMilli()
	u.CreatedAt = time.Now()
	const q = `
		INSERT INTO users (id, username, email, password_hash, is_admin, created_at, login_count)
		VALUES ($1, $2, $3, $4, $5, $6, 0)`
	if _, err := r.pool.Exec(ctx, q, u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt); err != nil {
		return fmt.Errorf("inserting user %s: %w", u.Username, err)
	}
	return nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	q := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *pgUserRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	q := fmt.Sprintf("SELECT %s FROM users WHERE lower(username) = lower($1) OR lower(email) = lower($1)", userColumns)
	return scanUser(r.pool.QueryRow(ctx, q, identifier))
}

func (r *pgUserRepo) List(ctx context.Context, includeAdmins bool) ([]model.User, error) {
	q := fmt.Sprintf("SELECT %s FROM users", userColumns)
	if !includeAdmins {
		q += " WHERE NOT is_admin"
	}
	q += " ORDER BY id"
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *pgUserRepo) Update(ctx context.Context, id int64, upd model.UserUpdate) (*model.User, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Username != nil {
		current.Username = *upd.Username
	}
	if upd.Email != nil {
		current.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		current.PasswordHash = *upd.PasswordHash
	}
	if upd.IsAdmin != nil {
		current.IsAdmin = *upd.IsAdmin
	}
	if upd.LastLoginAt != nil {
		current.LastLoginAt = upd.LastLoginAt
	}
	if upd.LoginCount != nil {
		current.LoginCount = *upd.LoginCount
	}
	const q = `
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, is_admin = $4,
			last_login_at = $5, login_count = $6
		WHERE id = $7`
	tag, err := r.pool.Exec(ctx, q,
		current.Username, current.Email, current.PasswordHash, current.IsAdmin,
		current.LastLoginAt, current.LoginCount, id)
	if err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return current, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgUserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}
