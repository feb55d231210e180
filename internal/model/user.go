package model

import "time"

// User represents a portal account. Passwords are stored as bcrypt hashes;
// the hash never leaves the repository layer in API responses.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsAdmin      bool       `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	LoginCount   int        `db:"login_count" json:"loginCount"`
}

// UserUpdate is a partial user record merged by ID. Nil fields are left
// untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
	IsAdmin      *bool
	LastLoginAt  *time.Time
	LoginCount   *int
}

// ResetToken maps a single-use password-reset token to an account email.
type ResetToken struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}
