package service

import (
	"context"
	"testing"

	"app/internal/repository"
	"app/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, UserService, *session.Manager) {
	t.Helper()
	userRepo := repository.NewMemoryUserRepo()
	tokenRepo := repository.NewMemoryTokenRepo()
	statsRepo := repository.NewMemoryStatsRepo()
	sessions := session.NewManager("test-secret")
	users := NewUserService(userRepo)
	stats := NewStatsService(statsRepo)
	auth := NewAuthService(userRepo, tokenRepo, sessions, stats, zerolog.Nop())
	return auth, users, sessions
}

func TestLoginSuccess(t *testing.T) {
	auth, users, sessions := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "ana", "ana@example.com", "s3cret-pass", true)
	require.NoError(t, err)

	user, token, err := auth.Login(ctx, "ana", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, 1, user.LoginCount)
	require.NotNil(t, user.LastLoginAt)

	claims, err := sessions.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestLoginByEmail(t *testing.T) {
	auth, users, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "ana", "ana@example.com", "s3cret-pass", false)
	require.NoError(t, err)

	user, _, err := auth.Login(ctx, "ana@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	auth, users, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "ana", "ana@example.com", "s3cret-pass", false)
	require.NoError(t, err)

	_, _, errWrongPass := auth.Login(ctx, "ana", "wrong-password")
	_, _, errNoUser := auth.Login(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
}

func TestLoginCountAccumulates(t *testing.T) {
	auth, users, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "ana", "ana@example.com", "s3cret-pass", false)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		user, _, err := auth.Login(ctx, "ana", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, i, user.LoginCount)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	token, err := auth.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestResetPasswordFlow(t *testing.T) {
	auth, users, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "ana", "ana@example.com", "old-password", false)
	require.NoError(t, err)

	token, err := auth.ForgotPassword(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, auth.ResetPassword(ctx, token, "new-password", "new-password"))

	_, _, err = auth.Login(ctx, "ana", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = auth.Login(ctx, "ana", "new-password")
	assert.NoError(t, err)
}

func TestResetPasswordTokenIsSingleUse(t *testing.T) {
	auth, users, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := users.Create(ctx, "ana", "ana@example.com", "old-password", false)
	require.NoError(t, err)

	token, err := auth.ForgotPassword(ctx, "ana@example.com")
	require.NoError(t, err)

	require.NoError(t, auth.ResetPassword(ctx, token, "new-password", "new-password"))
	err = auth.ResetPassword(ctx, token, "another-pass", "another-pass")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordValidation(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	ctx := context.Background()

	err := auth.ResetPassword(ctx, "tok", "new-password", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = auth.ResetPassword(ctx, "tok", "short", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = auth.ResetPassword(ctx, "unknown-token", "new-password", "new-password")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
