package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"app/internal/repository"
	"app/internal/service"
	"app/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestValidator mirrors the router setup: validation errors report JSON
// tag names, not Go field names.
func newTestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type fixture struct {
	sessions *session.Manager
	users    service.UserService
	auth     service.AuthService
	stats    service.StatsService
	feeds    service.FeedService
	validate *validator.Validate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	userRepo := repository.NewMemoryUserRepo()
	sessions := session.NewManager("test-secret")
	stats := service.NewStatsService(repository.NewMemoryStatsRepo())
	return &fixture{
		sessions: sessions,
		users:    service.NewUserService(userRepo),
		auth:     service.NewAuthService(userRepo, repository.NewMemoryTokenRepo(), sessions, stats, zerolog.Nop()),
		stats:    stats,
		feeds:    service.NewFeedService(repository.NewMemoryFeedRepo(), zerolog.Nop()),
		validate: newTestValidator(),
	}
}

// noMw passes requests straight through, standing in for the auth middleware
// on routes whose handler logic is under test.
func noMw(next http.Handler) http.Handler { return next }

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
