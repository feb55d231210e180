package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsMux(t *testing.T) (*http.ServeMux, *fixture) {
	t.Helper()
	f := newFixture(t)
	mux := http.NewServeMux()
	NewStatsHandler(f.stats, zerolog.Nop()).RegisterRoutes(mux, noMw, noMw)
	return mux, f
}

func TestTrackSearchAndUsage(t *testing.T) {
	mux, _ := newStatsMux(t)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/track/search", nil)
		mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats/usage", nil)
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats []model.UsageStat
	decodeJSON(t, rec, &stats)
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Searches)
	assert.Equal(t, 0, stats[0].Logins)
}

func TestUsageEmptyStore(t *testing.T) {
	mux, _ := newStatsMux(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/stats/usage", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stats []model.UsageStat
	decodeJSON(t, rec, &stats)
	assert.Empty(t, stats)
}

func TestUsageRejectsPost(t *testing.T) {
	mux, _ := newStatsMux(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/stats/usage", nil)
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
