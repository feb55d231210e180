package handler

import (
	"net/http"

	"app/internal/service"

	"github.com/rs/zerolog"
)

const usageWindowDays = 30

// StatsHandler serves the admin usage chart and the search tracker.
type StatsHandler struct {
	statsService service.StatsService
	logger       zerolog.Logger
}

func NewStatsHandler(statsService service.StatsService, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, logger: logger}
}

// RegisterRoutes mounts v1 stats routes
func (h *StatsHandler) RegisterRoutes(mux *http.ServeMux, authMw, adminMw func(http.Handler) http.Handler) {
	mux.Handle("/admin/stats/usage", adminMw(http.HandlerFunc(h.Usage)))
	mux.Handle("/track/search", authMw(http.HandlerFunc(h.TrackSearch)))
}

// Usage returns the last 30 days of counters, ascending by date. Days with
// no activity are absent; the chart layer fills gaps with zeros.
func (h *StatsHandler) Usage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.statsService.LastDays(r.Context(), usageWindowDays)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load usage stats")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// TrackSearch increments today's search counter; called by the search page
// per executed search.
func (h *StatsHandler) TrackSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.statsService.TrackSearch(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("failed to track search")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
