package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// AutomationHandler proxies portal requests to the external
// workflow-automation webhooks.
type AutomationHandler struct {
	automation   *service.AutomationService
	statsService service.StatsService
	logger       zerolog.Logger
}

func NewAutomationHandler(automation *service.AutomationService, statsService service.StatsService, logger zerolog.Logger) *AutomationHandler {
	return &AutomationHandler{automation: automation, statsService: statsService, logger: logger}
}

// RegisterRoutes mounts v1 automation routes
func (h *AutomationHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/automation/refresh", authMw(http.HandlerFunc(h.Refresh)))
	mux.Handle("/automation/", authMw(http.HandlerFunc(h.Call)))
}

// Call forwards the request body to the named automation endpoint and relays
// the upstream response verbatim.
func (h *AutomationHandler) Call(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	endpoint := strings.TrimPrefix(r.URL.Path, "/automation/")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	respBody, contentType, err := h.automation.Call(r.Context(), endpoint, body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEndpoint):
			writeError(w, http.StatusNotFound, "unknown automation endpoint")
		case errors.Is(err, service.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, "webhook not configured")
		default:
			writeError(w, http.StatusInternalServerError, "failed")
		}
		return
	}

	if endpoint == service.EndpointClientSearch {
		if err := h.statsService.TrackSearch(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("failed to track search")
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(respBody)
}

// Refresh triggers the external refresh workflow and waits for the feed
// watermark to advance.
func (h *AutomationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	attempts, err := h.automation.Refresh(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.RefreshResponseDTO{
			Success:   true,
			Refreshed: true,
			Attempts:  attempts,
		})
	case errors.Is(err, service.ErrRefreshTimedOut):
		writeJSON(w, http.StatusOK, dto.RefreshResponseDTO{
			Success:   true,
			Refreshed: false,
			Attempts:  attempts,
			Message:   "timed out awaiting new data",
		})
	case errors.Is(err, service.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "webhook not configured")
	default:
		h.logger.Error().Err(err).Msg("refresh failed")
		writeError(w, http.StatusInternalServerError, "failed")
	}
}
