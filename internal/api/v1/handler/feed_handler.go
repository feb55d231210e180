package handler

import (
	"errors"
	"io"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/filter"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// bodyEchoLimit truncates the raw-body snippet echoed back on parse failure.
const bodyEchoLimit = 200

// FeedHandler implements the webhook relay endpoints. The POST side is
// deliberately unauthenticated: the external automation tool pushes datasets
// here and carries no portal credentials.
type FeedHandler struct {
	feedService  service.FeedService
	statsService service.StatsService
	logger       zerolog.Logger
}

func NewFeedHandler(feedService service.FeedService, statsService service.StatsService, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{feedService: feedService, statsService: statsService, logger: logger}
}

// RegisterRoutes mounts v1 webhook relay routes
func (h *FeedHandler) RegisterRoutes(mux *http.ServeMux, authMw, adminMw func(http.Handler) http.Handler) {
	mux.Handle("/webhooks/us-banks", http.HandlerFunc(h.feedEndpoint(service.FeedUSBanks)))
	mux.Handle("/webhooks/cr-banks", http.HandlerFunc(h.feedEndpoint(service.FeedCRBanks)))
	mux.Handle("/webhooks/cr-banks/log", adminMw(http.HandlerFunc(h.RelayLog)))
	mux.Handle("/webhooks/cr-banks/transactions", authMw(http.HandlerFunc(h.Transactions)))
}

func (h *FeedHandler) feedEndpoint(feed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.store(w, r, feed)
		case http.MethodGet:
			h.get(w, r, feed)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (h *FeedHandler) store(w http.ResponseWriter, r *http.Request, feed string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	snap, summary, err := h.feedService.Store(r.Context(), feed, body)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			echo := string(body)
			if len(echo) > bodyEchoLimit {
				echo = echo[:bodyEchoLimit]
			}
			writeJSON(w, http.StatusBadRequest, dto.ErrorDTO{
				Success: false,
				Message: "invalid JSON payload",
				Detail:  echo,
			})
			return
		}
		h.logger.Error().Err(err).Str("feed", feed).Msg("failed to store feed payload")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.RelayAckDTO{
		Success:     true,
		LastUpdated: snap.LastUpdated,
		Summary:     summary,
	})
}

func (h *FeedHandler) get(w http.ResponseWriter, r *http.Request, feed string) {
	snap, err := h.feedService.Get(r.Context(), feed)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			writeError(w, http.StatusNotFound, "no data yet")
			return
		}
		h.logger.Error().Err(err).Str("feed", feed).Msg("failed to load feed payload")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}
	writeJSON(w, http.StatusOK, dto.FeedResponseDTO{
		Success:     true,
		Data:        snap.Data,
		LastUpdated: snap.LastUpdated,
	})
}

// RelayLog exposes the CR feed's rolling request log for debugging.
func (h *FeedHandler) RelayLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	log, err := h.feedService.RequestLog(r.Context(), service.FeedCRBanks)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load relay log")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// Transactions applies the dashboard criteria server-side over the CR feed's
// cached transaction array. Every call counts as a search event.
func (h *FeedHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	criteria := filter.Criteria{
		Search:   q.Get("search"),
		Bank:     q.Get("bank"),
		Account:  q.Get("account"),
		Category: q.Get("category"),
		Amount:   q.Get("amount"),
		Window:   q.Get("window"),
	}

	txs, err := h.feedService.Transactions(r.Context(), service.FeedCRBanks, criteria)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			writeError(w, http.StatusNotFound, "no data yet")
			return
		}
		h.logger.Error().Err(err).Msg("failed to filter transactions")
		writeError(w, http.StatusInternalServerError, "failed")
		return
	}

	if err := h.statsService.TrackSearch(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("failed to track search")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"count":        len(txs),
		"transactions": txs,
	})
}
