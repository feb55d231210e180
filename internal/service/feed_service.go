package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"app/internal/filter"
	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// Relay feed identifiers, one per external data push.
const (
	FeedUSBanks = "us-banks"
	FeedCRBanks = "cr-banks"
)

var (
	ErrUnknownFeed    = errors.New("unknown feed")
	ErrNoData         = errors.New("no data yet")
	ErrInvalidPayload = errors.New("invalid JSON payload")
)

// summaryKeys are echoed back in the POST acknowledgement when present in the
// inbound payload.
var summaryKeys = []string{"totalTransactions", "todayTransactionCount", "monthTotal"}

// FeedService implements the webhook relay: the external automation tool
// POSTs a dataset, the dashboards GET it back.
type FeedService interface {
	// Store replaces the feed's cached payload wholesale and returns the new
	// snapshot plus the echoed summary fields.
	Store(ctx context.Context, feed string, body []byte) (*model.FeedSnapshot, map[string]json.RawMessage, error)
	Get(ctx context.Context, feed string) (*model.FeedSnapshot, error)
	// RequestLog returns recent inbound request outcomes, most recent first.
	// Only feeds registered with request logging keep one.
	RequestLog(ctx context.Context, feed string) ([]model.RelayLogEntry, error)
	// Transactions applies dashboard criteria to the feed's cached
	// transaction array.
	Transactions(ctx context.Context, feed string, criteria filter.Criteria) ([]model.Transaction, error)
}

type feedService struct {
	repo   repository.FeedRepository
	logged map[string]bool
	logger zerolog.Logger
}

func NewFeedService(repo repository.FeedRepository, logger zerolog.Logger) FeedService {
	lg := logger.With().Str("service", "FeedService").Logger()
	return &feedService{
		repo: repo,
		// Only the CR feed keeps a rolling request log.
		logged: map[string]bool{FeedCRBanks: true},
		logger: lg,
	}
}

func knownFeed(feed string) bool {
	return feed == FeedUSBanks || feed == FeedCRBanks
}

func (s *feedService) Store(ctx context.Context, feed string, body []byte) (*model.FeedSnapshot, map[string]json.RawMessage, error) {
	if !knownFeed(feed) {
		return nil, nil, ErrUnknownFeed
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		s.recordOutcome(ctx, feed, model.RelayLogEntry{
			At:        time.Now(),
			OK:        false,
			SizeBytes: len(body),
			Error:     err.Error(),
		})
		return nil, nil, ErrInvalidPayload
	}

	now := time.Now()
	if err := s.repo.Store(ctx, feed, json.RawMessage(body), now); err != nil {
		return nil, nil, err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s.recordOutcome(ctx, feed, model.RelayLogEntry{
		At:        now,
		OK:        true,
		Keys:      keys,
		SizeBytes: len(body),
	})

	summary := make(map[string]json.RawMessage)
	for _, k := range summaryKeys {
		if v, ok := fields[k]; ok {
			summary[k] = v
		}
	}
	s.logger.Info().Str("feed", feed).Int("size_bytes", len(body)).Msg("feed payload replaced")
	return &model.FeedSnapshot{Data: body, LastUpdated: now}, summary, nil
}

func (s *feedService) recordOutcome(ctx context.Context, feed string, entry model.RelayLogEntry) {
	if !s.logged[feed] {
		return
	}
	if err := s.repo.AppendLog(ctx, feed, entry); err != nil {
		s.logger.Error().Err(err).Str("feed", feed).Msg("failed to append relay log entry")
	}
}

func (s *feedService) Get(ctx context.Context, feed string) (*model.FeedSnapshot, error) {
	if !knownFeed(feed) {
		return nil, ErrUnknownFeed
	}
	snap, err := s.repo.Get(ctx, feed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoData
		}
		return nil, err
	}
	return snap, nil
}

func (s *feedService) RequestLog(ctx context.Context, feed string) ([]model.RelayLogEntry, error) {
	if !knownFeed(feed) {
		return nil, ErrUnknownFeed
	}
	return s.repo.Log(ctx, feed)
}

func (s *feedService) Transactions(ctx context.Context, feed string, criteria filter.Criteria) ([]model.Transaction, error) {
	snap, err := s.Get(ctx, feed)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Transactions []model.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(snap.Data, &payload); err != nil {
		return nil, ErrInvalidPayload
	}
	return filter.Apply(payload.Transactions, criteria, time.Now()), nil
}
