package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"app/internal/config"

	"github.com/rs/zerolog"
)

// Outbound automation endpoints. Each maps to a configured webhook URL.
const (
	EndpointClientSearch      = "client-search"
	EndpointPortfolioAnalysis = "portfolio-analysis"
	EndpointRiskAssessment    = "risk-assessment"
	EndpointMarketData        = "market-data"
)

var (
	ErrUnknownEndpoint = errors.New("unknown automation endpoint")
	ErrNotConfigured   = errors.New("webhook not configured")
	ErrUpstreamFailed  = errors.New("automation webhook call failed")
	// ErrRefreshTimedOut is returned when the external system never advances
	// the feed watermark within the polling budget.
	ErrRefreshTimedOut = errors.New("timed out awaiting new data")
)

// AutomationService calls the external workflow-automation webhooks. Every
// call carries a timeout; a hung upstream cannot block a portal request
// indefinitely.
type AutomationService struct {
	cfg    *config.Config
	client *http.Client
	feeds  FeedService
	logger zerolog.Logger
}

func NewAutomationService(cfg *config.Config, feeds FeedService, logger zerolog.Logger) *AutomationService {
	lg := logger.With().Str("service", "AutomationService").Logger()
	return &AutomationService{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.WebhookTimeoutSec) * time.Second},
		feeds:  feeds,
		logger: lg,
	}
}

func (s *AutomationService) urlFor(endpoint string) (string, error) {
	var url string
	switch endpoint {
	case EndpointClientSearch:
		url = s.cfg.ClientSearchWebhookURL
	case EndpointPortfolioAnalysis:
		url = s.cfg.PortfolioAnalysisWebhookURL
	case EndpointRiskAssessment:
		url = s.cfg.RiskAssessmentWebhookURL
	case EndpointMarketData:
		url = s.cfg.MarketDataWebhookURL
	default:
		return "", ErrUnknownEndpoint
	}
	if url == "" {
		return "", ErrNotConfigured
	}
	return url, nil
}

// Call forwards a JSON body to the named endpoint and relays the response
// body and content type. Upstreams answer JSON or plain text.
func (s *AutomationService) Call(ctx context.Context, endpoint string, body []byte) ([]byte, string, error) {
	url, err := s.urlFor(endpoint)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("endpoint", endpoint).Msg("automation webhook unreachable")
		return nil, "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("automation webhook returned error status")
		return nil, "", fmt.Errorf("%w: status %d", ErrUpstreamFailed, resp.StatusCode)
	}

	s.logger.Info().Str("endpoint", endpoint).Str("duration", time.Since(start).String()).Msg("automation webhook call succeeded")
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return respBody, contentType, nil
}

// Refresh triggers the external refresh webhook and then polls the us-banks
// feed watermark with exponential backoff until new data lands or the
// attempts run out.
func (s *AutomationService) Refresh(ctx context.Context) (int, error) {
	if s.cfg.RefreshWebhookURL == "" {
		return 0, ErrNotConfigured
	}

	var baseline time.Time
	if snap, err := s.feeds.Get(ctx, FeedUSBanks); err == nil {
		baseline = snap.LastUpdated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.RefreshWebhookURL, bytes.NewReader([]byte(`{"trigger":"refresh"}`)))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: status %d", ErrUpstreamFailed, resp.StatusCode)
	}

	backoff := time.Duration(s.cfg.RefreshBackoffInitSec) * time.Second
	maxBackoff := time.Duration(s.cfg.RefreshBackoffMaxSec) * time.Second
	for attempt := 1; attempt <= s.cfg.RefreshMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return attempt, ctx.Err()
		case <-time.After(backoff):
		}

		snap, err := s.feeds.Get(ctx, FeedUSBanks)
		if err == nil && snap.LastUpdated.After(baseline) {
			s.logger.Info().Int("attempts", attempt).Msg("refresh completed, new data arrived")
			return attempt, nil
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	s.logger.Warn().Int("attempts", s.cfg.RefreshMaxAttempts).Msg("exhausted refresh polling attempts")
	return s.cfg.RefreshMaxAttempts, ErrRefreshTimedOut
}
