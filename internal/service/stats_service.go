package service

import (
	"context"
	"time"

	"app/internal/model"
	"app/internal/repository"
)

const dayLayout = "2006-01-02"

// StatsService aggregates daily login and search counters for the admin
// usage chart. Days are derived from the wall clock in the process-local
// timezone; days without activity are not materialized, the chart layer fills
// the gaps with zeros.
type StatsService interface {
	TrackLogin(ctx context.Context) error
	TrackSearch(ctx context.Context) error
	// LastDays returns up to n days of stats ending today, ascending by date.
	LastDays(ctx context.Context, n int) ([]model.UsageStat, error)
}

type statsService struct {
	repo repository.StatsRepository
	now  func() time.Time
}

func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo, now: time.Now}
}

func (s *statsService) TrackLogin(ctx context.Context) error {
	return s.repo.IncrementLogin(ctx, s.now().Format(dayLayout))
}

func (s *statsService) TrackSearch(ctx context.Context) error {
	return s.repo.IncrementSearch(ctx, s.now().Format(dayLayout))
}

func (s *statsService) LastDays(ctx context.Context, n int) ([]model.UsageStat, error) {
	today := s.now()
	from := today.AddDate(0, 0, -(n - 1)).Format(dayLayout)
	return s.repo.Range(ctx, from, today.Format(dayLayout))
}
