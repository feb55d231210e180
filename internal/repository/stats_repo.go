package repository

import (
	"context"
	"sort"
	"sync"

	"app/internal/model"
)

// StatsRepository tracks per-day login and search counters. Day records are
// created lazily on the first event of a day and never deleted.
type StatsRepository interface {
	IncrementLogin(ctx context.Context, day string) error
	IncrementSearch(ctx context.Context, day string) error
	// Range returns the stats with from <= day <= to, ascending by day.
	Range(ctx context.Context, from, to string) ([]model.UsageStat, error)
}

type memoryStatsRepo struct {
	mu   sync.RWMutex
	days map[string]*model.UsageStat
}

func NewMemoryStatsRepo() StatsRepository {
	return &memoryStatsRepo{days: make(map[string]*model.UsageStat)}
}

func (r *memoryStatsRepo) day(day string) *model.UsageStat {
	s, ok := r.days[day]
	if !ok {
		s = &model.UsageStat{Day: day}
		r.days[day] = s
	}
	return s
}

func (r *memoryStatsRepo) IncrementLogin(_ context.Context, day string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.day(day).Logins++
	return nil
}

func (r *memoryStatsRepo) IncrementSearch(_ context.Context, day string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.day(day).Searches++
	return nil
}

func (r *memoryStatsRepo) Range(_ context.Context, from, to string) ([]model.UsageStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.UsageStat, 0, len(r.days))
	for day, s := range r.days {
		if day >= from && day <= to {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}
