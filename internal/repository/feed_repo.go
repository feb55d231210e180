package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"app/internal/model"
)

// maxRelayLog bounds the per-feed rolling log of inbound request outcomes.
const maxRelayLog = 10

// FeedRepository caches the latest payload per webhook relay feed. Snapshots
// are replaced wholesale on every store; no history is kept and everything is
// lost on restart, matching the stand-in nature of the cache.
type FeedRepository interface {
	Store(ctx context.Context, feed string, data json.RawMessage, at time.Time) error
	// Get reports ErrNotFound until the feed has received its first payload.
	Get(ctx context.Context, feed string) (*model.FeedSnapshot, error)
	AppendLog(ctx context.Context, feed string, entry model.RelayLogEntry) error
	// Log returns recent request outcomes, most recent first.
	Log(ctx context.Context, feed string) ([]model.RelayLogEntry, error)
}

type memoryFeedRepo struct {
	mu        sync.RWMutex
	snapshots map[string]model.FeedSnapshot
	logs      map[string][]model.RelayLogEntry
}

func NewMemoryFeedRepo() FeedRepository {
	return &memoryFeedRepo{
		snapshots: make(map[string]model.FeedSnapshot),
		logs:      make(map[string][]model.RelayLogEntry),
	}
}

func (r *memoryFeedRepo) Store(_ context.Context, feed string, data json.RawMessage, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[feed] = model.FeedSnapshot{Data: data, LastUpdated: at}
	return nil
}

func (r *memoryFeedRepo) Get(_ context.Context, feed string) (*model.FeedSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snapshots[feed]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *memoryFeedRepo) AppendLog(_ context.Context, feed string, entry model.RelayLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log := append([]model.RelayLogEntry{entry}, r.logs[feed]...)
	if len(log) > maxRelayLog {
		log = log[:maxRelayLog]
	}
	r.logs[feed] = log
	return nil
}

func (r *memoryFeedRepo) Log(_ context.Context, feed string) ([]model.RelayLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.RelayLogEntry, len(r.logs[feed]))
	copy(out, r.logs[feed])
	return out, nil
}
