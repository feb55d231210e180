package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"app/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFeedRepoStoreReplacesSnapshot(t *testing.T) {
	repo := NewMemoryFeedRepo()
	ctx := context.Background()

	_, err := repo.Get(ctx, "us-banks")
	assert.ErrorIs(t, err, ErrNotFound)

	t1 := time.Now()
	require.NoError(t, repo.Store(ctx, "us-banks", json.RawMessage(`{"v":1}`), t1))

	t2 := t1.Add(time.Minute)
	require.NoError(t, repo.Store(ctx, "us-banks", json.RawMessage(`{"v":2}`), t2))

	snap, err := repo.Get(ctx, "us-banks")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(snap.Data))
	assert.True(t, snap.LastUpdated.Equal(t2))
}

func TestMemoryFeedRepoFeedsAreIndependent(t *testing.T) {
	repo := NewMemoryFeedRepo()
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "us-banks", json.RawMessage(`{"feed":"us"}`), time.Now()))

	_, err := repo.Get(ctx, "cr-banks")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFeedRepoLogIsBoundedMostRecentFirst(t *testing.T) {
	repo := NewMemoryFeedRepo()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		entry := model.RelayLogEntry{At: time.Now(), OK: true, Keys: []string{fmt.Sprintf("k%d", i)}}
		require.NoError(t, repo.AppendLog(ctx, "cr-banks", entry))
	}

	log, err := repo.Log(ctx, "cr-banks")
	require.NoError(t, err)
	require.Len(t, log, 10)
	assert.Equal(t, []string{"k14"}, log[0].Keys)
	assert.Equal(t, []string{"k5"}, log[9].Keys)
}

func TestMemoryFeedRepoLogEmpty(t *testing.T) {
	repo := NewMemoryFeedRepo()
	log, err := repo.Log(context.Background(), "cr-banks")
	require.NoError(t, err)
	assert.Empty(t, log)
}
