package metricstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inboxguard/fraud-filter/internal/core"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), mr.Addr(), "", 0, "metrics:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", sampleSnapshot(30)))

	got, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 30, got.ThreatLevel)
	assert.Equal(t, []core.MonthlyBucket{{Month: "Jan", Detected: 1, Safe: 2}}, got.MonthlyBreakdown)
}

func TestRedisStoreNotFound(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)
}

func TestRedisStoreKeyEscaping(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", sampleSnapshot(30)))

	assert.True(t, mr.Exists("metrics:user_at_example.com"))
}

func TestRedisStoreReplaceOnPut(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", sampleSnapshot(30)))
	require.NoError(t, store.Put(ctx, "user@example.com", sampleSnapshot(60)))

	got, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 60, got.ThreatLevel)
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", sampleSnapshot(30)))
	require.NoError(t, store.Delete(ctx, "user@example.com"))

	_, err := store.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)
}

func TestRedisStoreConnectionFailure(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "127.0.0.1:1", "", 0, "metrics:", zap.NewNop())
	assert.Error(t, err)
}
