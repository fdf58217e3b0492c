package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/domain/session"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, session.Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, session.Session{ID: "s2", UserID: "u1", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, session.Session{ID: "s3", UserID: "u2", ExpiresAt: now.Add(time.Hour)}))

	got, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u1", got.UserID)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, ok, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.DeleteByUser(ctx, "u1"))
	_, ok, _ = store.Get(ctx, "s2")
	require.False(t, ok)
	_, ok, _ = store.Get(ctx, "s3")
	require.True(t, ok)
}

func TestMemoryStoreHidesExpiredSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, session.Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Minute)}))
	now = now.Add(2 * time.Minute)

	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisKeys(t *testing.T) {
	require.Equal(t, "knight-arena:session:abc", sessionKey("abc"))
	require.Equal(t, "knight-arena:session:user:u1", userIndexKey("u1"))
}
