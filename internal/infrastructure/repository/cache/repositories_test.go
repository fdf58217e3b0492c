package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/knight-arena/internal/platform/cache"
)

type countingKnights struct {
	*memory.KnightRepository
	gets int
}

func (c *countingKnights) GetByID(ctx context.Context, id string) (knight.Knight, bool, error) {
	c.gets++
	return c.KnightRepository.GetByID(ctx, id)
}

func TestKnightRepositoryCachesLookupsUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := &countingKnights{KnightRepository: memory.NewKnightRepository(memory.NewStore(), nil)}
	repo := NewKnightRepository(next, basecache.NewStore(time.Minute))

	require.NoError(t, repo.Create(ctx, knight.Knight{ID: "k1", Name: "Seiya"}))

	for i := 0; i < 3; i++ {
		item, ok, err := repo.GetByID(ctx, "k1")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "Seiya", item.Name)
	}
	require.Equal(t, 1, next.gets)

	require.NoError(t, repo.Update(ctx, knight.Knight{ID: "k1", Name: "Seiya de Pégaso"}))
	item, _, err := repo.GetByID(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, "Seiya de Pégaso", item.Name)
	require.Equal(t, 2, next.gets)
}

func TestKnightRepositoryCachesMisses(t *testing.T) {
	ctx := context.Background()
	next := &countingKnights{KnightRepository: memory.NewKnightRepository(memory.NewStore(), nil)}
	repo := NewKnightRepository(next, basecache.NewStore(time.Minute))

	_, ok, err := repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = repo.GetByID(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, next.gets)
}

func TestProfileUpdateInvalidatesMemoizedRole(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cacheStore := basecache.NewStore(time.Minute)
	accounts := NewAccountRepository(memory.NewAccountRepository(store), cacheStore)
	profiles := NewProfileRepository(memory.NewProfileRepository(store), cacheStore)

	require.NoError(t, accounts.Register(ctx,
		user.Account{ID: "u1", Email: "a@example.com"},
		profile.Profile{UserID: "u1", DisplayName: "Athena", Active: true, Role: profile.RoleMember},
	))

	got, ok, err := profiles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, got.IsAdmin())

	got.Role = profile.RoleAdmin
	require.NoError(t, profiles.Update(ctx, got))

	got, _, err = profiles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.True(t, got.IsAdmin())

	require.NoError(t, accounts.Delete(ctx, "u1"))
	_, ok, err = profiles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok)
}
