package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/knight-arena/internal/infrastructure/session"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

const (
	seiyaID   = "0b6f1c3e-1a2d-4c55-9f10-6a2b7d1e0001"
	shiryuID  = "1c7a2d4f-2b3e-4d66-8a21-7b3c8e2f0002"
	hyogaID   = "2d8b3e5a-3c4f-4e77-9b32-8c4d9f3a0003"
	shunID    = "3e9c4f6b-4d5a-4f88-8c43-9d5e0a4b0004"
	sagaID    = "50be6b8d-6f7c-4baa-8e65-1f7a2c6d0006"
	cosmoID   = "a0c3b1d2-0e1f-4a10-8b20-c0d1e2f30001"
	seventhID = "b1d4c2e3-1f2a-4b21-9c31-d1e2f3a40002"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// seqIDs hands out predictable ids: prefix-1, prefix-2, ...
type seqIDs struct {
	prefix string
	n      atomic.Int64
}

func (g *seqIDs) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1)), nil
}

type failingIDs struct{}

func (failingIDs) NewID() (string, error) { return "", fmt.Errorf("entropy exhausted") }

func anyCtx() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func mockMatch[T any](fn func(T) bool) any {
	return mock.MatchedBy(fn)
}

func principalOf(res AuthResult) user.Principal {
	return user.Principal{UserID: res.Account.ID, Role: res.Profile.Role}
}

func admin(userID string) user.Principal {
	return user.Principal{UserID: userID, SessionID: "s-" + userID, Role: profile.RoleAdmin}
}

func member(userID string) user.Principal {
	return user.Principal{UserID: userID, SessionID: "s-" + userID, Role: profile.RoleMember}
}

// arena wires every service on one in-memory store.
type arena struct {
	store     *memory.Store
	sessions  *session.MemoryStore
	auth      *AuthService
	knights   *KnightService
	stigmas   *StigmaService
	battles   *BattleService
	comments  *CommentService
	reactions *ReactionService
	profiles  *ProfileService
	owned     *UserKnightService
	admin     *AdminService
	home      *HomeService
}

func newArena(t *testing.T) *arena {
	t.Helper()

	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	profiles := memory.NewProfileRepository(store)
	knights := memory.NewKnightRepository(store, memory.SeedKnights())
	stigmas := memory.NewStigmaRepository(store, memory.SeedStigmas())
	battles := memory.NewBattleRepository(store)
	comments := memory.NewCommentRepository(store)
	reactions := memory.NewReactionRepository(store)
	userKnights := memory.NewUserKnightRepository(store)
	sessions := session.NewMemoryStore()
	ids := &seqIDs{prefix: "id"}
	logger := logging.NewNop()

	return &arena{
		store:    store,
		sessions: sessions,
		auth: NewAuthService(accounts, profiles, sessions, ids, AuthConfig{
			JWTSecret:  "test-secret",
			BcryptCost: bcrypt.MinCost,
		}, logger),
		knights:   NewKnightService(knights, battles, nil, ids, 3, logger),
		stigmas:   NewStigmaService(stigmas, ids),
		battles:   NewBattleService(battles, knights, stigmas, comments, reactions, profiles, ids, logger),
		comments:  NewCommentService(comments, battles, profiles, ids),
		reactions: NewReactionService(reactions, battles, ids),
		profiles:  NewProfileService(profiles, knights, battles, logger),
		owned:     NewUserKnightService(userKnights, knights, profiles),
		admin:     NewAdminService(accounts, profiles, sessions, logger),
		home:      NewHomeService(battles, knights, stigmas, profiles),
	}
}

func (a *arena) signUp(t *testing.T, email, displayName string) AuthResult {
	t.Helper()

	res, err := a.auth.SignUp(context.Background(), SignUpInput{
		Email:       email,
		Password:    "password-123",
		DisplayName: displayName,
	})
	require.NoError(t, err)
	return res
}

func (a *arena) createBattle(t *testing.T, actor user.Principal, winners, losers []string, category string) battle.Battle {
	t.Helper()

	item, err := a.battles.Create(context.Background(), CreateBattleInput{
		Actor:          actor,
		WinnerTeam:     winners,
		LoserTeam:      losers,
		WinnerStigmaID: cosmoID,
		LoserStigmaID:  seventhID,
		Category:       category,
	})
	require.NoError(t, err)
	return item
}
