package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	battlemock "github.com/riskibarqy/knight-arena/internal/mocks/domain/battle"
	commentmock "github.com/riskibarqy/knight-arena/internal/mocks/domain/comment"
	knightmock "github.com/riskibarqy/knight-arena/internal/mocks/domain/knight"
	profilemock "github.com/riskibarqy/knight-arena/internal/mocks/domain/profile"
	reactionmock "github.com/riskibarqy/knight-arena/internal/mocks/domain/reaction"
	stigmamock "github.com/riskibarqy/knight-arena/internal/mocks/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

type battleMocks struct {
	battles   *battlemock.Repository
	knights   *knightmock.Repository
	stigmas   *stigmamock.Repository
	comments  *commentmock.Repository
	reactions *reactionmock.Repository
	profiles  *profilemock.Repository
	service   *BattleService
}

func newBattleMocks(t *testing.T) battleMocks {
	m := battleMocks{
		battles:   battlemock.NewRepository(t),
		knights:   knightmock.NewRepository(t),
		stigmas:   stigmamock.NewRepository(t),
		comments:  commentmock.NewRepository(t),
		reactions: reactionmock.NewRepository(t),
		profiles:  profilemock.NewRepository(t),
	}
	m.service = NewBattleService(m.battles, m.knights, m.stigmas, m.comments, m.reactions, m.profiles, &seqIDs{prefix: "battle"}, logging.NewNop())
	m.service.now = func() time.Time { return fixedNow }
	return m
}

func TestBattleService_Create_UsingMockery(t *testing.T) {
	t.Parallel()

	m := newBattleMocks(t)
	ctx := context.Background()

	m.knights.On("ListByIDs", anyCtx(), []string{seiyaID, shiryuID, sagaID}).
		Return([]knight.Knight{{ID: seiyaID, Name: "Seiya"}, {ID: shiryuID, Name: "Shiryu"}, {ID: sagaID, Name: "Saga"}}, nil).
		Once()
	m.stigmas.On("ListByIDs", anyCtx(), []string{cosmoID, seventhID}).
		Return([]stigma.Stigma{{ID: cosmoID, Name: "Cosmo"}, {ID: seventhID, Name: "Seventh"}}, nil).
		Once()
	m.battles.On("Create", anyCtx(), mock.MatchedBy(func(b battle.Battle) bool {
		return b.ID == "battle-1" && b.CreatedBy == "u-1" && b.Category == "Arena" && b.CreatedAt.Equal(fixedNow)
	})).Return(nil).Once()

	got, err := m.service.Create(ctx, CreateBattleInput{
		Actor:          member("u-1"),
		WinnerTeam:     []string{" " + seiyaID, shiryuID},
		LoserTeam:      []string{sagaID},
		WinnerStigmaID: cosmoID,
		LoserStigmaID:  seventhID,
		Category:       "  Arena ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{seiyaID, shiryuID}, got.WinnerTeam)
	assert.False(t, got.Meta)
}

func TestBattleService_Create_RejectsUnknownReferences(t *testing.T) {
	t.Parallel()

	t.Run("unknown knight", func(t *testing.T) {
		m := newBattleMocks(t)
		m.knights.On("ListByIDs", anyCtx(), []string{seiyaID, sagaID}).
			Return([]knight.Knight{{ID: seiyaID, Name: "Seiya"}}, nil).
			Once()

		_, err := m.service.Create(context.Background(), CreateBattleInput{
			Actor:          member("u-1"),
			WinnerTeam:     []string{seiyaID},
			LoserTeam:      []string{sagaID},
			WinnerStigmaID: cosmoID,
			LoserStigmaID:  seventhID,
			Category:       "Arena",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown stigma", func(t *testing.T) {
		m := newBattleMocks(t)
		m.knights.On("ListByIDs", anyCtx(), []string{seiyaID, sagaID}).
			Return([]knight.Knight{{ID: seiyaID}, {ID: sagaID}}, nil).
			Once()
		m.stigmas.On("ListByIDs", anyCtx(), []string{cosmoID, "missing"}).
			Return([]stigma.Stigma{{ID: cosmoID}}, nil).
			Once()

		_, err := m.service.Create(context.Background(), CreateBattleInput{
			Actor:          member("u-1"),
			WinnerTeam:     []string{seiyaID},
			LoserTeam:      []string{sagaID},
			WinnerStigmaID: cosmoID,
			LoserStigmaID:  "missing",
			Category:       "Arena",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestBattleService_Create_Rules(t *testing.T) {
	t.Parallel()

	base := CreateBattleInput{
		Actor:          member("u-1"),
		WinnerTeam:     []string{seiyaID},
		LoserTeam:      []string{sagaID},
		WinnerStigmaID: cosmoID,
		LoserStigmaID:  seventhID,
		Category:       "Arena",
	}

	tests := []struct {
		name   string
		mutate func(*CreateBattleInput)
		target error
	}{
		{name: "anonymous", mutate: func(in *CreateBattleInput) { in.Actor.UserID = "" }, target: ErrUnauthorized},
		{name: "member cannot flag meta", mutate: func(in *CreateBattleInput) { in.Meta = true }, target: ErrForbidden},
		{name: "empty team", mutate: func(in *CreateBattleInput) { in.LoserTeam = nil }, target: ErrInvalidInput},
		{name: "duplicate knight", mutate: func(in *CreateBattleInput) { in.WinnerTeam = []string{seiyaID, seiyaID} }, target: ErrInvalidInput},
		{name: "six knights", mutate: func(in *CreateBattleInput) { in.WinnerTeam = []string{"a", "b", "c", "d", "e", "f"} }, target: ErrInvalidInput},
		{name: "missing stigma", mutate: func(in *CreateBattleInput) { in.LoserStigmaID = " " }, target: ErrInvalidInput},
		{name: "missing category", mutate: func(in *CreateBattleInput) { in.Category = "" }, target: ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newBattleMocks(t)
			input := base
			tc.mutate(&input)

			_, err := m.service.Create(context.Background(), input)
			require.ErrorIs(t, err, tc.target)
		})
	}
}

func TestBattleService_SetMetaAndDelete_UsingMockery(t *testing.T) {
	t.Parallel()

	m := newBattleMocks(t)
	ctx := context.Background()
	item := battle.Battle{ID: "b-1", WinnerTeam: []string{seiyaID}, LoserTeam: []string{sagaID}}

	_, err := m.service.SetMeta(ctx, member("u-1"), "b-1", true)
	require.ErrorIs(t, err, ErrForbidden)

	m.battles.On("GetByID", anyCtx(), "b-1").Return(item, true, nil).Twice()
	m.battles.On("SetMeta", anyCtx(), "b-1", true).Return(nil).Once()
	m.battles.On("Delete", anyCtx(), "b-1").Return(nil).Once()

	got, err := m.service.SetMeta(ctx, admin("a-1"), "b-1", true)
	require.NoError(t, err)
	assert.True(t, got.Meta)
	assert.Equal(t, fixedNow, got.UpdatedAt)

	require.NoError(t, m.service.Delete(ctx, admin("a-1"), "b-1"))

	m.battles.On("GetByID", anyCtx(), "gone").Return(battle.Battle{}, false, nil).Once()
	require.ErrorIs(t, m.service.Delete(ctx, admin("a-1"), "gone"), ErrNotFound)
}

func TestBattleService_Get_PropagatesRepositoryErrors(t *testing.T) {
	t.Parallel()

	m := newBattleMocks(t)
	item := battle.Battle{ID: "b-1", WinnerTeam: []string{seiyaID}, LoserTeam: []string{sagaID}}

	m.battles.On("GetByID", anyCtx(), "b-1").Return(item, true, nil).Once()
	m.comments.On("ListByBattle", anyCtx(), "b-1").Return(nil, errors.New("db down")).Maybe()
	m.reactions.On("ListByBattle", anyCtx(), "b-1").Return([]reaction.Reaction{}, nil).Maybe()
	m.battles.On("ListInvolving", anyCtx(), []string{seiyaID}).Return([]battle.Battle{}, nil).Maybe()

	_, err := m.service.Get(context.Background(), "b-1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestBattleService_Get_Detail(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()

	seiya := a.signUp(t, "seiya@example.com", "Seiya")
	shiryu := a.signUp(t, "shiryu@example.com", "Shiryu")
	fight := a.createBattle(t, principalOf(seiya), []string{seiyaID, shiryuID}, []string{sagaID}, "Arena")
	related := a.createBattle(t, principalOf(shiryu), []string{seiyaID}, []string{hyogaID}, "Arena")
	a.createBattle(t, principalOf(shiryu), []string{shunID}, []string{hyogaID}, "Arena")

	root, err := a.comments.Create(ctx, CreateCommentInput{Actor: principalOf(shiryu), BattleID: fight.ID, Content: "Great fight"})
	require.NoError(t, err)
	_, err = a.comments.Create(ctx, CreateCommentInput{Actor: principalOf(seiya), BattleID: fight.ID, Content: "Thanks", ParentID: root.ID})
	require.NoError(t, err)
	_, err = a.reactions.Toggle(ctx, ToggleReactionInput{Actor: principalOf(shiryu), BattleID: fight.ID, Type: "like"})
	require.NoError(t, err)

	detail, err := a.battles.Get(ctx, fight.ID, shiryu.Account.ID)
	require.NoError(t, err)

	require.NotNil(t, detail.Creator)
	assert.Equal(t, "Seiya", detail.Creator.DisplayName)
	require.Len(t, detail.Threads, 1)
	require.Len(t, detail.Threads[0].Replies, 1)
	assert.Contains(t, detail.Authors, shiryu.Account.ID)
	assert.Equal(t, 1, detail.Reactions.Likes)
	assert.Equal(t, reaction.StateLiked, detail.Reactions.Mine)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, related.ID, detail.Related[0].ID)
	assert.Contains(t, detail.Knights, hyogaID)
	assert.Equal(t, "seiya-de-pegaso-shiryu-de-dragao-x-saga-de-gemeos", fight.URL(detail.Knights))

	anon, err := a.battles.Get(ctx, fight.ID, "")
	require.NoError(t, err)
	assert.Equal(t, reaction.StateNone, anon.Reactions.Mine)
}

func TestBattleService_List_FiltersAndPages(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()

	seiya := a.signUp(t, "seiya@example.com", "Seiya")
	for i := 0; i < 3; i++ {
		a.createBattle(t, principalOf(seiya), []string{seiyaID}, []string{sagaID}, "Arena")
	}
	a.createBattle(t, principalOf(seiya), []string{hyogaID}, []string{shunID}, "Torneio")

	list, err := a.battles.List(ctx, battle.Filter{Category: "arena", PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 1, list.Page.Page)
	assert.Contains(t, list.Knights, seiyaID)
	assert.Contains(t, list.Stigmas, cosmoID)

	list, err = a.battles.List(ctx, battle.Filter{KnightID: shunID})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}
