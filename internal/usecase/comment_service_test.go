package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	battlemock "github.com/riskibarqy/knight-arena/internal/mocks/domain/battle"
	commentmock "github.com/riskibarqy/knight-arena/internal/mocks/domain/comment"
	profilemock "github.com/riskibarqy/knight-arena/internal/mocks/domain/profile"
)

func newCommentMocks(t *testing.T) (*CommentService, *commentmock.Repository, *battlemock.Repository) {
	comments := commentmock.NewRepository(t)
	battles := battlemock.NewRepository(t)
	service := NewCommentService(comments, battles, profilemock.NewRepository(t), &seqIDs{prefix: "comment"})
	return service, comments, battles
}

func TestCommentService_Create_UsingMockery(t *testing.T) {
	t.Parallel()

	service, comments, battles := newCommentMocks(t)
	ctx := context.Background()

	battles.On("GetByID", anyCtx(), "b-1").Return(battle.Battle{ID: "b-1"}, true, nil).Twice()
	comments.On("GetByID", anyCtx(), "c-root").Return(comment.Comment{ID: "c-root", BattleID: "b-1"}, true, nil).Once()
	comments.On("Create", anyCtx(), mock.MatchedBy(func(c comment.Comment) bool {
		return c.BattleID == "b-1" && c.AuthorID == "u-1" && c.Content == "Pegasus Ryu Sei Ken"
	})).Return(nil).Twice()

	root, err := service.Create(ctx, CreateCommentInput{Actor: member("u-1"), BattleID: "b-1", Content: "  Pegasus Ryu Sei Ken  "})
	require.NoError(t, err)
	assert.Empty(t, root.ParentID)

	reply, err := service.Create(ctx, CreateCommentInput{Actor: member("u-1"), BattleID: "b-1", Content: "Pegasus Ryu Sei Ken", ParentID: "c-root"})
	require.NoError(t, err)
	assert.Equal(t, "c-root", reply.ParentID)
}

func TestCommentService_Create_Rejections(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		service, _, _ := newCommentMocks(t)
		_, err := service.Create(context.Background(), CreateCommentInput{BattleID: "b-1", Content: "hi"})
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("blank content", func(t *testing.T) {
		service, _, _ := newCommentMocks(t)
		_, err := service.Create(context.Background(), CreateCommentInput{Actor: member("u-1"), BattleID: "b-1", Content: "   "})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("content too long", func(t *testing.T) {
		service, _, _ := newCommentMocks(t)
		_, err := service.Create(context.Background(), CreateCommentInput{Actor: member("u-1"), BattleID: "b-1", Content: strings.Repeat("a", 5000)})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing battle", func(t *testing.T) {
		service, _, battles := newCommentMocks(t)
		battles.On("GetByID", anyCtx(), "b-404").Return(battle.Battle{}, false, nil).Once()
		_, err := service.Create(context.Background(), CreateCommentInput{Actor: member("u-1"), BattleID: "b-404", Content: "hi"})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("parent from another battle", func(t *testing.T) {
		service, comments, battles := newCommentMocks(t)
		battles.On("GetByID", anyCtx(), "b-1").Return(battle.Battle{ID: "b-1"}, true, nil).Once()
		comments.On("GetByID", anyCtx(), "c-9").Return(comment.Comment{ID: "c-9", BattleID: "b-2"}, true, nil).Once()
		_, err := service.Create(context.Background(), CreateCommentInput{Actor: member("u-1"), BattleID: "b-1", Content: "hi", ParentID: "c-9"})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCommentService_Delete_UsingMockery(t *testing.T) {
	t.Parallel()

	service, comments, _ := newCommentMocks(t)
	ctx := context.Background()
	item := comment.Comment{ID: "c-1", BattleID: "b-1", AuthorID: "u-1"}

	comments.On("GetByID", anyCtx(), "c-1").Return(item, true, nil).Times(3)
	comments.On("Delete", anyCtx(), "c-1").Return(nil).Twice()

	require.ErrorIs(t, service.Delete(ctx, member("u-2"), "c-1"), ErrForbidden)
	require.NoError(t, service.Delete(ctx, member("u-1"), "c-1"))
	require.NoError(t, service.Delete(ctx, admin("a-1"), "c-1"))

	comments.On("GetByID", anyCtx(), "c-404").Return(comment.Comment{}, false, nil).Once()
	require.ErrorIs(t, service.Delete(ctx, admin("a-1"), "c-404"), ErrNotFound)
}

func TestCommentService_DeleteCascadesToReplies(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()
	seiya := a.signUp(t, "seiya@example.com", "Seiya")
	fight := a.createBattle(t, principalOf(seiya), []string{seiyaID}, []string{sagaID}, "Arena")

	root, err := a.comments.Create(ctx, CreateCommentInput{Actor: principalOf(seiya), BattleID: fight.ID, Content: "root"})
	require.NoError(t, err)
	_, err = a.comments.Create(ctx, CreateCommentInput{Actor: principalOf(seiya), BattleID: fight.ID, Content: "reply", ParentID: root.ID})
	require.NoError(t, err)

	require.NoError(t, a.comments.Delete(ctx, principalOf(seiya), root.ID))

	threads, err := a.comments.ListThreads(ctx, fight.ID)
	require.NoError(t, err)
	assert.Empty(t, threads.Threads)
}
