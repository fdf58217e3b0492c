package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	profilemock "github.com/riskibarqy/knight-arena/internal/mocks/domain/profile"
	sessionmock "github.com/riskibarqy/knight-arena/internal/mocks/domain/session"
	usermock "github.com/riskibarqy/knight-arena/internal/mocks/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

func TestAdminService_Guards(t *testing.T) {
	t.Parallel()

	service := NewAdminService(usermock.NewRepository(t), profilemock.NewRepository(t), sessionmock.NewStore(t), logging.NewNop())
	ctx := context.Background()

	_, err := service.ListUsers(ctx, member("u-1"), "")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = service.SetActive(ctx, member("u-1"), "u-2", false)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = service.SetActive(ctx, admin("a-1"), "a-1", false)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.SetRole(ctx, admin("a-1"), "a-1", profile.RoleMember)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.SetRole(ctx, admin("a-1"), "u-2", profile.Role("owner"))
	require.ErrorIs(t, err, ErrInvalidInput)

	require.ErrorIs(t, service.DeleteUser(ctx, admin("a-1"), "a-1"), ErrInvalidInput)
	require.ErrorIs(t, service.DeleteUser(ctx, admin("a-1"), " "), ErrInvalidInput)
}

func TestAdminService_SetActive_SessionRevokeFailure(t *testing.T) {
	t.Parallel()

	profiles := profilemock.NewRepository(t)
	sessions := sessionmock.NewStore(t)
	service := NewAdminService(usermock.NewRepository(t), profiles, sessions, logging.NewNop())

	target := profile.Profile{UserID: "u-2", DisplayName: "Jabu", Active: true, Role: profile.RoleMember}
	profiles.On("GetByUserID", anyCtx(), "u-2").Return(target, true, nil).Once()
	profiles.On("Update", anyCtx(), mockMatch(func(p profile.Profile) bool { return p.UserID == "u-2" && !p.Active })).Return(nil).Once()
	sessions.On("DeleteByUser", anyCtx(), "u-2").Return(fmt.Errorf("redis: connection refused")).Once()

	_, err := service.SetActive(context.Background(), admin("a-1"), "u-2", false)
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestAdminService_ListUsersAndRoles(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()

	root := admin("root")
	seiya := a.signUp(t, "Seiya@Example.com", "Seiya")
	shiryu := a.signUp(t, "shiryu@example.com", "Shiryu")

	users, err := a.admin.ListUsers(ctx, root, "")
	require.NoError(t, err)
	require.Len(t, users, 2)
	emails := map[string]string{}
	for _, u := range users {
		emails[u.Profile.UserID] = u.Email
	}
	assert.Equal(t, "seiya@example.com", emails[seiya.Account.ID])
	assert.Equal(t, "shiryu@example.com", emails[shiryu.Account.ID])

	filtered, err := a.admin.ListUsers(ctx, root, "shi")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, shiryu.Account.ID, filtered[0].Profile.UserID)

	promoted, err := a.admin.SetRole(ctx, root, seiya.Account.ID, profile.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleAdmin, promoted.Role)

	ok, err := a.profiles.IsAdmin(ctx, seiya.Account.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = a.admin.SetRole(ctx, root, "ghost", profile.RoleAdmin)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_DeleteUser_Cascades(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()

	seiya := a.signUp(t, "seiya@example.com", "Seiya")
	shiryu := a.signUp(t, "shiryu@example.com", "Shiryu")
	fight := a.createBattle(t, principalOf(seiya), []string{seiyaID}, []string{sagaID}, "Arena")

	_, err := a.comments.Create(ctx, CreateCommentInput{Actor: principalOf(shiryu), BattleID: fight.ID, Content: "Rozan Sho Ryu Ha"})
	require.NoError(t, err)
	_, err = a.reactions.Toggle(ctx, ToggleReactionInput{Actor: principalOf(shiryu), BattleID: fight.ID, Type: "dislike"})
	require.NoError(t, err)
	_, err = a.owned.SetOwned(ctx, principalOf(shiryu), shiryuID, true)
	require.NoError(t, err)

	require.NoError(t, a.admin.DeleteUser(ctx, admin("root"), shiryu.Account.ID))

	threads, err := a.comments.ListThreads(ctx, fight.ID)
	require.NoError(t, err)
	assert.Empty(t, threads.Threads)

	summary, err := a.reactions.Summary(ctx, fight.ID, "")
	require.NoError(t, err)
	assert.Zero(t, summary.Dislikes)

	_, err = a.owned.ListByUser(ctx, shiryu.Account.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = a.auth.Session(ctx, shiryu.Token)
	require.Error(t, err)

	_, err = a.auth.SignIn(ctx, SignInInput{Email: "shiryu@example.com", Password: "password-123"})
	require.ErrorIs(t, err, ErrUnauthorized)

	require.ErrorIs(t, a.admin.DeleteUser(ctx, admin("root"), shiryu.Account.ID), ErrNotFound)
}
