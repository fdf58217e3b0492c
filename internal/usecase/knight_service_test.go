package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	battlemock "github.com/riskibarqy/knight-arena/internal/mocks/domain/battle"
	knightmock "github.com/riskibarqy/knight-arena/internal/mocks/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

type fakeImageStorage struct {
	keys []string
	body string
	err  error
}

func (f *fakeImageStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	f.body = string(raw)
	return "https://cdn.example.com/" + key, nil
}

func TestKnightService_GetByURL_UsingMockery(t *testing.T) {
	t.Parallel()

	knights := knightmock.NewRepository(t)
	service := NewKnightService(knights, battlemock.NewRepository(t), nil, &seqIDs{prefix: "k"}, 1, logging.NewNop())

	older := knight.Knight{ID: "abc111", Name: "Ikki de Fênix", CreatedAt: fixedNow.Add(-time.Hour)}
	newer := knight.Knight{ID: "abc222", Name: "Ikki de Fenix", CreatedAt: fixedNow}
	other := knight.Knight{ID: "abc333", Name: "Shaka de Virgem"}

	knights.On("ListByIDPrefix", anyCtx(), "abc").Return([]knight.Knight{older, newer, other}, nil).Twice()

	got, err := service.GetByURL(context.Background(), "abc-ikki-de-fenix")
	require.NoError(t, err)
	assert.Equal(t, "abc111", got.ID)

	_, err = service.GetByURL(context.Background(), "abc-mu-de-aries")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = service.GetByURL(context.Background(), "ab")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestKnightService_GetByURL_RoundTrip(t *testing.T) {
	a := newArena(t)

	seiya, err := a.knights.Get(context.Background(), seiyaID)
	require.NoError(t, err)

	got, err := a.knights.GetByURL(context.Background(), seiya.URL())
	require.NoError(t, err)
	assert.Equal(t, seiyaID, got.ID)
	assert.Equal(t, "0b6-seiya-de-pegaso", seiya.URL())
}

func TestKnightService_CreateAndUpdate(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()
	seiya := a.signUp(t, "seiya@example.com", "Seiya")
	shiryu := a.signUp(t, "shiryu@example.com", "Shiryu")

	_, err := a.knights.Create(ctx, CreateKnightInput{Name: "Marin de Águia"})
	require.ErrorIs(t, err, ErrUnauthorized)

	created, err := a.knights.Create(ctx, CreateKnightInput{Actor: principalOf(seiya), Name: "  Marin de Águia "})
	require.NoError(t, err)
	assert.Equal(t, "Marin de Águia", created.Name)
	assert.Equal(t, seiya.Account.ID, created.CreatedBy)

	_, err = a.knights.Create(ctx, CreateKnightInput{Actor: principalOf(shiryu), Name: "MARIN DE ÁGUIA"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = a.knights.Create(ctx, CreateKnightInput{Actor: principalOf(shiryu), Name: "!!!"})
	require.ErrorIs(t, err, ErrInvalidInput)

	renamed := "Marin, a Águia"
	_, err = a.knights.Update(ctx, UpdateKnightInput{Actor: principalOf(shiryu), KnightID: created.ID, Name: &renamed})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := a.knights.Update(ctx, UpdateKnightInput{Actor: principalOf(seiya), KnightID: created.ID, Name: &renamed})
	require.NoError(t, err)
	assert.Equal(t, renamed, updated.Name)

	taken := "Seiya de Pégaso"
	_, err = a.knights.Update(ctx, UpdateKnightInput{Actor: principalOf(seiya), KnightID: created.ID, Name: &taken})
	require.ErrorIs(t, err, ErrConflict)

	_, err = a.knights.Update(ctx, UpdateKnightInput{Actor: principalOf(seiya), KnightID: seiyaID, Name: &renamed})
	require.ErrorIs(t, err, ErrForbidden, "seed knights have no creator")

	require.ErrorIs(t, a.knights.Delete(ctx, principalOf(seiya), created.ID), ErrForbidden)
	require.NoError(t, a.knights.Delete(ctx, admin("root"), created.ID))
	_, err = a.knights.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestKnightService_Import(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()

	_, err := a.knights.Import(ctx, member("u-1"), []string{"Shina de Cobra"})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = a.knights.Import(ctx, admin("root"), []string{" ", ""})
	require.ErrorIs(t, err, ErrInvalidInput)

	res, err := a.knights.Import(ctx, admin("root"), []string{
		"Shina de Cobra",
		"shina de cobra",
		"Aldebaran de Touro",
		"",
		"Seiya de Pégaso",
	})
	require.NoError(t, err)

	require.Len(t, res.Created, 2)
	assert.Equal(t, "Shina de Cobra", res.Created[0].Name)
	assert.Equal(t, "Aldebaran de Touro", res.Created[1].Name)
	assert.Equal(t, "root", res.Created[0].CreatedBy)

	require.Len(t, res.Failed, 1)
	assert.Equal(t, "Seiya de Pégaso", res.Failed[0].Name)
	assert.Contains(t, res.Failed[0].Reason, ErrConflict.Error())
}

func TestKnightService_Import_TooMany(t *testing.T) {
	a := newArena(t)

	names := make([]string, 0, maxImportBatch+1)
	for i := 0; i <= maxImportBatch; i++ {
		names = append(names, fmt.Sprintf("Guerreiro %d", i))
	}
	_, err := a.knights.Import(context.Background(), admin("root"), names)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestKnightService_UploadImage(t *testing.T) {
	t.Parallel()

	newService := func(t *testing.T, storage ImageStorage) (*KnightService, *knightmock.Repository) {
		knights := knightmock.NewRepository(t)
		service := NewKnightService(knights, battlemock.NewRepository(t), storage, &seqIDs{prefix: "obj"}, 1, logging.NewNop())
		service.now = func() time.Time { return fixedNow }
		return service, knights
	}
	input := func(contentType string) UploadKnightImageInput {
		return UploadKnightImageInput{
			Actor:       admin("root"),
			KnightID:    seiyaID,
			ContentType: contentType,
			Size:        4,
			Body:        strings.NewReader("\x89PNG"),
		}
	}

	t.Run("storage disabled", func(t *testing.T) {
		var storage ImageStorage
		service, _ := newService(t, storage)
		_, err := service.UploadImage(context.Background(), input("image/png"))
		require.ErrorIs(t, err, ErrDependencyUnavailable)
	})

	t.Run("member", func(t *testing.T) {
		service, _ := newService(t, &fakeImageStorage{})
		in := input("image/png")
		in.Actor = member("u-1")
		_, err := service.UploadImage(context.Background(), in)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unsupported type", func(t *testing.T) {
		service, _ := newService(t, &fakeImageStorage{})
		_, err := service.UploadImage(context.Background(), input("image/gif"))
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("too large", func(t *testing.T) {
		service, _ := newService(t, &fakeImageStorage{})
		in := input("image/png")
		in.Size = maxImageBytes + 1
		_, err := service.UploadImage(context.Background(), in)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("storage failure", func(t *testing.T) {
		service, knights := newService(t, &fakeImageStorage{err: fmt.Errorf("s3 down")})
		knights.On("GetByID", anyCtx(), seiyaID).Return(knight.Knight{ID: seiyaID, Name: "Seiya de Pégaso"}, true, nil).Once()
		_, err := service.UploadImage(context.Background(), input("image/png"))
		require.ErrorIs(t, err, ErrDependencyUnavailable)
	})

	t.Run("success", func(t *testing.T) {
		storage := &fakeImageStorage{}
		service, knights := newService(t, storage)
		knights.On("GetByID", anyCtx(), seiyaID).Return(knight.Knight{ID: seiyaID, Name: "Seiya de Pégaso"}, true, nil).Once()
		knights.On("Update", anyCtx(), mockMatch(func(k knight.Knight) bool {
			return k.ID == seiyaID && strings.HasPrefix(k.ImageURL, "https://cdn.example.com/knights/") && k.UpdatedAt.Equal(fixedNow)
		})).Return(nil).Once()

		got, err := service.UploadImage(context.Background(), input("IMAGE/PNG"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/knights/"+seiyaID+"/obj-1.png", got.ImageURL)
		assert.Equal(t, []string{"knights/" + seiyaID + "/obj-1.png"}, storage.keys)
		assert.Equal(t, "\x89PNG", storage.body)
	})
}

func TestKnightService_MostUsed(t *testing.T) {
	a := newArena(t)
	ctx := context.Background()
	seiya := a.signUp(t, "seiya@example.com", "Seiya")
	actor := principalOf(seiya)

	a.createBattle(t, actor, []string{seiyaID, shiryuID}, []string{sagaID}, "Arena")
	a.createBattle(t, actor, []string{seiyaID}, []string{hyogaID}, "Arena")
	a.createBattle(t, actor, []string{shunID}, []string{seiyaID}, "Torre")

	ranked, err := a.knights.MostUsed(ctx, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, seiyaID, ranked[0].Knight.ID)
	assert.Equal(t, 3, ranked[0].Count)
	assert.Equal(t, 1, ranked[1].Count)

	empty := newArena(t)
	none, err := empty.knights.MostUsed(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
