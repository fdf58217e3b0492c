package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/domain/userknight"
)

type OwnedKnight struct {
	Knight    knight.Knight
	Owned     bool
	UpdatedAt time.Time
}

type UserKnightService struct {
	userKnights userknight.Repository
	knights     knight.Repository
	profiles    profile.Repository
	now         func() time.Time
}

func NewUserKnightService(userKnights userknight.Repository, knights knight.Repository, profiles profile.Repository) *UserKnightService {
	return &UserKnightService{
		userKnights: userKnights,
		knights:     knights,
		profiles:    profiles,
		now:         time.Now,
	}
}

// ListByUser returns the knights a member has flagged, skipping deleted knights.
func (s *UserKnightService) ListByUser(ctx context.Context, userID string) ([]OwnedKnight, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, exists, err := s.profiles.GetByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	rows, err := s.userKnights.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user knights: %w", err)
	}
	if len(rows) == 0 {
		return []OwnedKnight{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.KnightID)
	}
	knights, err := s.knights.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list knights by ids: %w", err)
	}
	byID := make(map[string]knight.Knight, len(knights))
	for _, k := range knights {
		byID[k.ID] = k
	}

	out := make([]OwnedKnight, 0, len(rows))
	for _, row := range rows {
		k, ok := byID[row.KnightID]
		if !ok {
			continue
		}
		out = append(out, OwnedKnight{Knight: k, Owned: row.Owned, UpdatedAt: row.UpdatedAt})
	}
	return out, nil
}

func (s *UserKnightService) SetOwned(ctx context.Context, actor user.Principal, knightID string, owned bool) (OwnedKnight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserKnightService.SetOwned")
	defer span.End()

	if actor.UserID == "" {
		return OwnedKnight{}, fmt.Errorf("%w: sign in to track knights", ErrUnauthorized)
	}
	knightID = strings.TrimSpace(knightID)
	if knightID == "" {
		return OwnedKnight{}, fmt.Errorf("%w: knight id is required", ErrInvalidInput)
	}

	k, exists, err := s.knights.GetByID(ctx, knightID)
	if err != nil {
		return OwnedKnight{}, fmt.Errorf("get knight: %w", err)
	}
	if !exists {
		return OwnedKnight{}, fmt.Errorf("%w: knight=%s", ErrNotFound, knightID)
	}

	row := userknight.UserKnight{
		UserID:    actor.UserID,
		KnightID:  knightID,
		Owned:     owned,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.userKnights.Upsert(ctx, row); err != nil {
		return OwnedKnight{}, fmt.Errorf("upsert user knight: %w", err)
	}
	return OwnedKnight{Knight: k, Owned: owned, UpdatedAt: row.UpdatedAt}, nil
}
