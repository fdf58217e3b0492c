package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
	"github.com/riskibarqy/knight-arena/internal/platform/slug"
)

const memberTopKnights = 5

type UpdateProfileInput struct {
	Actor            user.Principal
	DisplayName      *string
	FavoriteKnightID *string
}

type MemberStats struct {
	BattlesCreated int
	TopKnights     []KnightUsage
}

// Member is a public member page.
type Member struct {
	Profile        profile.Profile
	FavoriteKnight *knight.Knight
	Stats          MemberStats
}

type ProfileService struct {
	profiles profile.Repository
	knights  knight.Repository
	battles  battle.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewProfileService(
	profiles profile.Repository,
	knights knight.Repository,
	battles battle.Repository,
	logger *logging.Logger,
) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ProfileService{
		profiles: profiles,
		knights:  knights,
		battles:  battles,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *ProfileService) ListMembers(ctx context.Context, search string, activeOnly bool) ([]profile.Profile, error) {
	items, err := s.profiles.List(ctx, profile.Filter{Search: strings.TrimSpace(search), ActiveOnly: activeOnly})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return items, nil
}

func (s *ProfileService) getProfile(ctx context.Context, userID string) (profile.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	item, exists, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	return item, nil
}

func (s *ProfileService) GetMember(ctx context.Context, userID string) (Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetMember")
	defer span.End()

	item, err := s.getProfile(ctx, userID)
	if err != nil {
		return Member{}, err
	}
	return s.member(ctx, item)
}

// GetMemberByURL resolves "<id prefix>-<display name slug>". Collisions pick
// the oldest profile.
func (s *ProfileService) GetMemberByURL(ctx context.Context, param string) (Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetMemberByURL")
	defer span.End()

	parts, ok := slug.ParseMemberURL(strings.TrimSpace(param))
	if !ok {
		return Member{}, fmt.Errorf("%w: malformed member url", ErrInvalidInput)
	}

	candidates, err := s.profiles.ListByIDPrefix(ctx, parts.IDPrefix)
	if err != nil {
		return Member{}, fmt.Errorf("list profiles by prefix: %w", err)
	}

	var matches []profile.Profile
	for _, p := range candidates {
		if slug.Slugify(p.DisplayName) == parts.Slug {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return Member{}, fmt.Errorf("%w: member url=%s", ErrNotFound, param)
	}
	if len(matches) > 1 {
		s.logger.WarnContext(ctx, "member url matches several profiles",
			"url", param,
			"matches", len(matches),
			"picked_id", matches[0].UserID,
		)
	}
	return s.member(ctx, matches[0])
}

func (s *ProfileService) member(ctx context.Context, item profile.Profile) (Member, error) {
	out := Member{Profile: item}
	if item.FavoriteKnightID != "" {
		fav, exists, err := s.knights.GetByID(ctx, item.FavoriteKnightID)
		if err != nil {
			return Member{}, fmt.Errorf("get favorite knight: %w", err)
		}
		if exists {
			out.FavoriteKnight = &fav
		}
	}

	stats, err := s.MemberStats(ctx, item.UserID)
	if err != nil {
		return Member{}, err
	}
	out.Stats = stats
	return out, nil
}

// MemberStats counts the battles a member registered and the knights used most
// in them.
func (s *ProfileService) MemberStats(ctx context.Context, userID string) (MemberStats, error) {
	battles, err := s.battles.ListByCreator(ctx, userID)
	if err != nil {
		return MemberStats{}, fmt.Errorf("list battles by creator: %w", err)
	}
	top, err := rankKnightUsage(ctx, s.knights, battle.CountKnightUsage(battles), memberTopKnights)
	if err != nil {
		return MemberStats{}, err
	}
	return MemberStats{BattlesCreated: len(battles), TopKnights: top}, nil
}

func (s *ProfileService) UpdateMe(ctx context.Context, input UpdateProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpdateMe")
	defer span.End()

	item, err := s.getProfile(ctx, input.Actor.UserID)
	if err != nil {
		return profile.Profile{}, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if err := profile.ValidateDisplayName(name); err != nil {
			return profile.Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		item.DisplayName = name
	}
	if input.FavoriteKnightID != nil {
		knightID := strings.TrimSpace(*input.FavoriteKnightID)
		if knightID != "" {
			if _, exists, err := s.knights.GetByID(ctx, knightID); err != nil {
				return profile.Profile{}, fmt.Errorf("get knight: %w", err)
			} else if !exists {
				return profile.Profile{}, fmt.Errorf("%w: knight=%s", ErrNotFound, knightID)
			}
		}
		item.FavoriteKnightID = knightID
	}
	item.UpdatedAt = s.now().UTC()

	if err := s.profiles.Update(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return profile.Profile{}, fmt.Errorf("%w: display name already taken", ErrConflict)
		}
		return profile.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return item, nil
}

// IsAdmin reports whether userID currently holds the admin role and is active.
func (s *ProfileService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	item, exists, err := s.profiles.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}
	return exists && item.Active && item.IsAdmin(), nil
}
