package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/id"
	"github.com/riskibarqy/knight-arena/internal/platform/resilience"
)

type ToggleReactionInput struct {
	Actor    user.Principal
	BattleID string
	Type     string
}

type ReactionResult struct {
	State   reaction.State
	Summary reaction.Summary
}

type ReactionService struct {
	reactions reaction.Repository
	battles   battle.Repository
	idGen     id.Generator
	inFlight  resilience.SingleFlight
	now       func() time.Time
}

func NewReactionService(reactions reaction.Repository, battles battle.Repository, idGen id.Generator) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		battles:   battles,
		idGen:     idGen,
		now:       time.Now,
	}
}

// Toggle applies a like/dislike click. Concurrent toggles by the same user on
// the same battle collapse into one and share its result.
func (s *ReactionService) Toggle(ctx context.Context, input ToggleReactionInput) (ReactionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReactionService.Toggle")
	defer span.End()

	if input.Actor.UserID == "" {
		return ReactionResult{}, fmt.Errorf("%w: sign in to react", ErrUnauthorized)
	}
	battleID := strings.TrimSpace(input.BattleID)
	if battleID == "" {
		return ReactionResult{}, fmt.Errorf("%w: battle id is required", ErrInvalidInput)
	}
	selected, err := reaction.ParseType(strings.ToLower(strings.TrimSpace(input.Type)))
	if err != nil {
		return ReactionResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := battleID + ":" + input.Actor.UserID
	v, err, _ := s.inFlight.Do(key, func() (any, error) {
		return s.toggle(ctx, battleID, input.Actor.UserID, selected)
	})
	if err != nil {
		return ReactionResult{}, err
	}
	return v.(ReactionResult), nil
}

func (s *ReactionService) toggle(ctx context.Context, battleID, userID string, selected reaction.Type) (ReactionResult, error) {
	if _, exists, err := s.battles.GetByID(ctx, battleID); err != nil {
		return ReactionResult{}, fmt.Errorf("get battle: %w", err)
	} else if !exists {
		return ReactionResult{}, fmt.Errorf("%w: battle=%s", ErrNotFound, battleID)
	}

	current, exists, err := s.reactions.Get(ctx, battleID, userID)
	if err != nil {
		return ReactionResult{}, fmt.Errorf("get reaction: %w", err)
	}
	state := reaction.StateNone
	if exists {
		state = reaction.StateOf(current.Type)
	}

	next := reaction.Next(state, selected)
	if nextType, ok := next.Type(); ok {
		now := s.now().UTC()
		item := reaction.Reaction{
			ID:        current.ID,
			BattleID:  battleID,
			UserID:    userID,
			Type:      nextType,
			CreatedAt: current.CreatedAt,
			UpdatedAt: now,
		}
		if !exists {
			if item.ID, err = s.idGen.NewID(); err != nil {
				return ReactionResult{}, fmt.Errorf("generate reaction id: %w", err)
			}
			item.CreatedAt = now
		}
		if err := s.reactions.Upsert(ctx, item); err != nil {
			return ReactionResult{}, fmt.Errorf("upsert reaction: %w", err)
		}
	} else if exists {
		if err := s.reactions.Delete(ctx, battleID, userID); err != nil {
			return ReactionResult{}, fmt.Errorf("delete reaction: %w", err)
		}
	}

	summary, err := s.summary(ctx, battleID, userID)
	if err != nil {
		return ReactionResult{}, err
	}
	return ReactionResult{State: next, Summary: summary}, nil
}

func (s *ReactionService) Summary(ctx context.Context, battleID, viewerID string) (reaction.Summary, error) {
	battleID = strings.TrimSpace(battleID)
	if battleID == "" {
		return reaction.Summary{}, fmt.Errorf("%w: battle id is required", ErrInvalidInput)
	}
	return s.summary(ctx, battleID, strings.TrimSpace(viewerID))
}

func (s *ReactionService) summary(ctx context.Context, battleID, viewerID string) (reaction.Summary, error) {
	list, err := s.reactions.ListByBattle(ctx, battleID)
	if err != nil {
		return reaction.Summary{}, fmt.Errorf("list reactions: %w", err)
	}
	return reaction.Summarize(list, viewerID), nil
}
