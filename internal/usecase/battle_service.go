package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	"github.com/riskibarqy/knight-arena/internal/platform/id"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

type CreateBattleInput struct {
	Actor          user.Principal
	WinnerTeam     []string
	LoserTeam      []string
	WinnerStigmaID string
	LoserStigmaID  string
	Category       string
	Meta           bool
}

// BattleList is one page of battles plus the lookups needed to render it.
type BattleList struct {
	battle.Page
	Knights battle.KnightIndex
	Stigmas stigma.Index
}

type BattleDetail struct {
	Battle    battle.Battle
	Creator   *profile.Profile
	Knights   battle.KnightIndex
	Stigmas   stigma.Index
	Threads   []comment.Thread
	Authors   map[string]profile.Profile
	Reactions reaction.Summary
	Related   []battle.Battle
}

type BattleService struct {
	battles   battle.Repository
	knights   knight.Repository
	stigmas   stigma.Repository
	comments  comment.Repository
	reactions reaction.Repository
	profiles  profile.Repository
	idGen     id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewBattleService(
	battles battle.Repository,
	knights knight.Repository,
	stigmas stigma.Repository,
	comments comment.Repository,
	reactions reaction.Repository,
	profiles profile.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *BattleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &BattleService{
		battles:   battles,
		knights:   knights,
		stigmas:   stigmas,
		comments:  comments,
		reactions: reactions,
		profiles:  profiles,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *BattleService) List(ctx context.Context, filter battle.Filter) (BattleList, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BattleService.List")
	defer span.End()

	filter = filter.Normalize()
	items, total, err := s.battles.List(ctx, filter)
	if err != nil {
		return BattleList{}, fmt.Errorf("list battles: %w", err)
	}

	knights, err := knightIndexFor(ctx, s.knights, items...)
	if err != nil {
		return BattleList{}, err
	}
	stigmas, err := stigmaIndexFor(ctx, s.stigmas, items...)
	if err != nil {
		return BattleList{}, err
	}

	return BattleList{
		Page: battle.Page{
			Items:    items,
			Total:    total,
			Page:     filter.Page,
			PageSize: filter.PageSize,
		},
		Knights: knights,
		Stigmas: stigmas,
	}, nil
}

func (s *BattleService) getBattle(ctx context.Context, battleID string) (battle.Battle, error) {
	battleID = strings.TrimSpace(battleID)
	if battleID == "" {
		return battle.Battle{}, fmt.Errorf("%w: battle id is required", ErrInvalidInput)
	}

	item, exists, err := s.battles.GetByID(ctx, battleID)
	if err != nil {
		return battle.Battle{}, fmt.Errorf("get battle: %w", err)
	}
	if !exists {
		return battle.Battle{}, fmt.Errorf("%w: battle=%s", ErrNotFound, battleID)
	}
	return item, nil
}

// Get loads a battle with its comments, reactions and related battles.
// viewerID may be empty for anonymous callers.
func (s *BattleService) Get(ctx context.Context, battleID, viewerID string) (BattleDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BattleService.Get")
	defer span.End()

	item, err := s.getBattle(ctx, battleID)
	if err != nil {
		return BattleDetail{}, err
	}

	detail := BattleDetail{Battle: item}
	var commentList []comment.Comment

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		list, err := s.comments.ListByBattle(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list comments: %w", err)
		}
		commentList = list
		return nil
	})
	p.Go(func(ctx context.Context) error {
		list, err := s.reactions.ListByBattle(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list reactions: %w", err)
		}
		detail.Reactions = reaction.Summarize(list, strings.TrimSpace(viewerID))
		return nil
	})
	p.Go(func(ctx context.Context) error {
		candidates, err := s.battles.ListInvolving(ctx, item.WinnerTeam)
		if err != nil {
			return fmt.Errorf("list related battles: %w", err)
		}
		detail.Related = battle.Related(item, candidates, battle.RelatedLimit)
		return nil
	})
	if err := p.Wait(); err != nil {
		return BattleDetail{}, err
	}

	detail.Threads = comment.BuildThreads(commentList)

	people := append(comment.AuthorIDs(commentList), item.CreatedBy)
	detail.Authors, err = profilesByID(ctx, s.profiles, people)
	if err != nil {
		return BattleDetail{}, err
	}
	if creator, ok := detail.Authors[item.CreatedBy]; ok {
		detail.Creator = &creator
	}

	rendered := append([]battle.Battle{item}, detail.Related...)
	if detail.Knights, err = knightIndexFor(ctx, s.knights, rendered...); err != nil {
		return BattleDetail{}, err
	}
	if detail.Stigmas, err = stigmaIndexFor(ctx, s.stigmas, item); err != nil {
		return BattleDetail{}, err
	}

	return detail, nil
}

func (s *BattleService) Create(ctx context.Context, input CreateBattleInput) (battle.Battle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BattleService.Create")
	defer span.End()

	if input.Actor.UserID == "" {
		return battle.Battle{}, fmt.Errorf("%w: sign in to register battles", ErrUnauthorized)
	}
	if input.Meta && !input.Actor.IsAdmin() {
		return battle.Battle{}, fmt.Errorf("%w: only admins can flag meta battles", ErrForbidden)
	}

	battleID, err := s.idGen.NewID()
	if err != nil {
		return battle.Battle{}, fmt.Errorf("generate battle id: %w", err)
	}

	now := s.now().UTC()
	item := battle.Battle{
		ID:             battleID,
		WinnerTeam:     trimAll(input.WinnerTeam),
		LoserTeam:      trimAll(input.LoserTeam),
		WinnerStigmaID: strings.TrimSpace(input.WinnerStigmaID),
		LoserStigmaID:  strings.TrimSpace(input.LoserStigmaID),
		Category:       strings.TrimSpace(input.Category),
		Meta:           input.Meta,
		CreatedBy:      input.Actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := item.Validate(); err != nil {
		return battle.Battle{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	knights, err := knightIndexFor(ctx, s.knights, item)
	if err != nil {
		return battle.Battle{}, err
	}
	for _, knightID := range item.KnightIDs() {
		if _, ok := knights[knightID]; !ok {
			return battle.Battle{}, fmt.Errorf("%w: unknown knight=%s", ErrInvalidInput, knightID)
		}
	}

	stigmas, err := stigmaIndexFor(ctx, s.stigmas, item)
	if err != nil {
		return battle.Battle{}, err
	}
	for _, stigmaID := range []string{item.WinnerStigmaID, item.LoserStigmaID} {
		if _, ok := stigmas[stigmaID]; !ok {
			return battle.Battle{}, fmt.Errorf("%w: unknown stigma=%s", ErrInvalidInput, stigmaID)
		}
	}

	if err := s.battles.Create(ctx, item); err != nil {
		return battle.Battle{}, fmt.Errorf("create battle: %w", err)
	}

	s.logger.InfoContext(ctx, "battle created",
		"battle_id", item.ID,
		"user_id", item.CreatedBy,
		"category", item.Category,
	)
	return item, nil
}

func (s *BattleService) Delete(ctx context.Context, actor user.Principal, battleID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BattleService.Delete")
	defer span.End()

	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	item, err := s.getBattle(ctx, battleID)
	if err != nil {
		return err
	}
	if err := s.battles.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete battle: %w", err)
	}
	return nil
}

func (s *BattleService) SetMeta(ctx context.Context, actor user.Principal, battleID string, meta bool) (battle.Battle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BattleService.SetMeta")
	defer span.End()

	if !actor.IsAdmin() {
		return battle.Battle{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	item, err := s.getBattle(ctx, battleID)
	if err != nil {
		return battle.Battle{}, err
	}
	if item.Meta == meta {
		return item, nil
	}
	if err := s.battles.SetMeta(ctx, item.ID, meta); err != nil {
		return battle.Battle{}, fmt.Errorf("set battle meta: %w", err)
	}
	item.Meta = meta
	item.UpdatedAt = s.now().UTC()
	return item, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
