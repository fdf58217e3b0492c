package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
)

const (
	homeRecentBattles = 6
	homeMetaBattles   = 6
	homeTopKnights    = 5
)

type Totals struct {
	Battles int
	Knights int
	Members int
}

type Overview struct {
	Recent     []battle.Battle
	Meta       []battle.Battle
	TopKnights []KnightUsage
	Knights    battle.KnightIndex
	Stigmas    stigma.Index
	Totals     Totals
}

type HomeService struct {
	battles  battle.Repository
	knights  knight.Repository
	stigmas  stigma.Repository
	profiles profile.Repository
}

func NewHomeService(
	battles battle.Repository,
	knights knight.Repository,
	stigmas stigma.Repository,
	profiles profile.Repository,
) *HomeService {
	return &HomeService{
		battles:  battles,
		knights:  knights,
		stigmas:  stigmas,
		profiles: profiles,
	}
}

// Overview gathers the landing page data concurrently.
func (s *HomeService) Overview(ctx context.Context) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HomeService.Overview")
	defer span.End()

	var out Overview
	metaOnly := true

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, _, err := s.battles.List(ctx, battle.Filter{Sort: battle.SortRecent, PageSize: homeRecentBattles}.Normalize())
		if err != nil {
			return fmt.Errorf("list recent battles: %w", err)
		}
		out.Recent = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, _, err := s.battles.List(ctx, battle.Filter{Meta: &metaOnly, Sort: battle.SortRecent, PageSize: homeMetaBattles}.Normalize())
		if err != nil {
			return fmt.Errorf("list meta battles: %w", err)
		}
		out.Meta = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		all, err := s.battles.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list battles: %w", err)
		}
		top, err := rankKnightUsage(ctx, s.knights, battle.CountKnightUsage(all), homeTopKnights)
		if err != nil {
			return err
		}
		out.TopKnights = top
		out.Totals.Battles = len(all)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.knights.Count(ctx)
		if err != nil {
			return fmt.Errorf("count knights: %w", err)
		}
		out.Totals.Knights = n
		return nil
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.profiles.Count(ctx)
		if err != nil {
			return fmt.Errorf("count profiles: %w", err)
		}
		out.Totals.Members = n
		return nil
	})
	if err := p.Wait(); err != nil {
		return Overview{}, err
	}

	rendered := append(append([]battle.Battle{}, out.Recent...), out.Meta...)
	var err error
	if out.Knights, err = knightIndexFor(ctx, s.knights, rendered...); err != nil {
		return Overview{}, err
	}
	if out.Stigmas, err = stigmaIndexFor(ctx, s.stigmas, rendered...); err != nil {
		return Overview{}, err
	}
	return out, nil
}
