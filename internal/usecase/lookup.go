package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
)

func knightIndexFor(ctx context.Context, repo knight.Repository, battles ...battle.Battle) (battle.KnightIndex, error) {
	ids := battle.CollectKnightIDs(battles...)
	if len(ids) == 0 {
		return battle.KnightIndex{}, nil
	}
	knights, err := repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list knights by ids: %w", err)
	}
	return battle.NewKnightIndex(knights), nil
}

func stigmaIndexFor(ctx context.Context, repo stigma.Repository, battles ...battle.Battle) (stigma.Index, error) {
	ids := battle.CollectStigmaIDs(battles...)
	if len(ids) == 0 {
		return stigma.Index{}, nil
	}
	items, err := repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list stigmas by ids: %w", err)
	}
	return stigma.NewIndex(items), nil
}

func profilesByID(ctx context.Context, repo profile.Repository, userIDs []string) (map[string]profile.Profile, error) {
	out := make(map[string]profile.Profile, len(userIDs))
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}
	items, err := repo.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list profiles by ids: %w", err)
	}
	for _, p := range items {
		out[p.UserID] = p
	}
	return out, nil
}
