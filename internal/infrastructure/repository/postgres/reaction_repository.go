package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

type ReactionRepository struct {
	db *sqlx.DB
}

func NewReactionRepository(db *sqlx.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

func (r *ReactionRepository) ListByBattle(ctx context.Context, battleID string) ([]reaction.Reaction, error) {
	query, args, err := qb.Select("*").From("reactions").
		Where(qb.Eq("battle_id", battleID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list reactions query: %w", err)
	}

	var rows []reactionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}

	out := make([]reaction.Reaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, reactionFromRow(row))
	}
	return out, nil
}

func (r *ReactionRepository) Get(ctx context.Context, battleID, userID string) (reaction.Reaction, bool, error) {
	query, args, err := qb.Select("*").From("reactions").
		Where(qb.Eq("battle_id", battleID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return reaction.Reaction{}, false, fmt.Errorf("build get reaction query: %w", err)
	}

	var row reactionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return reaction.Reaction{}, false, nil
		}
		return reaction.Reaction{}, false, fmt.Errorf("get reaction: %w", err)
	}
	return reactionFromRow(row), true, nil
}

func (r *ReactionRepository) Upsert(ctx context.Context, item reaction.Reaction) error {
	query, args, err := qb.InsertModel("reactions", reactionTableModel{
		PublicID:  item.ID,
		BattleID:  item.BattleID,
		UserID:    item.UserID,
		Type:      string(item.Type),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, `ON CONFLICT (battle_id, user_id)
DO UPDATE SET
    type = EXCLUDED.type,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert reaction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert reaction: %w", err)
	}
	return nil
}

func (r *ReactionRepository) Delete(ctx context.Context, battleID, userID string) error {
	query, args, err := qb.DeleteFrom("reactions").
		Where(qb.Eq("battle_id", battleID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete reaction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}
