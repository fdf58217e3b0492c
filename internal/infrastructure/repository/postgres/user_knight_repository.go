package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/domain/userknight"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

type UserKnightRepository struct {
	db *sqlx.DB
}

func NewUserKnightRepository(db *sqlx.DB) *UserKnightRepository {
	return &UserKnightRepository{db: db}
}

func (r *UserKnightRepository) ListByUser(ctx context.Context, userID string) ([]userknight.UserKnight, error) {
	query, args, err := qb.Select("*").From("user_knights").
		Where(qb.Eq("user_id", userID)).
		OrderBy("knight_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user knights query: %w", err)
	}

	var rows []userKnightTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list user knights: %w", err)
	}

	out := make([]userknight.UserKnight, 0, len(rows))
	for _, row := range rows {
		out = append(out, userKnightFromRow(row))
	}
	return out, nil
}

func (r *UserKnightRepository) Upsert(ctx context.Context, uk userknight.UserKnight) error {
	query, args, err := qb.InsertModel("user_knights", userKnightTableModel{
		UserID:    uk.UserID,
		KnightID:  uk.KnightID,
		Owned:     uk.Owned,
		UpdatedAt: uk.UpdatedAt,
	}, `ON CONFLICT (user_id, knight_id)
DO UPDATE SET
    owned = EXCLUDED.owned,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert user knight query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user knight: %w", err)
	}
	return nil
}
