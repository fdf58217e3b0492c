package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

const battleRecentOrder = "created_at DESC, public_id DESC"

type BattleRepository struct {
	db *sqlx.DB
}

func NewBattleRepository(db *sqlx.DB) *BattleRepository {
	return &BattleRepository{db: db}
}

func battleConditions(filter battle.Filter) []qb.Condition {
	conds := make([]qb.Condition, 0, 4)
	if filter.Category != "" {
		conds = append(conds, qb.Expr("LOWER(category) = LOWER(?)", filter.Category))
	}
	if filter.Meta != nil {
		conds = append(conds, qb.Eq("meta", *filter.Meta))
	}
	if filter.KnightID != "" {
		conds = append(conds, qb.Or(
			qb.ArrayContains("winner_team", filter.KnightID),
			qb.ArrayContains("loser_team", filter.KnightID),
		))
	}
	if filter.CreatedBy != "" {
		conds = append(conds, qb.Eq("created_by", filter.CreatedBy))
	}
	return conds
}

func (r *BattleRepository) List(ctx context.Context, filter battle.Filter) ([]battle.Battle, int, error) {
	filter = filter.Normalize()

	order := battleRecentOrder
	if filter.Sort == battle.SortOldest {
		order = "created_at ASC, public_id ASC"
	}

	builder := qb.Select("*").From("battles").Where(battleConditions(filter)...)

	countQuery, countArgs, err := builder.Count().ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count battles query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count battles: %w", err)
	}
	if total == 0 {
		return []battle.Battle{}, 0, nil
	}

	items, err := r.selectBattles(ctx, builder.OrderBy(order).Page(filter.Page, filter.PageSize))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *BattleRepository) ListAll(ctx context.Context) ([]battle.Battle, error) {
	return r.selectBattles(ctx, qb.Select("*").From("battles").OrderBy(battleRecentOrder))
}

func (r *BattleRepository) ListByCreator(ctx context.Context, userID string) ([]battle.Battle, error) {
	return r.selectBattles(ctx, qb.Select("*").From("battles").
		Where(qb.Eq("created_by", userID)).
		OrderBy(battleRecentOrder))
}

func (r *BattleRepository) ListInvolving(ctx context.Context, knightIDs []string) ([]battle.Battle, error) {
	knightIDs = dedupe(knightIDs)
	if len(knightIDs) == 0 {
		return []battle.Battle{}, nil
	}
	ids := pq.Array(knightIDs)
	return r.selectBattles(ctx, qb.Select("*").From("battles").
		Where(qb.Expr("(winner_team && ? OR loser_team && ?)", ids, ids)).
		OrderBy(battleRecentOrder))
}

func (r *BattleRepository) selectBattles(ctx context.Context, builder *qb.SelectBuilder) ([]battle.Battle, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select battles query: %w", err)
	}

	var rows []battleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select battles: %w", err)
	}
	return battlesFromRows(rows), nil
}

func (r *BattleRepository) GetByID(ctx context.Context, id string) (battle.Battle, bool, error) {
	query, args, err := qb.Select("*").From("battles").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return battle.Battle{}, false, fmt.Errorf("build get battle query: %w", err)
	}

	var row battleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return battle.Battle{}, false, nil
		}
		return battle.Battle{}, false, fmt.Errorf("get battle: %w", err)
	}
	return battleFromRow(row), true, nil
}

func (r *BattleRepository) Create(ctx context.Context, b battle.Battle) error {
	query, args, err := qb.InsertModel("battles", battleTableModel{
		PublicID:       b.ID,
		WinnerTeam:     pq.StringArray(b.WinnerTeam),
		LoserTeam:      pq.StringArray(b.LoserTeam),
		WinnerStigmaID: toNullString(b.WinnerStigmaID),
		LoserStigmaID:  toNullString(b.LoserStigmaID),
		Category:       b.Category,
		Meta:           b.Meta,
		CreatedBy:      toNullString(b.CreatedBy),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert battle query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert battle: %w", err)
	}
	return nil
}

func (r *BattleRepository) SetMeta(ctx context.Context, id string, meta bool) error {
	query, args, err := qb.Update("battles").
		Set("meta", meta).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set battle meta query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set battle meta: %w", err)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for comments and reactions.
func (r *BattleRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("battles").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete battle query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete battle: %w", err)
	}
	return nil
}
