package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

type KnightRepository struct {
	db *sqlx.DB
}

func NewKnightRepository(db *sqlx.DB) *KnightRepository {
	return &KnightRepository{db: db}
}

func (r *KnightRepository) List(ctx context.Context, filter knight.Filter) ([]knight.Knight, error) {
	builder := qb.Select("*").From("knights").OrderBy("LOWER(name)", "public_id")
	if filter.Search != "" {
		builder = builder.Where(qb.ILike("name", filter.Search))
	}
	return r.selectKnights(ctx, builder, "list knights")
}

func (r *KnightRepository) GetByID(ctx context.Context, id string) (knight.Knight, bool, error) {
	query, args, err := qb.Select("*").From("knights").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return knight.Knight{}, false, fmt.Errorf("build get knight query: %w", err)
	}

	var row knightTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return knight.Knight{}, false, nil
		}
		return knight.Knight{}, false, fmt.Errorf("get knight: %w", err)
	}
	return knightFromRow(row), true, nil
}

func (r *KnightRepository) ListByIDs(ctx context.Context, ids []string) ([]knight.Knight, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []knight.Knight{}, nil
	}
	builder := qb.Select("*").From("knights").
		Where(qb.InStrings("public_id", ids)).
		OrderBy("public_id")
	return r.selectKnights(ctx, builder, "list knights by ids")
}

func (r *KnightRepository) ListByIDPrefix(ctx context.Context, prefix string) ([]knight.Knight, error) {
	builder := qb.Select("*").From("knights").
		Where(qb.Expr("starts_with(public_id, ?)", prefix)).
		OrderBy("created_at", "public_id")
	return r.selectKnights(ctx, builder, "list knights by id prefix")
}

func (r *KnightRepository) selectKnights(ctx context.Context, builder *qb.SelectBuilder, op string) ([]knight.Knight, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []knightTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]knight.Knight, 0, len(rows))
	for _, row := range rows {
		out = append(out, knightFromRow(row))
	}
	return out, nil
}

func (r *KnightRepository) Create(ctx context.Context, k knight.Knight) error {
	query, args, err := qb.InsertModel("knights", knightTableModel{
		PublicID:  k.ID,
		Name:      k.Name,
		ImageURL:  k.ImageURL,
		CreatedBy: toNullString(k.CreatedBy),
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert knight query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert knight: %w", err)
	}
	return nil
}

func (r *KnightRepository) Update(ctx context.Context, k knight.Knight) error {
	query, args, err := qb.Update("knights").
		Set("name", k.Name).
		Set("image_url", k.ImageURL).
		Set("updated_at", k.UpdatedAt).
		Where(qb.Eq("public_id", k.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update knight query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update knight: %w", err)
	}
	return nil
}

func (r *KnightRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("knights").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete knight query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete knight: %w", err)
	}
	return nil
}

func (r *KnightRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("*").From("knights").Count().ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count knights query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count knights: %w", err)
	}
	return count, nil
}
