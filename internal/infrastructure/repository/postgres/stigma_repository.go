package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

type StigmaRepository struct {
	db *sqlx.DB
}

func NewStigmaRepository(db *sqlx.DB) *StigmaRepository {
	return &StigmaRepository{db: db}
}

func (r *StigmaRepository) List(ctx context.Context) ([]stigma.Stigma, error) {
	return r.selectStigmas(ctx, qb.Select("*").From("stigmas").OrderBy("LOWER(name)"))
}

func (r *StigmaRepository) GetByID(ctx context.Context, id string) (stigma.Stigma, bool, error) {
	query, args, err := qb.Select("*").From("stigmas").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return stigma.Stigma{}, false, fmt.Errorf("build get stigma query: %w", err)
	}

	var row stigmaTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stigma.Stigma{}, false, nil
		}
		return stigma.Stigma{}, false, fmt.Errorf("get stigma: %w", err)
	}
	return stigmaFromRow(row), true, nil
}

func (r *StigmaRepository) ListByIDs(ctx context.Context, ids []string) ([]stigma.Stigma, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []stigma.Stigma{}, nil
	}
	return r.selectStigmas(ctx, qb.Select("*").From("stigmas").Where(qb.InStrings("public_id", ids)))
}

func (r *StigmaRepository) selectStigmas(ctx context.Context, builder *qb.SelectBuilder) ([]stigma.Stigma, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stigmas query: %w", err)
	}

	var rows []stigmaTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stigmas: %w", err)
	}

	out := make([]stigma.Stigma, 0, len(rows))
	for _, row := range rows {
		out = append(out, stigmaFromRow(row))
	}
	return out, nil
}

func (r *StigmaRepository) Create(ctx context.Context, s stigma.Stigma) error {
	query, args, err := qb.InsertModel("stigmas", stigmaTableModel{
		PublicID:  s.ID,
		Name:      s.Name,
		ImageURL:  s.ImageURL,
		CreatedAt: s.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert stigma query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stigma: %w", err)
	}
	return nil
}
