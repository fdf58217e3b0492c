package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

const seedConflict = "ON CONFLICT (public_id) DO NOTHING"

// BootstrapSeed loads the starter knight and stigma catalog when the knights
// table is empty. Both catalogs go in as one multi-row insert each.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var existing int
	if err := db.GetContext(ctx, &existing, `SELECT COUNT(1) FROM knights`); err != nil {
		return fmt.Errorf("count knights for seed: %w", err)
	}
	if existing > 0 {
		return nil
	}

	knights := qb.InsertInto("knights").
		Columns("public_id", "name", "image_url", "created_at", "updated_at").
		Suffix(seedConflict)
	for _, k := range memory.SeedKnights() {
		knights.Values(k.ID, k.Name, k.ImageURL, k.CreatedAt, k.UpdatedAt)
	}

	stigmas := qb.InsertInto("stigmas").
		Columns("public_id", "name", "image_url", "created_at").
		Suffix(seedConflict)
	for _, s := range memory.SeedStigmas() {
		stigmas.Values(s.ID, s.Name, s.ImageURL, s.CreatedAt)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, insert := range []*qb.InsertBuilder{knights, stigmas} {
		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build seed insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("run seed insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
