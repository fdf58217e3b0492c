package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) List(ctx context.Context, filter profile.Filter) ([]profile.Profile, error) {
	conds := make([]qb.Condition, 0, 2)
	if filter.Search != "" {
		conds = append(conds, qb.ILike("display_name", filter.Search))
	}
	if filter.ActiveOnly {
		conds = append(conds, qb.Eq("active", true))
	}
	return r.selectProfiles(ctx, qb.Select("*").From("profiles").
		Where(conds...).
		OrderBy("LOWER(display_name)"))
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("profiles").Where(qb.Eq("user_id", userID)).ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	return profileFromRow(row), true, nil
}

func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]profile.Profile, error) {
	userIDs = dedupe(userIDs)
	if len(userIDs) == 0 {
		return []profile.Profile{}, nil
	}
	return r.selectProfiles(ctx, qb.Select("*").From("profiles").Where(qb.InStrings("user_id", userIDs)))
}

func (r *ProfileRepository) ListByIDPrefix(ctx context.Context, prefix string) ([]profile.Profile, error) {
	return r.selectProfiles(ctx, qb.Select("*").From("profiles").
		Where(qb.Expr("starts_with(user_id, ?)", prefix)).
		OrderBy("created_at", "user_id"))
}

func (r *ProfileRepository) selectProfiles(ctx context.Context, builder *qb.SelectBuilder) ([]profile.Profile, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	query, args, err := qb.Update("profiles").
		Set("display_name", p.DisplayName).
		Set("active", p.Active).
		Set("favorite_knight_id", toNullString(p.FavoriteKnightID)).
		Set("role", string(p.Role)).
		Set("updated_at", p.UpdatedAt).
		Where(qb.Eq("user_id", p.UserID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("*").From("profiles").Count().ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count profiles query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return count, nil
}
