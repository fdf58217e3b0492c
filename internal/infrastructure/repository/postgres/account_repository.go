package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Register inserts the account and its profile in one transaction.
func (r *AccountRepository) Register(ctx context.Context, account user.Account, p profile.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin register tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	accountQuery, accountArgs, err := qb.InsertModel("accounts", accountTableModel{
		PublicID:     account.ID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    account.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert account query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, accountQuery, accountArgs...); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	profileQuery, profileArgs, err := qb.InsertModel("profiles", profileTableModel{
		UserID:           p.UserID,
		DisplayName:      p.DisplayName,
		Active:           p.Active,
		FavoriteKnightID: toNullString(p.FavoriteKnightID),
		Role:             string(p.Role),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert profile query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, profileQuery, profileArgs...); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit register tx: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (user.Account, bool, error) {
	return r.getOne(ctx, qb.Eq("email", email))
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (user.Account, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", id))
}

func (r *AccountRepository) getOne(ctx context.Context, cond qb.Condition) (user.Account, bool, error) {
	query, args, err := qb.Select("*").From("accounts").Where(cond).ToSQL()
	if err != nil {
		return user.Account{}, false, fmt.Errorf("build get account query: %w", err)
	}

	var row accountTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Account{}, false, nil
		}
		return user.Account{}, false, fmt.Errorf("get account: %w", err)
	}
	return accountFromRow(row), true, nil
}

func (r *AccountRepository) ListByIDs(ctx context.Context, ids []string) ([]user.Account, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []user.Account{}, nil
	}

	query, args, err := qb.Select("*").From("accounts").
		Where(qb.InStrings("public_id", ids)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list accounts query: %w", err)
	}

	var rows []accountTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	out := make([]user.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, accountFromRow(row))
	}
	return out, nil
}

// Delete removes the account; the schema cascades to profile, comments,
// reactions and owned knights.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("accounts").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete account query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
