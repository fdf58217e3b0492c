package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/knight-arena/internal/domain/comment"
	qb "github.com/riskibarqy/knight-arena/internal/platform/querybuilder"
)

type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) ListByBattle(ctx context.Context, battleID string) ([]comment.Comment, error) {
	query, args, err := qb.Select("*").From("comments").
		Where(qb.Eq("battle_id", battleID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list comments query: %w", err)
	}

	var rows []commentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]comment.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, commentFromRow(row))
	}
	return out, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (comment.Comment, bool, error) {
	query, args, err := qb.Select("*").From("comments").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return comment.Comment{}, false, fmt.Errorf("build get comment query: %w", err)
	}

	var row commentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return comment.Comment{}, false, nil
		}
		return comment.Comment{}, false, fmt.Errorf("get comment: %w", err)
	}
	return commentFromRow(row), true, nil
}

func (r *CommentRepository) Create(ctx context.Context, c comment.Comment) error {
	query, args, err := qb.InsertModel("comments", commentTableModel{
		PublicID:  c.ID,
		BattleID:  c.BattleID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		ParentID:  toNullString(c.ParentID),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert comment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for replies.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("comments").Where(qb.Eq("public_id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete comment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
