package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/knight-arena/internal/domain/comment"
)

type CommentRepository struct {
	store *Store
}

func NewCommentRepository(store *Store) *CommentRepository {
	return &CommentRepository{store: store}
}

func (r *CommentRepository) ListByBattle(ctx context.Context, battleID string) ([]comment.Comment, error) {
	r.store.mu.RLock()
	out := make([]comment.Comment, 0)
	for _, item := range r.store.comments {
		if item.BattleID == battleID {
			out = append(out, item)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (comment.Comment, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.comments[id]
	return item, ok, nil
}

func (r *CommentRepository) Create(ctx context.Context, c comment.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.comments[c.ID]; exists {
		return duplicateError("comments_public_id_key")
	}
	r.store.comments[c.ID] = c
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteCommentTree(id)
	return nil
}
