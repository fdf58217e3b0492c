package comment

import "context"

type Repository interface {
	// ListByBattle returns comments oldest first.
	ListByBattle(ctx context.Context, battleID string) ([]Comment, error)
	GetByID(ctx context.Context, id string) (Comment, bool, error)
	Create(ctx context.Context, c Comment) error
	Delete(ctx context.Context, id string) error
}
