package knight

import "context"

// Repository describes knight persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Knight, error)
	GetByID(ctx context.Context, id string) (Knight, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]Knight, error)
	// ListByIDPrefix returns knights whose id starts with prefix, oldest first.
	ListByIDPrefix(ctx context.Context, prefix string) ([]Knight, error)
	Create(ctx context.Context, k Knight) error
	Update(ctx context.Context, k Knight) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
