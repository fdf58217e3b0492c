package battle

import "context"

// Repository describes battle persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Battle, int, error)
	ListAll(ctx context.Context) ([]Battle, error)
	ListByCreator(ctx context.Context, userID string) ([]Battle, error)
	// ListInvolving returns battles where any of knightIDs appears on either team.
	ListInvolving(ctx context.Context, knightIDs []string) ([]Battle, error)
	GetByID(ctx context.Context, id string) (Battle, bool, error)
	Create(ctx context.Context, b Battle) error
	SetMeta(ctx context.Context, id string, meta bool) error
	Delete(ctx context.Context, id string) error
}
