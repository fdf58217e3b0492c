package stigma

import "context"

type Repository interface {
	List(ctx context.Context) ([]Stigma, error)
	GetByID(ctx context.Context, id string) (Stigma, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]Stigma, error)
	Create(ctx context.Context, s Stigma) error
}
