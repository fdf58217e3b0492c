package user

import (
	"context"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
)

// Repository persists accounts. Register stores the account and its profile
// atomically.
type Repository interface {
	Register(ctx context.Context, account Account, p profile.Profile) error
	GetByEmail(ctx context.Context, email string) (Account, bool, error)
	GetByID(ctx context.Context, id string) (Account, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]Account, error)
	Delete(ctx context.Context, id string) error
}
