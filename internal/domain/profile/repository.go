package profile

import "context"

// Repository describes profile persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]Profile, error)
	// ListByIDPrefix returns profiles whose user id starts with prefix, oldest first.
	ListByIDPrefix(ctx context.Context, prefix string) ([]Profile, error)
	Update(ctx context.Context, p Profile) error
	Count(ctx context.Context) (int, error)
}
