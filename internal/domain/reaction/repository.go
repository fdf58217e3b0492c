package reaction

import "context"

// Repository stores reactions keyed by (battle, user).
type Repository interface {
	ListByBattle(ctx context.Context, battleID string) ([]Reaction, error)
	Get(ctx context.Context, battleID, userID string) (Reaction, bool, error)
	// Upsert inserts or replaces the type of the (battle, user) reaction.
	Upsert(ctx context.Context, r Reaction) error
	Delete(ctx context.Context, battleID, userID string) error
}
