package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/knight-arena/internal/domain/userknight"
)

type UserKnightRepository struct {
	store *Store
}

func NewUserKnightRepository(store *Store) *UserKnightRepository {
	return &UserKnightRepository{store: store}
}

func (r *UserKnightRepository) ListByUser(ctx context.Context, userID string) ([]userknight.UserKnight, error) {
	r.store.mu.RLock()
	out := make([]userknight.UserKnight, 0)
	for _, item := range r.store.userKnights {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].KnightID < out[j].KnightID })
	return out, nil
}

func (r *UserKnightRepository) Upsert(ctx context.Context, uk userknight.UserKnight) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.userKnights[pairKey(uk.UserID, uk.KnightID)] = uk
	return nil
}
