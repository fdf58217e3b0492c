package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/knight-arena/internal/domain/reaction"
)

// ReactionRepository keys reactions by (battle, user), mirroring the unique
// constraint on the reactions table.
type ReactionRepository struct {
	store *Store
}

func NewReactionRepository(store *Store) *ReactionRepository {
	return &ReactionRepository{store: store}
}

func (r *ReactionRepository) ListByBattle(ctx context.Context, battleID string) ([]reaction.Reaction, error) {
	r.store.mu.RLock()
	out := make([]reaction.Reaction, 0)
	for _, item := range r.store.reactions {
		if item.BattleID == battleID {
			out = append(out, item)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ReactionRepository) Get(ctx context.Context, battleID, userID string) (reaction.Reaction, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.reactions[pairKey(battleID, userID)]
	return item, ok, nil
}

func (r *ReactionRepository) Upsert(ctx context.Context, item reaction.Reaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := pairKey(item.BattleID, item.UserID)
	if existing, ok := r.store.reactions[key]; ok {
		existing.Type = item.Type
		existing.UpdatedAt = item.UpdatedAt
		r.store.reactions[key] = existing
		return nil
	}
	r.store.reactions[key] = item
	return nil
}

func (r *ReactionRepository) Delete(ctx context.Context, battleID, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.reactions, pairKey(battleID, userID))
	return nil
}
