package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
)

type BattleRepository struct {
	store *Store
}

func NewBattleRepository(store *Store) *BattleRepository {
	return &BattleRepository{store: store}
}

func (r *BattleRepository) List(ctx context.Context, filter battle.Filter) ([]battle.Battle, int, error) {
	filter = filter.Normalize()

	r.store.mu.RLock()
	matched := make([]battle.Battle, 0, len(r.store.battles))
	for _, item := range r.store.battles {
		if matchesFilter(item, filter) {
			matched = append(matched, cloneBattle(item))
		}
	}
	r.store.mu.RUnlock()

	sortBattles(matched, filter.Sort)

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start >= total {
		return []battle.Battle{}, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesFilter(item battle.Battle, filter battle.Filter) bool {
	if filter.Category != "" && !strings.EqualFold(item.Category, filter.Category) {
		return false
	}
	if filter.Meta != nil && item.Meta != *filter.Meta {
		return false
	}
	if filter.KnightID != "" && !item.Involves(filter.KnightID) {
		return false
	}
	if filter.CreatedBy != "" && item.CreatedBy != filter.CreatedBy {
		return false
	}
	return true
}

func (r *BattleRepository) ListAll(ctx context.Context) ([]battle.Battle, error) {
	return r.collect(func(battle.Battle) bool { return true }), nil
}

func (r *BattleRepository) ListByCreator(ctx context.Context, userID string) ([]battle.Battle, error) {
	return r.collect(func(item battle.Battle) bool { return item.CreatedBy == userID }), nil
}

func (r *BattleRepository) ListInvolving(ctx context.Context, knightIDs []string) ([]battle.Battle, error) {
	if len(knightIDs) == 0 {
		return []battle.Battle{}, nil
	}
	return r.collect(func(item battle.Battle) bool {
		for _, id := range knightIDs {
			if item.Involves(id) {
				return true
			}
		}
		return false
	}), nil
}

// collect returns matching battles, most recent first.
func (r *BattleRepository) collect(match func(battle.Battle) bool) []battle.Battle {
	r.store.mu.RLock()
	out := make([]battle.Battle, 0, len(r.store.battles))
	for _, item := range r.store.battles {
		if match(item) {
			out = append(out, cloneBattle(item))
		}
	}
	r.store.mu.RUnlock()

	sortBattles(out, battle.SortRecent)
	return out
}

func (r *BattleRepository) GetByID(ctx context.Context, id string) (battle.Battle, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.battles[id]
	if !ok {
		return battle.Battle{}, false, nil
	}
	return cloneBattle(item), true, nil
}

func (r *BattleRepository) Create(ctx context.Context, b battle.Battle) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.battles[b.ID]; exists {
		return duplicateError("battles_public_id_key")
	}
	r.store.battles[b.ID] = cloneBattle(b)
	return nil
}

func (r *BattleRepository) SetMeta(ctx context.Context, id string, meta bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.battles[id]
	if !ok {
		return fmt.Errorf("battle not found: %s", id)
	}
	item.Meta = meta
	r.store.battles[id] = item
	return nil
}

func (r *BattleRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteBattle(id)
	return nil
}
