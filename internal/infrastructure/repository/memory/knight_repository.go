package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/knight-arena/internal/domain/knight"
)

type KnightRepository struct {
	store *Store
}

func NewKnightRepository(store *Store, seed []knight.Knight) *KnightRepository {
	store.mu.Lock()
	for _, item := range seed {
		store.knights[item.ID] = item
	}
	store.mu.Unlock()

	return &KnightRepository{store: store}
}

func (r *KnightRepository) List(ctx context.Context, filter knight.Filter) ([]knight.Knight, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.TrimSpace(filter.Search)
	out := make([]knight.Knight, 0, len(r.store.knights))
	for _, item := range r.store.knights {
		if containsFold(item.Name, search) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *KnightRepository) GetByID(ctx context.Context, id string) (knight.Knight, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.knights[id]
	return item, ok, nil
}

func (r *KnightRepository) ListByIDs(ctx context.Context, ids []string) ([]knight.Knight, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]knight.Knight, 0, len(ids))
	for id := range idSet(ids) {
		if item, ok := r.store.knights[id]; ok {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *KnightRepository) ListByIDPrefix(ctx context.Context, prefix string) ([]knight.Knight, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]knight.Knight, 0)
	for _, item := range r.store.knights {
		if strings.HasPrefix(item.ID, prefix) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *KnightRepository) Create(ctx context.Context, k knight.Knight) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.knights[k.ID]; exists {
		return duplicateError("knights_public_id_key")
	}
	if r.nameTaken(k) {
		return duplicateError("knights_name_key")
	}
	r.store.knights[k.ID] = k
	return nil
}

func (r *KnightRepository) Update(ctx context.Context, k knight.Knight) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.knights[k.ID]; !exists {
		return fmt.Errorf("knight not found: %s", k.ID)
	}
	if r.nameTaken(k) {
		return duplicateError("knights_name_key")
	}
	r.store.knights[k.ID] = k
	return nil
}

// nameTaken reports whether another knight uses the same name. Callers hold mu.
func (r *KnightRepository) nameTaken(k knight.Knight) bool {
	for _, existing := range r.store.knights {
		if existing.ID != k.ID && strings.EqualFold(existing.Name, k.Name) {
			return true
		}
	}
	return false
}

func (r *KnightRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.knights, id)
	for key, uk := range r.store.userKnights {
		if uk.KnightID == id {
			delete(r.store.userKnights, key)
		}
	}
	for userID, p := range r.store.profiles {
		if p.FavoriteKnightID == id {
			p.FavoriteKnightID = ""
			r.store.profiles[userID] = p
		}
	}
	return nil
}

func (r *KnightRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.knights), nil
}
