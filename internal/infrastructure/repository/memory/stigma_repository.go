package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
)

type StigmaRepository struct {
	store *Store
}

func NewStigmaRepository(store *Store, seed []stigma.Stigma) *StigmaRepository {
	store.mu.Lock()
	for _, item := range seed {
		store.stigmas[item.ID] = item
	}
	store.mu.Unlock()

	return &StigmaRepository{store: store}
}

func (r *StigmaRepository) List(ctx context.Context) ([]stigma.Stigma, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]stigma.Stigma, 0, len(r.store.stigmas))
	for _, item := range r.store.stigmas {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *StigmaRepository) GetByID(ctx context.Context, id string) (stigma.Stigma, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.stigmas[id]
	return item, ok, nil
}

func (r *StigmaRepository) ListByIDs(ctx context.Context, ids []string) ([]stigma.Stigma, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]stigma.Stigma, 0, len(ids))
	for id := range idSet(ids) {
		if item, ok := r.store.stigmas[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *StigmaRepository) Create(ctx context.Context, s stigma.Stigma) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.stigmas {
		if existing.ID == s.ID {
			return duplicateError("stigmas_public_id_key")
		}
		if strings.EqualFold(existing.Name, s.Name) {
			return duplicateError("stigmas_name_key")
		}
	}
	r.store.stigmas[s.ID] = s
	return nil
}
