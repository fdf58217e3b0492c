package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
)

type ProfileRepository struct {
	store *Store
}

func NewProfileRepository(store *Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

func (r *ProfileRepository) List(ctx context.Context, filter profile.Filter) ([]profile.Profile, error) {
	r.store.mu.RLock()
	search := strings.TrimSpace(filter.Search)
	out := make([]profile.Profile, 0, len(r.store.profiles))
	for _, item := range r.store.profiles {
		if filter.ActiveOnly && !item.Active {
			continue
		}
		if containsFold(item.DisplayName, search) {
			out = append(out, item)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.profiles[userID]
	return item, ok, nil
}

func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]profile.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]profile.Profile, 0, len(userIDs))
	for id := range idSet(userIDs) {
		if item, ok := r.store.profiles[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ProfileRepository) ListByIDPrefix(ctx context.Context, prefix string) ([]profile.Profile, error) {
	r.store.mu.RLock()
	out := make([]profile.Profile, 0)
	for _, item := range r.store.profiles {
		if strings.HasPrefix(item.UserID, prefix) {
			out = append(out, item)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.profiles[p.UserID]; !ok {
		return fmt.Errorf("profile not found: %s", p.UserID)
	}
	if r.store.displayNameTaken(p.UserID, p.DisplayName) {
		return duplicateError("profiles_display_name_key")
	}
	r.store.profiles[p.UserID] = p
	return nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.store.profiles), nil
}

// displayNameTaken reports whether another user holds name. Callers hold mu.
func (s *Store) displayNameTaken(userID, name string) bool {
	for _, existing := range s.profiles {
		if existing.UserID != userID && strings.EqualFold(existing.DisplayName, name) {
			return true
		}
	}
	return false
}
