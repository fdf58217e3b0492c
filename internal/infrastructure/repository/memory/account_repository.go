package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
)

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Register writes the account and its profile under one lock, the in-memory
// counterpart of the transactional insert.
func (r *AccountRepository) Register(ctx context.Context, account user.Account, p profile.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.ID]; exists {
		return duplicateError("accounts_public_id_key")
	}
	for _, existing := range r.store.accounts {
		if existing.Email == account.Email {
			return duplicateError("accounts_email_key")
		}
	}
	if r.store.displayNameTaken(p.UserID, p.DisplayName) {
		return duplicateError("profiles_display_name_key")
	}

	r.store.accounts[account.ID] = account
	r.store.profiles[p.UserID] = p
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (user.Account, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.accounts {
		if item.Email == email {
			return item, true, nil
		}
	}
	return user.Account{}, false, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (user.Account, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.accounts[id]
	return item, ok, nil
}

func (r *AccountRepository) ListByIDs(ctx context.Context, ids []string) ([]user.Account, error) {
	r.store.mu.RLock()
	out := make([]user.Account, 0, len(ids))
	for id := range idSet(ids) {
		if item, ok := r.store.accounts[id]; ok {
			out = append(out, item)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteAccount(id)
	return nil
}
