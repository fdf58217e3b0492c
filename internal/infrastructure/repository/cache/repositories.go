package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/knight-arena/internal/domain/knight"
	"github.com/riskibarqy/knight-arena/internal/domain/profile"
	"github.com/riskibarqy/knight-arena/internal/domain/stigma"
	"github.com/riskibarqy/knight-arena/internal/domain/user"
	basecache "github.com/riskibarqy/knight-arena/internal/platform/cache"
)

const (
	knightPrefix  = "knight:"
	stigmaPrefix  = "stigma:"
	profilePrefix = "profile:"
)

type cachedLookup[T any] struct {
	value  T
	exists bool
}

func idsKey(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// KnightRepository caches catalog reads; any write drops every knight entry.
type KnightRepository struct {
	next  knight.Repository
	cache *basecache.Store
}

func NewKnightRepository(next knight.Repository, cache *basecache.Store) *KnightRepository {
	return &KnightRepository{next: next, cache: cache}
}

func (r *KnightRepository) List(ctx context.Context, filter knight.Filter) ([]knight.Knight, error) {
	key := knightPrefix + "list:" + strings.ToLower(strings.TrimSpace(filter.Search))
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]knight.Knight, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]knight.Knight(nil), items...), nil
}

func (r *KnightRepository) GetByID(ctx context.Context, id string) (knight.Knight, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, knightPrefix+"id:"+id, func(ctx context.Context) (cachedLookup[knight.Knight], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return cachedLookup[knight.Knight]{value: item, exists: exists}, err
	})
	if err != nil {
		return knight.Knight{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *KnightRepository) ListByIDs(ctx context.Context, ids []string) ([]knight.Knight, error) {
	items, err := basecache.Load(ctx, r.cache, knightPrefix+"ids:"+idsKey(ids), func(ctx context.Context) ([]knight.Knight, error) {
		return r.next.ListByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return append([]knight.Knight(nil), items...), nil
}

func (r *KnightRepository) ListByIDPrefix(ctx context.Context, prefix string) ([]knight.Knight, error) {
	items, err := basecache.Load(ctx, r.cache, knightPrefix+"prefix:"+prefix, func(ctx context.Context) ([]knight.Knight, error) {
		return r.next.ListByIDPrefix(ctx, prefix)
	})
	if err != nil {
		return nil, err
	}
	return append([]knight.Knight(nil), items...), nil
}

func (r *KnightRepository) Count(ctx context.Context) (int, error) {
	return basecache.Load(ctx, r.cache, knightPrefix+"count", r.next.Count)
}

func (r *KnightRepository) Create(ctx context.Context, k knight.Knight) error {
	defer r.cache.DeletePrefix(ctx, knightPrefix)
	return r.next.Create(ctx, k)
}

func (r *KnightRepository) Update(ctx context.Context, k knight.Knight) error {
	defer r.cache.DeletePrefix(ctx, knightPrefix)
	return r.next.Update(ctx, k)
}

func (r *KnightRepository) Delete(ctx context.Context, id string) error {
	defer r.cache.DeletePrefix(ctx, knightPrefix)
	defer r.cache.DeletePrefix(ctx, profilePrefix)
	return r.next.Delete(ctx, id)
}

type StigmaRepository struct {
	next  stigma.Repository
	cache *basecache.Store
}

func NewStigmaRepository(next stigma.Repository, cache *basecache.Store) *StigmaRepository {
	return &StigmaRepository{next: next, cache: cache}
}

func (r *StigmaRepository) List(ctx context.Context) ([]stigma.Stigma, error) {
	items, err := basecache.Load(ctx, r.cache, stigmaPrefix+"list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]stigma.Stigma(nil), items...), nil
}

func (r *StigmaRepository) GetByID(ctx context.Context, id string) (stigma.Stigma, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, stigmaPrefix+"id:"+id, func(ctx context.Context) (cachedLookup[stigma.Stigma], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return cachedLookup[stigma.Stigma]{value: item, exists: exists}, err
	})
	if err != nil {
		return stigma.Stigma{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *StigmaRepository) ListByIDs(ctx context.Context, ids []string) ([]stigma.Stigma, error) {
	items, err := basecache.Load(ctx, r.cache, stigmaPrefix+"ids:"+idsKey(ids), func(ctx context.Context) ([]stigma.Stigma, error) {
		return r.next.ListByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return append([]stigma.Stigma(nil), items...), nil
}

func (r *StigmaRepository) Create(ctx context.Context, s stigma.Stigma) error {
	defer r.cache.DeletePrefix(ctx, stigmaPrefix)
	return r.next.Create(ctx, s)
}

// ProfileRepository memoizes single-profile lookups, which back the admin
// check on every privileged request. Listings always hit the next layer.
type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, profilePrefix+"id:"+userID, func(ctx context.Context) (cachedLookup[profile.Profile], error) {
		item, exists, err := r.next.GetByUserID(ctx, userID)
		return cachedLookup[profile.Profile]{value: item, exists: exists}, err
	})
	if err != nil {
		return profile.Profile{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ProfileRepository) List(ctx context.Context, filter profile.Filter) ([]profile.Profile, error) {
	return r.next.List(ctx, filter)
}

func (r *ProfileRepository) ListByUserIDs(ctx context.Context, userIDs []string) ([]profile.Profile, error) {
	return r.next.ListByUserIDs(ctx, userIDs)
}

func (r *ProfileRepository) ListByIDPrefix(ctx context.Context, prefix string) ([]profile.Profile, error) {
	return r.next.ListByIDPrefix(ctx, prefix)
}

func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	return r.next.Count(ctx)
}

func (r *ProfileRepository) Update(ctx context.Context, p profile.Profile) error {
	defer r.cache.Delete(ctx, profilePrefix+"id:"+p.UserID)
	return r.next.Update(ctx, p)
}

// AccountRepository passes through to next and drops cached profiles that an
// account write makes stale.
type AccountRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewAccountRepository(next user.Repository, cache *basecache.Store) *AccountRepository {
	return &AccountRepository{next: next, cache: cache}
}

func (r *AccountRepository) Register(ctx context.Context, account user.Account, p profile.Profile) error {
	defer r.cache.Delete(ctx, profilePrefix+"id:"+p.UserID)
	return r.next.Register(ctx, account, p)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (user.Account, bool, error) {
	return r.next.GetByEmail(ctx, email)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (user.Account, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *AccountRepository) ListByIDs(ctx context.Context, ids []string) ([]user.Account, error) {
	return r.next.ListByIDs(ctx, ids)
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	defer r.cache.Delete(ctx, profilePrefix+"id:"+id)
	return r.next.Delete(ctx, id)
}
