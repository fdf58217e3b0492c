package session

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/session"
)

// MemoryStore keeps sessions in process. Expired entries read as missing and
// are dropped lazily.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]session.Session
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]session.Session),
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, item session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[item.ID] = item
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (session.Session, bool, error) {
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return session.Session{}, false, nil
	}
	if item.Expired(s.now()) {
		_ = s.Delete(ctx, id)
		return session.Session{}, false, nil
	}
	return item, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

func (s *MemoryStore) DeleteByUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.UserID == userID {
			delete(s.items, id)
		}
	}
	return nil
}
