package session

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/knight-arena/internal/domain/session"
)

const keyPrefix = "knight-arena:session:"

func sessionKey(id string) string {
	return keyPrefix + id
}

func userIndexKey(userID string) string {
	return keyPrefix + "user:" + userID
}

// RedisStore stores each session as JSON with a TTL and tracks the sessions of
// every user in a set so they can be revoked together.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Save(ctx context.Context, item session.Session) error {
	ttl := item.TTL(s.now())
	if ttl <= 0 {
		return crerr.Newf("session %s is already expired", item.ID)
	}

	payload, err := sonic.Marshal(item)
	if err != nil {
		return crerr.Wrap(err, "marshal session")
	}

	indexKey := userIndexKey(item.UserID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(item.ID), payload, ttl)
		pipe.SAdd(ctx, indexKey, item.ID)
		pipe.ExpireGT(ctx, indexKey, ttl)
		pipe.ExpireNX(ctx, indexKey, ttl)
		return nil
	})
	if err != nil {
		return crerr.Wrapf(err, "save session %s", item.ID)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (session.Session, bool, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if crerr.Is(err, redis.Nil) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, crerr.Wrapf(err, "get session %s", id)
	}

	var item session.Session
	if err := sonic.Unmarshal(raw, &item); err != nil {
		return session.Session{}, false, crerr.Wrapf(err, "decode session %s", id)
	}
	if item.Expired(s.now()) {
		return session.Session{}, false, nil
	}
	return item, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	item, exists, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id))
		if exists {
			pipe.SRem(ctx, userIndexKey(item.UserID), id)
		}
		return nil
	})
	if err != nil {
		return crerr.Wrapf(err, "delete session %s", id)
	}
	return nil
}

func (s *RedisStore) DeleteByUser(ctx context.Context, userID string) error {
	indexKey := userIndexKey(userID)
	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return crerr.Wrapf(err, "list sessions of user %s", userID)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, indexKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return crerr.Wrapf(err, "revoke sessions of user %s", userID)
	}
	return nil
}

// Ping reports whether redis is reachable; used by the readiness check.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return crerr.Wrap(err, "ping redis")
	}
	return nil
}
