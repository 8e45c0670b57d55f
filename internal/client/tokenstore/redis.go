package tokenstore

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the credential under "<prefix>:token". Several clients
// may share one Redis by using distinct prefixes.
type RedisStore struct {
	rdb redis.UniversalClient
	key string
}

func NewRedisStore(rdb redis.UniversalClient, prefix string) *RedisStore {
	key := common.TokenStorageKey
	if prefix != "" {
		key = prefix + ":" + key
	}
	return &RedisStore{rdb: rdb, key: key}
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	if err := s.rdb.Set(ctx, s.key, token, 0).Err(); err != nil {
		return unavailable("save", err)
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context) (string, error) {
	token, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", unavailable("read", err)
	}
	return token, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return unavailable("clear", err)
	}
	return nil
}
