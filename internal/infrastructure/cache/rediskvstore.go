package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKVStore keeps records under prefix+key. Freshness is decided by the
// record itself; ttl only bounds how long stale records linger (0 keeps
// them).
type RedisKVStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisKVStore(client *redis.Client, prefix string, ttl time.Duration) *RedisKVStore {
	return &RedisKVStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return data, true, nil
}

func (s *RedisKVStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s in redis: %w", key, err)
	}
	return nil
}
