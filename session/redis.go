package session

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps the session under a single key. Entries never expire.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) SetCurrentUserID(ctx context.Context, userID string) error {
	return s.client.Set(ctx, s.key, userID, 0).Err()
}

func (s *RedisStore) CurrentUserID(ctx context.Context) (string, error) {
	userID, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return userID, err
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
