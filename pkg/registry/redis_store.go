package registry

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the serialized collection under one fixed key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Read(ctx context.Context) ([]byte, bool, error) {
	document, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return document, true, nil
}

func (s *RedisStore) Write(ctx context.Context, document []byte) error {
	return s.client.Set(ctx, s.key, document, 0).Err()
}
