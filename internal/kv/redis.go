package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client    redis.Cmdable
	keyPrefix string
}

// NewRedisStore stores every blob under keyPrefix+key with no expiry.
func NewRedisStore(client redis.Cmdable, keyPrefix string) Store {
	return &redisStore{client: client, keyPrefix: keyPrefix}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.keyPrefix+key, value, 0).Err()
}
