package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RecordStore is the production ports.RecordStore implementation: a durable
// string-keyed store over Redis. Keys are namespaced with an optional prefix
// so several deployments can share one instance.
type RecordStore struct {
	client *redis.Client
	prefix string
}

// NewRecordStore creates a RecordStore wrapping the given Redis client.
func NewRecordStore(client *redis.Client, prefix string) *RecordStore {
	return &RecordStore{client: client, prefix: prefix}
}

func (s *RecordStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("record store get %q: %w", key, err)
	}
	return val, true, nil
}

func (s *RecordStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("record store set %q: %w", key, err)
	}
	return nil
}

func (s *RecordStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("record store remove %q: %w", key, err)
	}
	return nil
}
