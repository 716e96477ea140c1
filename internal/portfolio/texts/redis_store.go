package texts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps overrides as a JSON string under StorageKey.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: StorageKey}
}

func (s *RedisStore) Load(ctx context.Context) (map[string]string, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var texts map[string]string
	if err := json.Unmarshal(raw, &texts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return texts, nil
}

func (s *RedisStore) Save(ctx context.Context, texts map[string]string) error {
	raw, err := json.Marshal(texts)
	if err != nil {
		return fmt.Errorf("marshal site texts: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
