package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/dago-scaffold/internal/metadata"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisKeyPrefix prefixes the key of every saved template config
const RedisKeyPrefix = "scaffold:save:"

// RedisStore keeps the snapshot as a JSON string under a Redis key
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a Redis store for the template identified by id
func NewRedisStore(client *redis.Client, id string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client: client,
		key:    RedisKeyPrefix + id,
		ttl:    ttl,
		logger: logger,
	}
}

// Key returns the Redis key used by the store
func (s *RedisStore) Key() string {
	return s.key
}

// Exists checks if a config has been saved
func (s *RedisStore) Exists(ctx context.Context) (bool, error) {
	result, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return result > 0, nil
}

// Load loads the saved config
func (s *RedisStore) Load(ctx context.Context) (map[string]interface{}, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return decode([]byte(data))
}

// Save overwrites the saved config
func (s *RedisStore) Save(ctx context.Context, data metadata.Context) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := s.client.Set(ctx, s.key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	s.logger.Debug("saved config to redis", zap.String("key", s.key))
	return nil
}

// Delete deletes the saved config
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete config: %w", err)
	}
	return nil
}
