package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mkrupp/homecase-sessiongate/internal/infra/logging"
)

// RedisStoreConfig holds configuration for the Redis session store.
type RedisStoreConfig struct {
	// Addr is the host:port of the Redis server
	Addr string `env:"ADDR" default:"localhost:6379"`
	// Password authenticates against the Redis server
	Password string `env:"PASSWORD" default:""`
	// DB selects the logical database
	DB int `env:"DB" default:"0"`
	// Prefix namespaces all keys written by the store
	Prefix string `env:"PREFIX" default:"sessiongate"`
}

// RedisStore implements Store on top of a Redis server.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
	log    logging.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to the configured server and verifies it responds.
func NewRedisStore(ctx context.Context, cfg RedisStoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{
		redis:  client,
		prefix: prefix,
		log: logging.GetLogger("repo.session.redis_store").With(
			logging.Group("redis", "prefix", prefix),
		),
	}
}

func (s *RedisStore) key(key string) string {
	if s.prefix == "" {
		return key
	}

	return s.prefix + ":" + key
}

// Get implements Store.Get.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("redis get: %w", err)
	}

	return value, true, nil
}

// Set implements Store.Set. Values never expire on their own.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Remove implements Store.Remove.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	s.log.DebugContext(ctx, "value removed", "key", key)

	return nil
}

// Close implements Store.Close by closing the client.
func (s *RedisStore) Close() error {
	if err := s.redis.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}

	return nil
}
