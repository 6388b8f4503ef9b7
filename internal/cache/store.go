// Package cache is the redis key/value store shared by the content services.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

// Store defines the cache operations the services rely on.
type Store interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	DeleteByPattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}

// Config holds the redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// redisStore implements Store using Redis
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed store and checks the connection.
// Callers treat an error as "caching disabled".
func NewRedisStore(ctx context.Context, cfg Config) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	return &redisStore{client: client}, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *redisStore) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	return count > 0, err
}

// DeleteByPattern removes every key matching a glob pattern using SCAN.
func (s *redisStore) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// GetJSON loads key into dst. It reports false on a miss, a nil store or a
// decode failure.
func GetJSON(ctx context.Context, s Store, key string, dst any) bool {
	if s == nil {
		return false
	}
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			slog.Warn("Cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("Cache entry undecodable", "key", key, "error", err)
		return false
	}
	slog.Debug("Cache hit", "key", key)
	return true
}

// SetJSON stores v under key. Failures are logged, never returned.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	if s == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.Set(ctx, key, string(data), ttl); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}

// Invalidate deletes keys and patterns, logging failures.
func Invalidate(ctx context.Context, s Store, keys []string, patterns ...string) {
	if s == nil {
		return
	}
	if err := s.Delete(ctx, keys...); err != nil {
		slog.Warn("Cache delete failed", "keys", keys, "error", err)
	}
	for _, p := range patterns {
		if err := s.DeleteByPattern(ctx, p); err != nil {
			slog.Warn("Error scanning cache keys", "pattern", p, "error", err)
		}
	}
}
