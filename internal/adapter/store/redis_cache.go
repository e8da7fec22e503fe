package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"placements-assistant/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores chatbot answers under prefix+raw query text.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration // 0 keeps entries until evicted
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *RedisCache) key(query string) string {
	return r.prefix + query
}

func (r *RedisCache) Get(ctx context.Context, query string) (*entity.CachedAnswer, error) {
	val, err := r.client.Get(ctx, r.key(query)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var cached entity.CachedAnswer
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, fmt.Errorf("decoding cached answer: %w", err)
	}
	return &cached, nil
}

func (r *RedisCache) Set(ctx context.Context, query string, answer entity.CachedAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("encoding cached answer: %w", err)
	}
	if err := r.client.Set(ctx, r.key(query), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping is used by the health check.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
