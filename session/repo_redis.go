package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Repo = (*RedisRepo)(nil)

// RedisRepo stores the session as a single Redis hash, letting several
// processes (e.g. a CLI and a background job) share one login.
type RedisRepo struct {
	client *redis.Client
	key    string
}

func NewRedisRepo(client *redis.Client, key string) *RedisRepo {
	return &RedisRepo{client: client, key: key}
}

func (r *RedisRepo) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis HGET %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisRepo) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, r.key, key, value).Err(); err != nil {
		return fmt.Errorf("redis HSET %s: %w", key, err)
	}
	return nil
}

func (r *RedisRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.key, key).Err(); err != nil {
		return fmt.Errorf("redis HDEL %s: %w", key, err)
	}
	return nil
}

func (r *RedisRepo) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", r.key, err)
	}
	return nil
}
