package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type RedisBackend struct {
	client redis.UniversalClient
}

func NewRedisBackend(client redis.UniversalClient) *RedisBackend {
	return &RedisBackend{client: client}
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	err := r.client.Set(ctx, key, value, 0).Err()
	if err != nil && isOOM(err) {
		return errors.Join(ErrQuotaExceeded, err)
	}
	return err
}

func (r *RedisBackend) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

// maxmemory with noeviction answers "OOM command not allowed..."
func isOOM(err error) bool {
	var rerr redis.Error
	if errors.As(err, &rerr) {
		msg := rerr.Error()
		return len(msg) >= 3 && msg[:3] == "OOM"
	}
	return false
}
