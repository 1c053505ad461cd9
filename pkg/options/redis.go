package options

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces option keys in a shared Redis instance.
const RedisKeyPrefix = "themefont:"

// RedisBackend stores options as plain string keys in Redis.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to the Redis server at url (redis://[:password@]host:port/db)
// and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*RedisBackend, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisBackend(client), nil
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client, prefix: RedisKeyPrefix}
}

func (b *RedisBackend) key(name string) string { return b.prefix + name }

func (b *RedisBackend) Get(ctx context.Context, name string) (string, bool, error) {
	v, err := b.client.Get(ctx, b.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get option %s: %w", name, err)
	}
	return v, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, name, value string) error {
	if err := requireName(name); err != nil {
		return err
	}
	if err := b.client.Set(ctx, b.key(name), value, 0).Err(); err != nil {
		return fmt.Errorf("set option %s: %w", name, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, name string) error {
	if err := b.client.Del(ctx, b.key(name)).Err(); err != nil {
		return fmt.Errorf("delete option %s: %w", name, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

var _ Backend = (*RedisBackend)(nil)
