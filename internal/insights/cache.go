package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
)

var ErrCacheMiss = errors.New("insight not cached")

const cacheKeyPrefix = "insights::"

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*LocalCache)(nil)
)

// RedisCache shares cached insights between service instances.
type RedisCache struct {
	redisClient *redis.Client
}

func NewRedisCache(redisClient *redis.Client) *RedisCache {
	return &RedisCache{
		redisClient: redisClient,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.redisClient.Get(ctx, cacheKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.redisClient.Set(ctx, cacheKeyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// LocalCache keeps insights in process memory, used when redis is not available.
type LocalCache struct {
	cache *freecache.Cache
}

func NewLocalCache(sizeMB int) *LocalCache {
	if sizeMB <= 0 {
		sizeMB = 8
	}
	megabyte := 1024 * 1024
	return &LocalCache{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (c *LocalCache) Get(_ context.Context, key string) (string, error) {
	val, err := c.cache.Get([]byte(cacheKeyPrefix + key))
	if errors.Is(err, freecache.ErrNotFound) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("local cache get: %w", err)
	}
	return string(val), nil
}

func (c *LocalCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	// freecache expiration is in whole seconds, 0 means no expiration
	expireSeconds := int(ttl.Seconds())
	if ttl > 0 && expireSeconds == 0 {
		expireSeconds = 1
	}
	if err := c.cache.Set([]byte(cacheKeyPrefix+key), []byte(value), expireSeconds); err != nil {
		return fmt.Errorf("local cache set: %w", err)
	}
	return nil
}
