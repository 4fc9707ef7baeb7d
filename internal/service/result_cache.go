package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultLocalCacheSize = 1024

// ResultCache 缓存计算结果。输入变化时必须失效，过期时间兜底时间推移带来的变化。
type ResultCache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisResultCache struct {
	client *redis.Client
	prefix string
}

func NewRedisResultCache(client *redis.Client) *RedisResultCache {
	return &RedisResultCache{client: client, prefix: "okr:"}
}

func (c *RedisResultCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, dst)
}

func (c *RedisResultCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

func (c *RedisResultCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

// NopCache 不缓存，直接实时计算
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NopCache) Delete(context.Context, ...string) error { return nil }

type localEntry struct {
	data      []byte
	expiresAt time.Time
}

// LocalResultCache 进程内 LRU 缓存，未启用 Redis 时使用。
// 多实例部署时各实例只能清除自己的缓存，依赖过期时间收敛。
type LocalResultCache struct {
	cache *lru.Cache[string, localEntry]
	now   func() time.Time
}

func NewLocalResultCache(size int) *LocalResultCache {
	if size <= 0 {
		size = defaultLocalCacheSize
	}
	// size 已保证为正数，lru.New 不会出错
	cache, _ := lru.New[string, localEntry](size)
	return &LocalResultCache{cache: cache, now: time.Now}
}

func (c *LocalResultCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	entry, ok := c.cache.Get(key)
	if !ok {
		return false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.cache.Remove(key)
		return false, nil
	}
	return true, json.Unmarshal(entry.data, dst)
}

// Set 保存序列化后的副本，调用方之后修改原值不影响缓存
func (c *LocalResultCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.cache.Add(key, localEntry{data: data, expiresAt: c.now().Add(ttl)})
	return nil
}

func (c *LocalResultCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.cache.Remove(k)
	}
	return nil
}
