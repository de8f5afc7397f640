// Package cache 基于 Redis 的读缓存，未配置 Redis 时所有操作为空操作
package cache

import (
	"context"
	"time"

	"github.com/PetA199003/GBU-Management/common/logger"
	commonRedis "github.com/PetA199003/GBU-Management/common/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "gbu:"

// 缓存键
const (
	KeyCatalogAssessments = "catalog:assessments"
	KeyCatalogHazards     = "catalog:hazards"
	KeyDashboardPrefix    = "dashboard:"
)

// Cache 读缓存
type Cache struct {
	rdb redis.Cmdable
}

// New 创建缓存，rdb 为 nil 时禁用
func New(rdb redis.Cmdable) *Cache {
	return &Cache{rdb: rdb}
}

// Enabled 是否启用
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get 读取缓存，出错时视为未命中
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if !c.Enabled() {
		return false
	}
	found, err := commonRedis.GetJSON(ctx, c.rdb, keyPrefix+key, out)
	if err != nil {
		logger.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}

// Set 写入缓存
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if !c.Enabled() || ttl <= 0 {
		return
	}
	if err := commonRedis.SetJSON(ctx, c.rdb, keyPrefix+key, value, ttl); err != nil {
		logger.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 删除匹配前缀的缓存
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() {
		return
	}
	for _, key := range keys {
		if err := commonRedis.DelPattern(ctx, c.rdb, keyPrefix+key+"*"); err != nil {
			logger.Warn("删除缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
}

// Remember 命中时返回缓存值，否则调用 load 并写入缓存
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if c.Get(ctx, key, &cached) {
		return cached, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Set(ctx, key, v, ttl)
	return v, nil
}
