package redis

import (
	"context"
	"errors"
	"time"

	"github.com/PetA199003/GBU-Management/common/config"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// Nil 键不存在
var Nil = redis.Nil

var client *redis.Client

// Init 初始化Redis连接
func Init(ctx context.Context, cfg *config.RedisConfig) error {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return err
	}
	client = c
	return nil
}

// GetClient 获取Redis客户端，未初始化时返回 nil
func GetClient() *redis.Client {
	return client
}

// Close 关闭Redis连接
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// SetJSON 以 JSON 存储值
func SetJSON(ctx context.Context, c redis.Cmdable, key string, value any, expiration time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, expiration).Err()
}

// GetJSON 读取 JSON 值，键不存在时 found 为 false
func GetJSON(ctx context.Context, c redis.Cmdable, key string, out any) (found bool, err error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

// DelPattern 按模式删除键
func DelPattern(ctx context.Context, c redis.Cmdable, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
