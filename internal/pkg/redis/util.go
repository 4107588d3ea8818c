package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SMembers 获取集合全部成员
func SMembers(ctx context.Context, key string) ([]string, error) {
	value, err := Rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return value, nil
}

// SAddWithExpire 批量写入集合成员并刷新过期时间，走 pipeline 省一次往返
func SAddWithExpire(ctx context.Context, key string, members []interface{}, expiration time.Duration) error {
	pipe := Rdb.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, expiration)
	_, err := pipe.Exec(ctx)
	return err
}

// RPush 从队尾入列
func RPush(ctx context.Context, key string, value interface{}) error {
	return Rdb.RPush(ctx, key, value).Err()
}

// LPop 从队头出列，空队列返回空串
func LPop(ctx context.Context, key string) (string, error) {
	value, err := Rdb.LPop(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetRdbClient 获取redis客户端
func GetRdbClient() *redis.Client {
	return Rdb
}
