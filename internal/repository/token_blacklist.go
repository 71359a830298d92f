package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenBlacklist 记录已注销但尚未过期的 token。
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type redisTokenBlacklist struct {
	redisClient *redis.Client
}

// NewTokenBlacklist 创建基于 Redis 的黑名单。redisClient 为 nil 时返回 nil，调用方据此跳过检查。
func NewTokenBlacklist(redisClient *redis.Client) TokenBlacklist {
	if redisClient == nil {
		return nil
	}
	return &redisTokenBlacklist{redisClient: redisClient}
}

// key 使用 token 的摘要，避免把完整 token 写入 Redis
func (r *redisTokenBlacklist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:revoked:" + hex.EncodeToString(sum[:])
}

func (r *redisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.redisClient.Set(ctx, r.key(token), 1, ttl).Err()
}

func (r *redisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
