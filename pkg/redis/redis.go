package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"erisync/backend/config"
)

// Client Redis 客户端封装
// 用于 Token 黑名单、速率限制以及热线轮值生成的团队级运行锁
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping 失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

// BlacklistToken 将 Token jti 加入黑名单（TTL 与 Token 剩余有效期一致）
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	return c.rdb.Set(ctx, "token_blacklist:"+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 Token jti 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, "token_blacklist:"+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数限流
// 返回 true 表示放行
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// ── 团队级运行锁 ──
//
// 热线轮值生成对同一团队的草稿做「先删后插」替换，并发运行会相互覆盖，
// 因此同一团队同一时刻只允许一个生成运行。

// AcquireTeamLock 尝试获取团队运行锁，获取失败返回 false
func (c *Client) AcquireTeamLock(ctx context.Context, teamID string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, "hotline_run_lock:"+teamID, "1", ttl).Result()
}

// ReleaseTeamLock 释放团队运行锁
func (c *Client) ReleaseTeamLock(ctx context.Context, teamID string) error {
	return c.rdb.Del(ctx, "hotline_run_lock:"+teamID).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
