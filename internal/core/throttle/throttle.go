package throttle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginGuard 登录失败计数。实现需保证 Allow/Fail/Reset 并发安全
type LoginGuard interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

// Nop 不限流，redis 未配置时使用
type Nop struct{}

func (Nop) Allow(context.Context, string) (bool, error) { return true, nil }
func (Nop) Fail(context.Context, string) error          { return nil }
func (Nop) Reset(context.Context, string) error         { return nil }

// Redis 固定窗口计数：第一次失败时设置过期时间，窗口内累计到 Max 后拒绝
type Redis struct {
	RDB    *redis.Client
	Max    int
	Window time.Duration
	Prefix string
	log    *zap.Logger
}

func NewRedis(rdb *redis.Client, max int, window time.Duration, l *zap.Logger) *Redis {
	if l == nil {
		l = zap.NewNop()
	}
	return &Redis{RDB: rdb, Max: max, Window: window, Prefix: "login:fail:", log: l}
}

// Dial 按地址建连并 PING，一次失败直接返回错误
func Dial(ctx context.Context, addr, pass string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func (r *Redis) key(k string) string { return r.Prefix + k }

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	if r.Max <= 0 {
		return true, nil
	}
	n, err := r.RDB.Get(ctx, r.key(key)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		// redis 故障不挡登录
		r.log.Warn("login guard unavailable", zap.Error(err))
		return true, nil
	}
	return n < r.Max, nil
}

func (r *Redis) Fail(ctx context.Context, key string) error {
	k := r.key(key)
	n, err := r.RDB.Incr(ctx, k).Result()
	if err != nil {
		r.log.Warn("login guard incr", zap.Error(err))
		return nil
	}
	if n == 1 {
		if err := r.RDB.Expire(ctx, k, r.Window).Err(); err != nil {
			r.log.Warn("login guard expire", zap.Error(err))
		}
	}
	return nil
}

func (r *Redis) Reset(ctx context.Context, key string) error {
	if err := r.RDB.Del(ctx, r.key(key)).Err(); err != nil {
		r.log.Warn("login guard reset", zap.Error(err))
	}
	return nil
}
