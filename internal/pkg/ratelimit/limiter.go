package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// 固定窗口计数：首次 INCR 时设置过期
var fixedWindow = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if tonumber(current) == 1 then
    redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`)

type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Allow 判断 key 在当前窗口内是否还有配额。
// Redis 出错时放行并返回错误，由调用方记录日志。
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	seconds := int(l.window.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	count, err := fixedWindow.Run(ctx, l.rdb, []string{"ratelimit:" + key}, seconds).Int()
	if err != nil {
		return true, err
	}
	return count <= l.limit, nil
}
