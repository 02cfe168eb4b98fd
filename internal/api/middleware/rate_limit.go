package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs3c/shelf_server/internal/pkg/ratelimit"
	"github.com/qs3c/shelf_server/internal/pkg/response"
)

// RateLimit 按用户限制写请求频率，需放在 Auth 之后。limiter 为 nil 时不限制
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || c.Request.Method == "GET" {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = "user:" + strconv.FormatInt(userID, 10)
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			zap.L().Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
		}
		if !allowed {
			response.RateLimitError(c, "操作太频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
