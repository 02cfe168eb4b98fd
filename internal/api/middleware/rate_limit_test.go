package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"github.com/qs3c/shelf_server/internal/pkg/ratelimit"
	"github.com/qs3c/shelf_server/internal/pkg/response"
)

func setupRateLimitRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(UserIDKey, int64(1))
		c.Next()
	})
	router.Use(RateLimit(ratelimit.NewLimiter(rdb, limit, time.Minute)))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	return router, mr
}

func TestRateLimit_LimitsWrites(t *testing.T) {
	router, _ := setupRateLimitRouter(t, 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, response.CodeRateLimited, parseResponse(t, w).Code)

	// 读请求不受限制
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_RedisDown(t *testing.T) {
	router, mr := setupRateLimitRouter(t, 1)
	mr.Close()

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(nil))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
