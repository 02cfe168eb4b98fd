package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs3c/shelf_server/internal/pkg/jwt"
	"github.com/qs3c/shelf_server/internal/pkg/response"
	"github.com/qs3c/shelf_server/internal/pkg/tokenstore"
)

const (
	UserIDKey = "userID"
	ClaimsKey = "claims"
)

// bearerToken 取出 Authorization: Bearer <token>
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// revoked 检查令牌是否已注销。Redis 不可用时放行
func revoked(c *gin.Context, blacklist *tokenstore.Blacklist, claims *jwt.Claims) bool {
	if blacklist == nil {
		return false
	}
	ok, err := blacklist.IsRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		zap.L().Warn("token blacklist check failed", zap.String("jti", claims.ID), zap.Error(err))
		return false
	}
	return ok
}

// Auth JWT 认证中间件，blacklist 为 nil 时不检查注销状态
func Auth(jwtSecret string, blacklist *tokenstore.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.AuthError(c, "请提供认证信息")
			c.Abort()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			response.AuthError(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "认证失败或已过期")
			c.Abort()
			return
		}

		if revoked(c, blacklist, claims) {
			response.AuthError(c, "令牌已注销")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件（不强制要求登录）
func OptionalAuth(jwtSecret string, blacklist *tokenstore.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err == nil && !revoked(c, blacklist, claims) {
			c.Set(UserIDKey, claims.UserID)
			c.Set(ClaimsKey, claims)
		}

		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}

// GetClaims 从上下文获取令牌声明
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
