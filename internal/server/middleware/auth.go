package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pincer/internal/pkg/ctxutil"
	httputil "pincer/internal/pkg/http"
)

// bearerToken 从 Authorization header 中提取 Bearer token
// present 表示请求是否带有 Authorization header
func bearerToken(c *gin.Context) (token string, present bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func tokenMatches(expected, got string) bool {
	if expected == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

// Auth 静态令牌认证中间件
// 未配置令牌时拒绝所有请求，偏好设置只能通过 CLI 修改
func Auth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, httputil.ErrorResponse{
				Code:    40301,
				Message: "Auth token not configured",
			})
			return
		}

		token, present := bearerToken(c)
		if !present {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Code:    40101,
				Message: "Unauthorized",
			})
			return
		}
		if !tokenMatches(expected, token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Code:    40102,
				Message: "Invalid authorization token",
			})
			return
		}
		c.Next()
	}
}

// Identify 可选认证中间件
// 不带令牌的请求照常处理，但只能使用请求自带的密钥；令牌错误时拒绝
func Identify(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			c.Request = c.Request.WithContext(ctxutil.WithoutStoredKey(c.Request.Context()))
			c.Next()
			return
		}
		if !tokenMatches(expected, token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Code:    40102,
				Message: "Invalid authorization token",
			})
			return
		}
		c.Next()
	}
}
