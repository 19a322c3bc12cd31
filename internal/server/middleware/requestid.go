package middleware

import (
	"github.com/gin-gonic/gin"

	"pincer/internal/pkg/ctxutil"
	"pincer/internal/pkg/id"
)

// HeaderRequestID 请求 ID 头
const HeaderRequestID = "X-Request-ID"

// RequestID 请求 ID 中间件
// 沿用合法的上游请求 ID，否则生成新的 UUID，写入 context 与响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !id.IsValid(requestID) {
			requestID = id.New()
		}
		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}
