package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "pincer/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// bindJSON 解析请求体，失败时写入错误响应并返回 false
// 请求体超过 BodyLimit 上限时返回 413
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, httputil.NewErrorResponse(41301, "Request body too large", err.Error()))
		return false
	}
	c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(40001, "Invalid request body", err.Error()))
	return false
}
