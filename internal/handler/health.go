package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pincer/internal/repository"
)

const readyTimeout = 2 * time.Second

// HealthHandler 健康检查处理器
type HealthHandler struct {
	prefs repository.PrefsRepo
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(prefs repository.PrefsRepo) *HealthHandler {
	return &HealthHandler{prefs: prefs}
}

// Health 存活检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready 就绪检查：偏好设置存储可读（尚无记录也算就绪）
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.prefs != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		if _, err := h.prefs.Get(ctx); err != nil && !errors.Is(err, repository.ErrPrefsNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"prefs":  err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
