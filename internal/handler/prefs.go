package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"pincer/internal/model"
	httputil "pincer/internal/pkg/http"
	"pincer/internal/repository"
)

// PrefsHandler 偏好设置处理器
type PrefsHandler struct {
	repo repository.PrefsRepo
}

// NewPrefsHandler 创建偏好设置处理器
func NewPrefsHandler(repo repository.PrefsRepo) *PrefsHandler {
	return &PrefsHandler{repo: repo}
}

// Get 读取偏好设置（密钥已脱敏）
// @Summary      读取偏好设置
// @Tags         偏好设置
// @Produce      json
// @Success      200  {object}  httputil.SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/prefs [get]
func (h *PrefsHandler) Get(c *gin.Context) {
	prefs, err := h.repo.Get(c.Request.Context())
	if errors.Is(err, repository.ErrPrefsNotFound) {
		c.JSON(http.StatusNotFound, httputil.NewErrorResponse(40401, "Preferences not found"))
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load preferences")
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(50001, "Failed to load preferences", err.Error()))
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("ok", prefs.Masked()))
}

// Save 保存偏好设置
// @Summary      保存偏好设置
// @Description  密钥必须以 gsk_ 开头，且需同时接受使用条款与隐私政策
// @Tags         偏好设置
// @Accept       json
// @Produce      json
// @Param        request  body      model.SavePrefsRequest  true  "偏好设置"
// @Success      200      {object}  httputil.SuccessResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/prefs [put]
func (h *PrefsHandler) Save(c *gin.Context) {
	var req model.SavePrefsRequest
	if !bindJSON(c, &req) {
		return
	}

	prefs := &model.Preferences{
		OpenAIAPIKey:    req.APIKey,
		TermsAccepted:   req.TermsAccepted,
		PrivacyAccepted: req.PrivacyAccepted,
	}
	prefs.OpenAIAPIKey = prefs.APIKey()
	if err := prefs.ValidateForSave(); err != nil {
		c.JSON(http.StatusBadRequest, httputil.NewErrorResponse(40002, err.Error()))
		return
	}

	if err := h.repo.Save(c.Request.Context(), prefs); err != nil {
		log.Error().Err(err).Msg("failed to save preferences")
		c.JSON(http.StatusInternalServerError, httputil.NewErrorResponse(50002, "Failed to save preferences", err.Error()))
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("saved", prefs.Masked()))
}
