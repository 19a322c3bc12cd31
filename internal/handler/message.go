package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pincer/internal/model"
	"pincer/internal/service"
)

// MessageHandler 扩展消息处理器
// 业务结果（包括 {error}）一律以 200 返回，与扩展的消息信封保持一致
type MessageHandler struct {
	dispatcher *service.Dispatcher
}

// NewMessageHandler 创建扩展消息处理器
func NewMessageHandler(dispatcher *service.Dispatcher) *MessageHandler {
	return &MessageHandler{dispatcher: dispatcher}
}

// Dispatch 按消息类型分发
// @Summary      分发扩展消息
// @Description  type 为 AI_REWRITE、CALM_REWRITE 或 AI_TOOLTIP，响应分别为 {data}|{error}、{replacements}、{text}
// @Tags         消息
// @Accept       json
// @Produce      json
// @Param        request  body      model.Message  true  "消息信封"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  model.ErrorResponse
// @Failure      413      {object}  ErrorResponse
// @Router       /api/v1/messages [post]
func (h *MessageHandler) Dispatch(c *gin.Context) {
	var msg model.Message
	if !bindJSON(c, &msg) {
		return
	}
	h.respond(c, &msg)
}

// Rewrite 正文改写
// @Summary      正文改写
// @Tags         消息
// @Accept       json
// @Produce      json
// @Param        request  body      model.RewriteRequest  true  "改写请求"
// @Success      200      {object}  model.RewriteResponse
// @Router       /api/v1/rewrite [post]
func (h *MessageHandler) Rewrite(c *gin.Context) {
	var req model.RewriteRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, &model.Message{
		Type:  model.MessageAIRewrite,
		Text:  req.Text,
		Mode:  req.Mode,
		Prefs: req.Prefs,
	})
}

// Calm 平静模式改写
// @Summary      平静模式改写
// @Tags         消息
// @Accept       json
// @Produce      json
// @Param        request  body      model.CalmRequest  true  "平静模式请求"
// @Success      200      {object}  model.CalmResponse
// @Router       /api/v1/calm [post]
func (h *MessageHandler) Calm(c *gin.Context) {
	var req model.CalmRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, &model.Message{
		Type:  model.MessageCalmRewrite,
		Texts: req.Texts,
		Prefs: req.Prefs,
	})
}

// Tooltip 元素描述
// @Summary      元素描述
// @Tags         消息
// @Accept       json
// @Produce      json
// @Param        request  body      model.TooltipRequest  true  "元素描述请求"
// @Success      200      {object}  model.TooltipResponse
// @Router       /api/v1/tooltip [post]
func (h *MessageHandler) Tooltip(c *gin.Context) {
	var req model.TooltipRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, &model.Message{
		Type:        model.MessageAITooltip,
		ElementHTML: req.ElementHTML,
		Prefs:       req.Prefs,
	})
}

func (h *MessageHandler) respond(c *gin.Context, msg *model.Message) {
	resp, err := h.dispatcher.Dispatch(c.Request.Context(), msg)
	if errors.Is(err, service.ErrUnknownMessageType) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
