package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"pincer/internal/config"
)

// DefaultRelayUpstream 转发目标
const DefaultRelayUpstream = "https://api.groq.com/openai/v1/chat/completions"

// RelayHandler CORS 转发处理器
// 请求体原样转发，使用服务端密钥鉴权，上游状态码与响应体原样返回
type RelayHandler struct {
	apiKey   string
	upstream string
	client   *http.Client
}

// NewRelayHandler 创建转发处理器
func NewRelayHandler(cfg *config.RelayConfig) *RelayHandler {
	upstream := cfg.Upstream
	if upstream == "" {
		upstream = DefaultRelayUpstream
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &RelayHandler{
		apiKey:   cfg.APIKey,
		upstream: upstream,
		client:   &http.Client{Timeout: timeout},
	}
}

// Relay 转发补全请求
// @Summary      转发补全请求
// @Description  OPTIONS 返回 204；非 POST 返回 405；未配置密钥返回 500
// @Tags         转发
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      405  {string}  string
// @Failure      500  {object}  map[string]interface{}
// @Router       /relay/chat/completions [post]
func (h *RelayHandler) Relay(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")

	switch c.Request.Method {
	case http.MethodOptions:
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Status(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	if h.apiKey == "" {
		c.String(http.StatusInternalServerError, "Missing GROQ_API_KEY")
		return
	}

	status, body, err := h.forward(c)
	if err != nil {
		log.Error().Err(err).Str("upstream", h.upstream).Msg("Relay failed")
		detail, _ := json.Marshal(gin.H{"error": "Proxy error", "detail": err.Error()})
		c.Data(http.StatusInternalServerError, "application/json", detail)
		return
	}
	c.Data(status, "application/json", body)
}

func (h *RelayHandler) forward(c *gin.Context) (int, []byte, error) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.upstream, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
