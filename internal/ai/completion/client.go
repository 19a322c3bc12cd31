package completion

import (
	"context"
	"errors"
	"fmt"

	"pincer/internal/config"
	"pincer/internal/model"
)

// Client 补全客户端：一次调用对应一次上游请求，不重试
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// ClientFunc 函数适配器
type ClientFunc func(ctx context.Context, req *Request) (*Response, error)

// Complete 实现 Client
func (f ClientFunc) Complete(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Request 补全请求
type Request struct {
	APIKey      string
	System      string
	User        string
	Temperature float64
	MaxTokens   int  // 0 表示不限制
	JSON        bool // 要求上游以 JSON 对象返回
}

// Response 补全响应
type Response struct {
	Content string // choices[0].message.content，可能为空
	Usage   *model.TokenUsage
}

var (
	// ErrTransport 网络层失败（连接、超时、读取响应体）
	ErrTransport = errors.New("completion transport error")
	// ErrMalformedResponse 上游返回了无法解析的响应体
	ErrMalformedResponse = errors.New("malformed completion response")
)

// UpstreamError 上游返回非 2xx 状态
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Completion API error %d: %s", e.StatusCode, e.Body)
}

// IsUpstream 判断是否为上游状态错误，并返回该错误
func IsUpstream(err error) (*UpstreamError, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream, true
	}
	return nil, false
}

// New 按 provider 创建补全客户端
func New(cfg *config.AIConfig) (Client, error) {
	switch cfg.Provider {
	case "", "http":
		return NewHTTPClient(cfg), nil
	case "openai", "azure", "ark":
		return NewEinoClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}
