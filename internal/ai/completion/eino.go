package completion

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"pincer/internal/ai/component"
	"pincer/internal/config"
	"pincer/internal/model"
)

// ModelFactory 按密钥与输出格式构建 ChatModel
type ModelFactory func(ctx context.Context, apiKey string, jsonOutput bool) (einomodel.BaseChatModel, error)

// statusCodePattern 匹配 eino 错误信息中的上游状态码
var statusCodePattern = regexp.MustCompile(`status code: (\d{3})`)

// EinoClient 通过 eino ChatModel 调用 openai / azure / ark
// 上游状态码只出现在错误信息中，能识别时转换为 UpstreamError
type EinoClient struct {
	newModel ModelFactory
}

// NewEinoClient 创建基于配置的 eino 客户端
func NewEinoClient(cfg *config.AIConfig) *EinoClient {
	return NewEinoClientWithFactory(func(ctx context.Context, apiKey string, jsonOutput bool) (einomodel.BaseChatModel, error) {
		return component.NewChatModel(ctx, cfg, apiKey, jsonOutput)
	})
}

// NewEinoClientWithFactory 使用自定义工厂创建客户端（测试使用）
func NewEinoClientWithFactory(factory ModelFactory) *EinoClient {
	return &EinoClient{newModel: factory}
}

// Complete 实现 Client
func (c *EinoClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	chatModel, err := c.newModel(ctx, req.APIKey, req.JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	messages := []*schema.Message{
		schema.SystemMessage(req.System),
		schema.UserMessage(req.User),
	}

	opts := []einomodel.Option{einomodel.WithTemperature(float32(req.Temperature))}
	if req.MaxTokens > 0 {
		opts = append(opts, einomodel.WithMaxTokens(req.MaxTokens))
	}

	resp, err := chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		if upstream := upstreamFromError(err); upstream != nil {
			return nil, upstream
		}
		return nil, fmt.Errorf("failed to generate text: %w", err)
	}

	out := &Response{Content: resp.Content}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		out.Usage = &model.TokenUsage{
			PromptTokens:     resp.ResponseMeta.Usage.PromptTokens,
			CompletionTokens: resp.ResponseMeta.Usage.CompletionTokens,
			TotalTokens:      resp.ResponseMeta.Usage.TotalTokens,
		}
	}
	return out, nil
}

// upstreamFromError 从错误信息中识别非 2xx 状态码
func upstreamFromError(err error) *UpstreamError {
	m := statusCodePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return nil
	}
	code, _ := strconv.Atoi(m[1])
	if code >= 200 && code < 300 {
		return nil
	}
	return &UpstreamError{StatusCode: code, Body: err.Error()}
}
