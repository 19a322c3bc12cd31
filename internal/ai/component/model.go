package component

import (
	"context"
	"fmt"

	arkext "github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/openai"
	openaiacl "github.com/cloudwego/eino-ext/libs/acl/openai"
	"github.com/cloudwego/eino/components/model"

	"pincer/internal/config"
)

const (
	defaultArkBaseURL = "https://ark.cn-beijing.volces.com/api/v3"
	defaultArkModel   = "doubao-seed-1-6-flash-250615"
)

// NewChatModel 创建 ChatModel
// 支持多种 Provider: openai, azure, ark
// 密钥随请求传入（来自扩展偏好设置），因此每个密钥单独构建模型
// jsonOutput 为 true 时 openai / azure 请求 json_object 响应格式；ark 依赖回复解析容错
func NewChatModel(ctx context.Context, cfg *config.AIConfig, apiKey string, jsonOutput bool) (model.ChatModel, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIChatModel(ctx, cfg, apiKey, jsonOutput)
	case "azure":
		return newAzureChatModel(ctx, cfg, apiKey, jsonOutput)
	case "ark":
		return newArkChatModel(ctx, cfg, apiKey)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// newOpenAIChatModel 创建 OpenAI ChatModel（BaseURL 可指向任意兼容接口）
func newOpenAIChatModel(ctx context.Context, cfg *config.AIConfig, apiKey string, jsonOutput bool) (model.ChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:          cfg.Model,
		APIKey:         apiKey,
		ResponseFormat: responseFormat(jsonOutput),
	}

	// Base URL (用于代理或兼容 API)
	if cfg.BaseURL != "" {
		modelCfg.BaseURL = cfg.BaseURL
	}

	return openai.NewChatModel(ctx, modelCfg)
}

// newAzureChatModel 创建 Azure OpenAI ChatModel
func newAzureChatModel(ctx context.Context, cfg *config.AIConfig, apiKey string, jsonOutput bool) (model.ChatModel, error) {
	modelCfg := &openai.ChatModelConfig{
		Model:          cfg.Model,
		APIKey:         apiKey,
		BaseURL:        cfg.BaseURL,
		ByAzure:        true,
		ResponseFormat: responseFormat(jsonOutput),
	}

	return openai.NewChatModel(ctx, modelCfg)
}

// newArkChatModel 创建 Ark ChatModel（使用 eino-ext 模块）
func newArkChatModel(ctx context.Context, cfg *config.AIConfig, apiKey string) (model.ChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultArkBaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultArkModel
	}

	modelCfg := &arkext.ChatModelConfig{
		Model:   modelName,
		APIKey:  apiKey,
		BaseURL: baseURL,
	}

	return arkext.NewChatModel(ctx, modelCfg)
}

// responseFormat 需要 JSON 输出时返回 json_object 格式，否则为 nil
func responseFormat(jsonOutput bool) *openaiacl.ChatCompletionResponseFormat {
	if !jsonOutput {
		return nil
	}
	return &openaiacl.ChatCompletionResponseFormat{
		Type: openaiacl.ChatCompletionResponseFormatTypeJSONObject,
	}
}
