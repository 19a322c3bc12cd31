package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"pincer/internal/ai/chain"
	"pincer/internal/ai/completion"
	"pincer/internal/config"
	"pincer/internal/model"
	"pincer/internal/pkg/chunker"
)

// Client AI 能力层客户端
// 职责: 封装改写、平静模式、元素描述三条链，提供统一接口
type Client struct {
	rewriteChain *chain.RewriteChain
	calmChain    *chain.CalmChain
	tooltipChain *chain.TooltipChain
}

// NewClient 按配置创建 AI 客户端
func NewClient(cfg *config.Config) (*Client, error) {
	completer, err := completion.New(&cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	log.Info().
		Str("provider", cfg.AI.Provider).
		Str("model", cfg.AI.Model).
		Msg("AI client initialized")

	return NewClientWithCompleter(completer, cfg), nil
}

// NewClientWithCompleter 使用指定补全客户端创建 AI 客户端
func NewClientWithCompleter(completer completion.Client, cfg *config.Config) *Client {
	return &Client{
		rewriteChain: chain.NewRewriteChain(
			completer,
			chunker.New(cfg.Rewrite.ChunkLimit, cfg.Rewrite.MinBoundary),
			cfg.Rewrite.Temperature,
		),
		calmChain: chain.NewCalmChain(completer, cfg.Calm.Temperature),
		tooltipChain: chain.NewTooltipChain(
			completer,
			cfg.Tooltip.Temperature,
			cfg.Tooltip.MaxTokens,
			cfg.Tooltip.MaxHTMLRunes,
		),
	}
}

// Rewrite 改写正文
func (c *Client) Rewrite(ctx context.Context, apiKey, text string, mode model.RewriteMode) (*chain.RewriteOutput, error) {
	return c.rewriteChain.Run(ctx, apiKey, text, mode)
}

// Calm 平静模式改写
func (c *Client) Calm(ctx context.Context, apiKey string, texts []string) ([]model.CalmReplacement, error) {
	return c.calmChain.Run(ctx, apiKey, texts)
}

// Tooltip 生成元素描述
func (c *Client) Tooltip(ctx context.Context, apiKey, elementHTML string) (*string, error) {
	return c.tooltipChain.Run(ctx, apiKey, elementHTML)
}
