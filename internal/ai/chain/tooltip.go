package chain

import (
	"context"
	"strings"

	"pincer/internal/ai/completion"
	"pincer/internal/ai/prompt"
	"pincer/internal/pkg/htmltext"
)

// TooltipChain 元素描述链
type TooltipChain struct {
	client       completion.Client
	temperature  float64
	maxTokens    int
	maxHTMLRunes int
}

// NewTooltipChain 创建元素描述链
func NewTooltipChain(client completion.Client, temperature float64, maxTokens, maxHTMLRunes int) *TooltipChain {
	return &TooltipChain{
		client:       client,
		temperature:  temperature,
		maxTokens:    maxTokens,
		maxHTMLRunes: maxHTMLRunes,
	}
}

// Run 生成一句话描述
// 压缩后的 HTML 为空、或回复去除空白后为空时返回 nil
func (c *TooltipChain) Run(ctx context.Context, apiKey, elementHTML string) (*string, error) {
	compacted := htmltext.Compact(elementHTML, c.maxHTMLRunes)
	if compacted == "" {
		return nil, nil
	}

	resp, err := c.client.Complete(ctx, &completion.Request{
		APIKey:      apiKey,
		System:      prompt.TooltipInstruction(),
		User:        compacted,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return nil, nil
	}
	return &text, nil
}
