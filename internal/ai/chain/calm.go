package chain

import (
	"context"

	"pincer/internal/ai/completion"
	"pincer/internal/ai/prompt"
	"pincer/internal/model"
)

// CalmChain 平静模式改写链，一批文本对应一次补全
type CalmChain struct {
	client      completion.Client
	temperature float64
}

// NewCalmChain 创建平静模式改写链
func NewCalmChain(client completion.Client, temperature float64) *CalmChain {
	return &CalmChain{client: client, temperature: temperature}
}

// Run 执行平静模式改写，空输入直接返回空列表
func (c *CalmChain) Run(ctx context.Context, apiKey string, texts []string) ([]model.CalmReplacement, error) {
	if len(texts) == 0 {
		return []model.CalmReplacement{}, nil
	}

	resp, err := c.client.Complete(ctx, &completion.Request{
		APIKey:      apiKey,
		System:      prompt.CalmInstruction(),
		User:        prompt.BuildCalmUserPrompt(texts),
		Temperature: c.temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}
	return ParseCalmReplacements(resp.Content)
}
