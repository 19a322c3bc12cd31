package chain

import (
	"context"

	"github.com/rs/zerolog/log"

	"pincer/internal/ai/completion"
	"pincer/internal/ai/prompt"
	"pincer/internal/model"
	"pincer/internal/pkg/chunker"
)

// RewriteChain 文本改写链
// 工作流: 输入文本 -> 切分 -> 逐段(Prompt -> 补全 -> 解析) -> 合并
type RewriteChain struct {
	client      completion.Client
	chunker     *chunker.Chunker
	temperature float64
}

// RewriteOutput 改写输出
type RewriteOutput struct {
	Result *model.RewriteResult
	Chunks int               // 片段数，等于补全调用次数
	Usage  *model.TokenUsage // 各片段使用量之和
}

// NewRewriteChain 创建文本改写链
func NewRewriteChain(client completion.Client, c *chunker.Chunker, temperature float64) *RewriteChain {
	return &RewriteChain{client: client, chunker: c, temperature: temperature}
}

// Run 执行改写
// 片段按顺序逐个请求，任一片段失败立即返回该错误，不产出部分结果
func (c *RewriteChain) Run(ctx context.Context, apiKey, text string, mode model.RewriteMode) (*RewriteOutput, error) {
	chunks := c.chunker.Split(text)
	instruction := prompt.BuildInstruction(mode)
	usage := &model.TokenUsage{}

	results := make([]*model.RewriteResult, 0, len(chunks))
	for _, chunk := range chunks {
		resp, err := c.client.Complete(ctx, &completion.Request{
			APIKey:      apiKey,
			System:      instruction,
			User:        prompt.BuildUserPrompt(chunk.Text),
			Temperature: c.temperature,
			JSON:        true,
		})
		if err != nil {
			log.Warn().Err(err).
				Int("chunk", chunk.Index).
				Int("chunks", len(chunks)).
				Msg("Rewrite chunk failed")
			return nil, err
		}
		usage.Add(resp.Usage)
		results = append(results, ParseRewriteResult(resp.Content))
	}

	return &RewriteOutput{
		Result: Merge(results),
		Chunks: len(chunks),
		Usage:  usage,
	}, nil
}
