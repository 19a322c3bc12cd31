package model

// RewriteResponse AI_REWRITE 响应：成功时为 {data}，失败时为 {error}
type RewriteResponse struct {
	Data  *RewriteResult `json:"data,omitempty"`
	Error string         `json:"error,omitempty"`
}

// CalmResponse CALM_REWRITE 响应，replacements 始终为数组
type CalmResponse struct {
	Replacements []CalmReplacement `json:"replacements"`
}

// TooltipResponse AI_TOOLTIP 响应，text 可能为 null
type TooltipResponse struct {
	Text *string `json:"text"`
}

// ErrorResponse 信封级错误响应（禁用构建、未知类型）
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenUsage Token 使用统计
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add 累加另一次调用的使用量
func (u *TokenUsage) Add(other *TokenUsage) {
	if u == nil || other == nil {
		return
	}
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}
