package model

// MessageType 消息类型
type MessageType string

const (
	MessageAIRewrite   MessageType = "AI_REWRITE"
	MessageCalmRewrite MessageType = "CALM_REWRITE"
	MessageAITooltip   MessageType = "AI_TOOLTIP"
)

// Message 扩展消息信封
// 按 Type 使用不同字段：AI_REWRITE 使用 Text/Mode，CALM_REWRITE 使用 Texts，AI_TOOLTIP 使用 ElementHTML
type Message struct {
	Type        MessageType  `json:"type" binding:"required"`
	Text        string       `json:"text,omitempty"`
	Texts       []string     `json:"texts,omitempty"`
	ElementHTML string       `json:"elementHtml,omitempty"`
	Mode        RewriteMode  `json:"mode,omitempty"`
	Prefs       *Preferences `json:"prefs,omitempty"`
}

// CalmRequest 平静模式请求
type CalmRequest struct {
	Texts []string     `json:"texts"`
	Prefs *Preferences `json:"prefs,omitempty"`
}

// TooltipRequest 元素描述请求
type TooltipRequest struct {
	ElementHTML string       `json:"elementHtml"`
	Prefs       *Preferences `json:"prefs,omitempty"`
}

// SavePrefsRequest 保存偏好设置请求
type SavePrefsRequest struct {
	APIKey          string `json:"openaiApiKey" binding:"required"`
	TermsAccepted   bool   `json:"termsAccepted"`
	PrivacyAccepted bool   `json:"privacyAccepted"`
}
