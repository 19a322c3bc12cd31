package model

import "errors"

// RewriteMode 改写风格
type RewriteMode string

const (
	ModePlain   RewriteMode = "plain"
	ModeGrade5  RewriteMode = "grade5"
	ModeBullets RewriteMode = "bullets"
	ModeSteps   RewriteMode = "steps"
	ModeLiteral RewriteMode = "literal"
	ModeActions RewriteMode = "actions"
)

// Modes 所有已知改写风格（按展示顺序）
var Modes = []RewriteMode{ModePlain, ModeGrade5, ModeBullets, ModeSteps, ModeLiteral, ModeActions}

// IsKnown 是否为已知风格
func (m RewriteMode) IsKnown() bool {
	for _, mode := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// 错误分类
var (
	// ErrCredentialMissing 未配置 API 密钥，不发起任何补全请求
	ErrCredentialMissing = errors.New("No API key configured.")
	// ErrEmptyText 待改写文本为空
	ErrEmptyText = errors.New("No text to rewrite.")
	// ErrAIDisabled 当前构建关闭了 AI 功能
	ErrAIDisabled = errors.New("AI features are disabled in this build.")
)

// RewriteRequest 改写请求
type RewriteRequest struct {
	Text  string       `json:"text"`
	Mode  RewriteMode  `json:"mode"`
	Prefs *Preferences `json:"prefs,omitempty"`
}

// TextChunk 切分后的文本片段
// Start/End 为原文中的字符（rune）偏移，Text 为去除首尾空白后的内容
type TextChunk struct {
	Index int
	Start int
	End   int
	Text  string
}

// RewriteResult 改写结果，所有字段始终存在
type RewriteResult struct {
	SimplifiedText    string   `json:"simplified_text" yaml:"simplified_text"`
	BulletVersion     []string `json:"bullet_version" yaml:"bullet_version"`
	StepVersion       []string `json:"step_version" yaml:"step_version"`
	LiteralVersion    string   `json:"literal_version" yaml:"literal_version"`
	ActionsDetected   []string `json:"actions_detected" yaml:"actions_detected"`
	DeadlinesDetected []string `json:"deadlines_detected" yaml:"deadlines_detected"`
}

// Normalize 将缺失的列表字段补为空列表，保证序列化为 [] 而不是 null
func (r *RewriteResult) Normalize() *RewriteResult {
	if r.BulletVersion == nil {
		r.BulletVersion = []string{}
	}
	if r.StepVersion == nil {
		r.StepVersion = []string{}
	}
	if r.ActionsDetected == nil {
		r.ActionsDetected = []string{}
	}
	if r.DeadlinesDetected == nil {
		r.DeadlinesDetected = []string{}
	}
	return r
}

// NewRewriteResult 创建字段全部为空的结果
func NewRewriteResult() *RewriteResult {
	return (&RewriteResult{}).Normalize()
}

// CalmReplacement 平静模式替换对
type CalmReplacement struct {
	Original string `json:"original"`
	Calm     string `json:"calm"`
}
