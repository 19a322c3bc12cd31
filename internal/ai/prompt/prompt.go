package prompt

import (
	"bytes"
	"encoding/json"
	"strings"

	"pincer/internal/model"
)

// modeClauses 各改写风格的附加指令
var modeClauses = map[model.RewriteMode]string{
	model.ModePlain:   "Write in plain language. Use common words. Keep sentences short.",
	model.ModeGrade5:  "Write at a 5th grade reading level. Use simple vocabulary. Avoid complex sentence structures.",
	model.ModeBullets: "Focus on the bullet_version field. Break all information into clear, short bullet points.",
	model.ModeSteps:   "Focus on the step_version field. Convert all instructions into numbered steps.",
	model.ModeLiteral: "Write in literal_version. Avoid all metaphors, idioms, and figurative language. Be completely literal and direct.",
	model.ModeActions: "Focus on actions_detected. List only the specific actions the user needs to take. Ignore background information.",
}

// rewriteRules 与风格无关的全局规则
const rewriteRules = `You are Pincer, an AI accessibility assistant. Your job is to rewrite web page text to be more accessible.

Rules:
- Use short sentences (max 15 words each).
- Avoid jargon, technical terms, and idioms.
- Preserve all factual meaning. Never invent new facts.
- Tone must be neutral, calm, and supportive.
- Return ONLY a JSON object with the following keys:
  {
    "simplified_text": "...",
    "bullet_version": ["...", "..."],
    "step_version": ["Step 1: ...", "Step 2: ..."],
    "literal_version": "...",
    "actions_detected": ["...", "..."],
    "deadlines_detected": ["..."]
  }

Mode: `

const calmInstruction = `You are Pincer Calm Mode. Your job is to rewrite anxiety-inducing, aggressive, or urgent-sounding text into calm, neutral language.

Rules:
- Keep the same factual meaning.
- Remove urgency, threats, and aggressive tone.
- Use simple, reassuring language.
- Return ONLY a JSON object: { "replacements": [{ "original": "...", "calm": "..." }, ...] }`

const tooltipInstruction = "Describe what this HTML element does in one short, plain sentence. Be literal. Max 15 words."

// ModeClause 返回风格指令，未知或缺失的风格回退到 plain
func ModeClause(mode model.RewriteMode) string {
	if clause, ok := modeClauses[model.RewriteMode(strings.TrimSpace(string(mode)))]; ok {
		return clause
	}
	return modeClauses[model.ModePlain]
}

// BuildInstruction 构建改写的系统提示词
func BuildInstruction(mode model.RewriteMode) string {
	return rewriteRules + ModeClause(mode)
}

// BuildUserPrompt 构建单个片段的用户提示词
func BuildUserPrompt(text string) string {
	return "Rewrite the following web page text according to your instructions. Return ONLY valid JSON.\n\nTEXT:\n" + text
}

// CalmInstruction 平静模式系统提示词
func CalmInstruction() string {
	return calmInstruction
}

// BuildCalmUserPrompt 平静模式用户提示词，待改写文本以 JSON 数组形式附上
// <、>、& 原样保留，不转义为 \u003c 等形式
func BuildCalmUserPrompt(texts []string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	encoded := "[]"
	if err := enc.Encode(texts); err == nil {
		encoded = strings.TrimSuffix(buf.String(), "\n")
	}
	return "Rewrite these alert/notice texts to be calm and neutral:\n" + encoded
}

// TooltipInstruction 元素描述系统提示词
func TooltipInstruction() string {
	return tooltipInstruction
}
