package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector 对描述元素用途没有帮助的节点
const noiseSelector = "script, style, noscript, template, svg"

// Compact 压缩元素 HTML 片段
//   - 移除脚本、样式、SVG 等节点
//   - 连续空白合并为一个空格
//   - 超过 maxRunes 时截断，maxRunes <= 0 表示不截断
//
// 片段无法解析时按原文处理；移除噪声后没有剩余内容时返回空串
func Compact(fragment string, maxRunes int) string {
	trimmed := strings.TrimSpace(fragment)
	if trimmed == "" {
		return ""
	}

	out := trimmed
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err == nil {
		doc.Find(noiseSelector).Remove()
		if body, herr := doc.Find("body").Html(); herr == nil {
			out = body
		}
	}

	return Truncate(strings.Join(strings.Fields(out), " "), maxRunes)
}

// Truncate 按字符数截断
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
