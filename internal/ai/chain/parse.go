package chain

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"pincer/internal/model"
)

var errCalmNotJSON = errors.New("calm reply is not valid JSON")

// replyOrEmptyObject 空回复按 "{}" 处理
func replyOrEmptyObject(content string) string {
	if trimmed := strings.TrimSpace(content); trimmed != "" {
		return trimmed
	}
	return "{}"
}

// ParseRewriteResult 解析模型回复
// 回复不是 JSON 对象时，原文作为 simplified_text 返回，其余字段为空，不视为错误
func ParseRewriteResult(content string) *model.RewriteResult {
	reply := replyOrEmptyObject(content)
	if !gjson.Valid(reply) {
		return (&model.RewriteResult{SimplifiedText: content}).Normalize()
	}
	parsed := gjson.Parse(reply)
	if !parsed.IsObject() {
		return (&model.RewriteResult{SimplifiedText: content}).Normalize()
	}

	result := &model.RewriteResult{
		SimplifiedText:    stringField(parsed.Get("simplified_text")),
		BulletVersion:     listField(parsed.Get("bullet_version")),
		StepVersion:       listField(parsed.Get("step_version")),
		LiteralVersion:    stringField(parsed.Get("literal_version")),
		ActionsDetected:   listField(parsed.Get("actions_detected")),
		DeadlinesDetected: listField(parsed.Get("deadlines_detected")),
	}
	return result.Normalize()
}

// ParseCalmReplacements 解析平静模式回复中的 replacements 列表
func ParseCalmReplacements(content string) ([]model.CalmReplacement, error) {
	reply := replyOrEmptyObject(content)
	if !gjson.Valid(reply) {
		return nil, errCalmNotJSON
	}

	replacements := make([]model.CalmReplacement, 0)
	gjson.Get(reply, "replacements").ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			replacements = append(replacements, model.CalmReplacement{
				Original: stringField(item.Get("original")),
				Calm:     stringField(item.Get("calm")),
			})
		}
		return true
	})
	return replacements, nil
}

// stringField 字符串字段；数字等标量转为文本，缺失或 null 为空
func stringField(r gjson.Result) string {
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	return r.String()
}

// listField 列表字段；单个字符串视为一项，null 元素跳过
func listField(r gjson.Result) []string {
	switch {
	case r.IsArray():
		items := make([]string, 0, len(r.Array()))
		for _, item := range r.Array() {
			if item.Type == gjson.Null {
				continue
			}
			items = append(items, item.String())
		}
		return items
	case r.Type == gjson.String && r.Str != "":
		return []string{r.Str}
	default:
		return []string{}
	}
}
