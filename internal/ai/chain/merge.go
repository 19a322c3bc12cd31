package chain

import (
	"strings"

	"pincer/internal/model"
)

// chunkSeparator 字符串字段之间的分隔（空行）
const chunkSeparator = "\n\n"

// Merge 按片段顺序合并结果
//   - 只有一个结果时原样返回
//   - 字符串字段以空行拼接，列表字段顺序拼接，不去重
//   - 缺失字段视为空
func Merge(results []*model.RewriteResult) *model.RewriteResult {
	if len(results) == 1 && results[0] != nil {
		return results[0]
	}

	merged := model.NewRewriteResult()
	simplified := make([]string, 0, len(results))
	literal := make([]string, 0, len(results))
	for _, r := range results {
		if r == nil {
			r = &model.RewriteResult{}
		}
		simplified = append(simplified, r.SimplifiedText)
		literal = append(literal, r.LiteralVersion)
		merged.BulletVersion = append(merged.BulletVersion, r.BulletVersion...)
		merged.StepVersion = append(merged.StepVersion, r.StepVersion...)
		merged.ActionsDetected = append(merged.ActionsDetected, r.ActionsDetected...)
		merged.DeadlinesDetected = append(merged.DeadlinesDetected, r.DeadlinesDetected...)
	}
	merged.SimplifiedText = strings.Join(simplified, chunkSeparator)
	merged.LiteralVersion = strings.Join(literal, chunkSeparator)
	return merged
}
