package chunker

import (
	"strings"

	"pincer/internal/model"
)

const (
	// DefaultLimit 每段最大字符数
	DefaultLimit = 3000
	// DefaultMinBoundary 句号必须位于段起点之后超过该字符数，才会被当作切分点
	DefaultMinBoundary = 1500
)

// Chunker 文本切分器，按字符数上限切分，并尽量在句号处断开
type Chunker struct {
	limit       int
	minBoundary int
}

// New 创建切分器，非正数参数使用默认值
func New(limit, minBoundary int) *Chunker {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if minBoundary < 0 {
		minBoundary = DefaultMinBoundary
	}
	return &Chunker{limit: limit, minBoundary: minBoundary}
}

// Split 使用默认句号边界切分文本
func Split(text string, limit int) []model.TextChunk {
	return New(limit, DefaultMinBoundary).Split(text)
}

// Split 将文本切分为有序片段
//
// 逻辑：
//  1. 文本长度不超过上限时，返回一个片段（去除首尾空白）
//  2. 否则从当前偏移起取 limit 个字符，自候选终点向前查找句号，
//     仅当句号位置超过 起点+minBoundary 时把终点移到句号之后
//  3. 每段去除首尾空白，偏移推进到终点，片段之间无空隙、无重叠
//
// 长度按 rune 计算，不会切断多字节字符。去除空白后为空的片段会被丢弃。
func (c *Chunker) Split(text string) []model.TextChunk {
	runes := []rune(text)
	n := len(runes)
	if n <= c.limit {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []model.TextChunk{{Index: 0, Start: 0, End: n, Text: trimmed}}
	}

	chunks := make([]model.TextChunk, 0, n/c.limit+1)
	idx := 0
	for idx < n {
		end := idx + c.limit
		if end < n {
			if period := lastPeriod(runes, end, idx+c.minBoundary); period >= 0 {
				end = period + 1
			}
		}
		if end > n {
			end = n
		}

		if trimmed := strings.TrimSpace(string(runes[idx:end])); trimmed != "" {
			chunks = append(chunks, model.TextChunk{
				Index: len(chunks),
				Start: idx,
				End:   end,
				Text:  trimmed,
			})
		}
		idx = end
	}
	return chunks
}

// lastPeriod 自 from（含）向前查找位置大于 lo 的最后一个句号，未找到返回 -1
func lastPeriod(runes []rune, from, lo int) int {
	if from >= len(runes) {
		from = len(runes) - 1
	}
	for i := from; i > lo; i-- {
		if runes[i] == '.' {
			return i
		}
	}
	return -1
}
