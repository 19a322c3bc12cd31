package id

import (
	"github.com/google/uuid"
)

// maxLen 标准 UUID 字符串长度，超长输入不做解析
const maxLen = 36

// New 生成请求 ID（UUID v4）
func New() string {
	return uuid.NewString()
}

// IsValid 是否为标准格式的 UUID（8-4-4-4-12）
// 上游传入的请求 ID 只有通过校验才会沿用
func IsValid(id string) bool {
	if len(id) != maxLen {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
