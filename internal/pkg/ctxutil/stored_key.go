package ctxutil

import "context"

type storedKeyDeniedKeyType struct{}

var storedKeyDeniedKey = storedKeyDeniedKeyType{}

// WithoutStoredKey 标记当前请求不得使用已保存的密钥，由 Identify 中间件在未认证时调用
func WithoutStoredKey(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, storedKeyDeniedKey, true)
}

// StoredKeyAllowed 当前请求是否可以回退到已保存的密钥
// 进程内调用（CLI）没有标记，默认允许
func StoredKeyAllowed(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	denied, _ := ctx.Value(storedKeyDeniedKey).(bool)
	return !denied
}
