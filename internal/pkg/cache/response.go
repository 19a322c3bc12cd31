package cache

import (
	"encoding/hex"
	"hash/fnv"
	"sync"
	"time"

	"pincer/internal/config"
	"pincer/internal/model"
)

const (
	// DefaultTTL 缓存有效期
	DefaultTTL = 10 * time.Minute
	// DefaultPrefixLen 缓存键取原文前多少个字符
	DefaultPrefixLen = 80

	KeyStrategyPrefix = "prefix"
	KeyStrategyHash   = "hash"

	keySeparator = "::"
)

// responseEntry 缓存条目
type responseEntry struct {
	result    *model.RewriteResult
	createdAt time.Time
}

// ResponseCache 改写结果的进程内缓存
//
// 键默认为 原文前 prefixLen 个字符 + "::" + 风格，前缀相同的不同文本会命中同一条目。
// 过期条目不会被删除，只在读取时视为未命中，并在下次写入时被覆盖。
// 缓存不持久化，进程重启后清空。
type ResponseCache struct {
	mu        sync.Mutex
	entries   map[string]responseEntry
	ttl       time.Duration
	prefixLen int
	strategy  string
	now       func() time.Time
}

// NewResponseCache 创建响应缓存
func NewResponseCache(cfg *config.CacheConfig) *ResponseCache {
	c := &ResponseCache{
		entries:   make(map[string]responseEntry),
		ttl:       cfg.TTL,
		prefixLen: cfg.PrefixLen,
		strategy:  cfg.KeyStrategy,
		now:       time.Now,
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.prefixLen <= 0 {
		c.prefixLen = DefaultPrefixLen
	}
	if c.strategy == "" {
		c.strategy = KeyStrategyPrefix
	}
	return c
}

// WithClock 替换时钟（测试使用）
func (c *ResponseCache) WithClock(now func() time.Time) *ResponseCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Key 计算缓存键
func (c *ResponseCache) Key(text string, mode model.RewriteMode) string {
	if c.strategy == KeyStrategyHash {
		h := fnv.New128a()
		_, _ = h.Write([]byte(text))
		return hex.EncodeToString(h.Sum(nil)) + keySeparator + string(mode)
	}

	runes := []rune(text)
	if len(runes) > c.prefixLen {
		runes = runes[:c.prefixLen]
	}
	return string(runes) + keySeparator + string(mode)
}

// Get 读取缓存，仅当条目存在且写入时间距今小于 TTL 时命中
func (c *ResponseCache) Get(key string) (*model.RewriteResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.createdAt) >= c.ttl {
		return nil, false
	}
	return entry.result, true
}

// Set 写入缓存，覆盖同键条目
func (c *ResponseCache) Set(key string, result *model.RewriteResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = responseEntry{result: result, createdAt: c.now()}
}

// Len 当前条目数（包含已过期条目）
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
