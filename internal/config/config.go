package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AI       AIConfig       `mapstructure:"ai"`
	Rewrite  RewriteConfig  `mapstructure:"rewrite"`
	Calm     CalmConfig     `mapstructure:"calm"`
	Tooltip  TooltipConfig  `mapstructure:"tooltip"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Prefs    PrefsConfig    `mapstructure:"prefs"`
	Relay    RelayConfig    `mapstructure:"relay"`
	Features FeaturesConfig `mapstructure:"features"`
	Log      LogConfig      `mapstructure:"log"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	AuthToken    string        `mapstructure:"auth_token"`     // 偏好设置接口与已保存密钥所需的 Bearer 令牌，为空时均不可用
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"` // 请求体上限
}

// AIConfig 补全接口配置
// Provider: http（默认，直接调用 OpenAI 兼容接口）、openai、azure、ark（基于 eino）
type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RewriteConfig 正文改写（AI_REWRITE）参数
type RewriteConfig struct {
	ChunkLimit  int     `mapstructure:"chunk_limit"`  // 每段最大字符数
	MinBoundary int     `mapstructure:"min_boundary"` // 句号至少位于段内多少字符之后才作为切分点
	Temperature float64 `mapstructure:"temperature"`
}

// CalmConfig 平静模式（CALM_REWRITE）参数
type CalmConfig struct {
	Temperature float64 `mapstructure:"temperature"`
}

// TooltipConfig 元素描述（AI_TOOLTIP）参数
type TooltipConfig struct {
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	MaxHTMLRunes int     `mapstructure:"max_html_runes"`
}

// CacheConfig 响应缓存配置
type CacheConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	PrefixLen   int           `mapstructure:"prefix_len"`
	KeyStrategy string        `mapstructure:"key_strategy"` // prefix, hash
}

// PrefsConfig 偏好设置存储配置
type PrefsConfig struct {
	Store  string `mapstructure:"store"`   // memory, redis, mongo, sqlite
	APIKey string `mapstructure:"api_key"` // memory 存储的初始密钥（可选）
}

// RelayConfig CORS 转发配置
type RelayConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	APIKey   string        `mapstructure:"api_key"`
	Upstream string        `mapstructure:"upstream"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// FeaturesConfig 功能开关
type FeaturesConfig struct {
	AIEnabled bool `mapstructure:"ai_enabled"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SQLiteConfig SQLite 配置
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

var (
	validModes          = map[string]bool{"debug": true, "release": true, "test": true}
	validProviders      = map[string]bool{"": true, "http": true, "openai": true, "azure": true, "ark": true}
	validPrefsStores    = map[string]bool{"": true, "memory": true, "redis": true, "mongo": true, "sqlite": true}
	validKeyStrategies  = map[string]bool{"": true, "prefix": true, "hash": true}
	errInvalidChunkSize = errors.New("rewrite.chunk_limit must be greater than rewrite.min_boundary")
)

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}

	if !validPrefsStores[c.Prefs.Store] {
		return fmt.Errorf("unsupported prefs store: %s", c.Prefs.Store)
	}

	if !validKeyStrategies[c.Cache.KeyStrategy] {
		return fmt.Errorf("unsupported cache key strategy: %s", c.Cache.KeyStrategy)
	}

	if c.Rewrite.ChunkLimit <= 0 || c.Rewrite.MinBoundary < 0 || c.Rewrite.ChunkLimit <= c.Rewrite.MinBoundary {
		return errInvalidChunkSize
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}

	return nil
}
