package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pincer/internal/ai"
	"pincer/internal/config"
	"pincer/internal/pkg/cache"
	"pincer/internal/pkg/logger"
	"pincer/internal/pkg/storagefactory"
	"pincer/internal/repository"
	"pincer/internal/service"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pincer",
	Short: "Pincer - accessibility text rewrite service",
	Long: `Pincer rewrites web page text into simplified, bulleted, step-based,
literal or calm variants through an OpenAI-compatible completion API.
Long text is split at sentence boundaries, rewritten chunk by chunk,
merged back into one result and cached for a short time.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.pincer")
	}

	// 环境变量设置
	viper.SetEnvPrefix("PINCER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// 转发密钥沿用 GROQ_API_KEY
	_ = viper.BindEnv("relay.api_key", "PINCER_RELAY_API_KEY", "GROQ_API_KEY")

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}
	cfg.SQLite.Path = os.ExpandEnv(cfg.SQLite.Path)

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 7080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "5m")
	viper.SetDefault("server.auth_token", "")
	viper.SetDefault("server.max_body_bytes", 1<<20)

	// AI
	viper.SetDefault("ai.provider", "http")
	viper.SetDefault("ai.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("ai.model", "llama-3.1-8b-instant")
	viper.SetDefault("ai.timeout", "2m")

	// Rewrite / Calm / Tooltip
	viper.SetDefault("rewrite.chunk_limit", 3000)
	viper.SetDefault("rewrite.min_boundary", 1500)
	viper.SetDefault("rewrite.temperature", 0.3)
	viper.SetDefault("calm.temperature", 0.3)
	viper.SetDefault("tooltip.temperature", 0.2)
	viper.SetDefault("tooltip.max_tokens", 60)
	viper.SetDefault("tooltip.max_html_runes", 2000)

	// Cache
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("cache.prefix_len", 80)
	viper.SetDefault("cache.key_strategy", "prefix")

	// Prefs
	viper.SetDefault("prefs.store", "memory")

	// Relay
	viper.SetDefault("relay.enabled", false)
	viper.SetDefault("relay.upstream", "https://api.groq.com/openai/v1/chat/completions")
	viper.SetDefault("relay.timeout", "2m")

	// Features
	viper.SetDefault("features.ai_enabled", true)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stderr")
	viper.SetDefault("log.time_format", "RFC3339")

	// MongoDB
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "pincer")
	viper.SetDefault("mongo.max_pool_size", 10)
	viper.SetDefault("mongo.min_pool_size", 1)

	// Redis
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// SQLite
	viper.SetDefault("sqlite.path", "$HOME/.pincer/pincer.sqlite")
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}

// newDispatcher 按配置组装偏好设置仓库、AI 客户端、响应缓存与分发器
func newDispatcher(ctx context.Context, cfg *config.Config) (*service.Dispatcher, repository.PrefsRepo, storagefactory.CloseFunc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	prefs, closePrefs, err := storagefactory.NewPrefsRepo(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	aiClient, err := ai.NewClient(cfg)
	if err != nil {
		_ = closePrefs(ctx)
		return nil, nil, nil, err
	}

	dispatcher := service.NewDispatcher(aiClient, cache.NewResponseCache(&cfg.Cache), prefs, cfg.Features.AIEnabled)
	return dispatcher, prefs, closePrefs, nil
}
