package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pincer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the Pincer API server: message endpoints, preferences and the optional CORS relay.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()

	// Server flags
	flags.StringP("host", "H", "127.0.0.1", "server host")
	flags.IntP("port", "p", 7080, "server port")
	flags.String("mode", "release", "server mode (debug/release/test)")

	// AI flags
	flags.String("ai-provider", "http", "AI provider (http/openai/azure/ark)")
	flags.String("ai-model", "llama-3.1-8b-instant", "AI model name")

	// Feature flags
	flags.String("prefs-store", "memory", "preferences store (memory/redis/mongo/sqlite)")
	flags.Bool("relay", false, "enable the CORS relay (key from GROQ_API_KEY)")

	// Log flags
	flags.String("log-level", "info", "log level (trace/debug/info/warn/error/fatal)")
	flags.String("log-format", "console", "log format (json/console)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.host", flags.Lookup("host"))
	_ = viper.BindPFlag("server.port", flags.Lookup("port"))
	_ = viper.BindPFlag("server.mode", flags.Lookup("mode"))
	_ = viper.BindPFlag("ai.provider", flags.Lookup("ai-provider"))
	_ = viper.BindPFlag("ai.model", flags.Lookup("ai-model"))
	_ = viper.BindPFlag("prefs.store", flags.Lookup("prefs-store"))
	_ = viper.BindPFlag("relay.enabled", flags.Lookup("relay"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	// Graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher, prefs, closePrefs, err := newDispatcher(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer func() {
		if err := closePrefs(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close preferences store")
		}
	}()

	srv := server.New(cfg, dispatcher, prefs)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().
		Str("addr", addr).
		Str("mode", cfg.Server.Mode).
		Str("prefs_store", cfg.Prefs.Store).
		Bool("relay", cfg.Relay.Enabled).
		Bool("ai_enabled", cfg.Features.AIEnabled).
		Bool("auth", cfg.Server.AuthToken != "").
		Msg("starting server")
	if cfg.Server.AuthToken == "" {
		log.Warn().Msg("server.auth_token not set: /api/v1/prefs is disabled and requests must carry their own API key")
	}

	return srv.Run(ctx, addr)
}
