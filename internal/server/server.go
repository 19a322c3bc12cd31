package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pincer/docs"
	"pincer/internal/config"
	"pincer/internal/handler"
	"pincer/internal/repository"
	"pincer/internal/server/middleware"
	"pincer/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg        *config.Config
	engine     *gin.Engine
	dispatcher *service.Dispatcher
	prefs      repository.PrefsRepo
}

// New 创建服务器实例
func New(cfg *config.Config, dispatcher *service.Dispatcher, prefs repository.PrefsRepo) *Server {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:        cfg,
		engine:     gin.New(),
		dispatcher: dispatcher,
		prefs:      prefs,
	}
	srv.setupRoutes()
	return srv
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.prefs)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1
	v1 := s.engine.Group("/api/v1", middleware.CORS(), middleware.BodyLimit(s.cfg.Server.MaxBodyBytes))
	{
		// 不带令牌的请求只能使用自带的密钥
		messages := v1.Group("", middleware.Identify(s.cfg.Server.AuthToken))
		messageHandler := handler.NewMessageHandler(s.dispatcher)
		messages.POST("/messages", messageHandler.Dispatch)
		messages.POST("/rewrite", messageHandler.Rewrite)
		messages.POST("/calm", messageHandler.Calm)
		messages.POST("/tooltip", messageHandler.Tooltip)

		prefs := v1.Group("/prefs", middleware.Auth(s.cfg.Server.AuthToken))
		prefsHandler := handler.NewPrefsHandler(s.prefs)
		prefs.GET("", prefsHandler.Get)
		prefs.PUT("", prefsHandler.Save)

		// 预检请求由 CORS 中间件直接应答
		v1.OPTIONS("/*path", func(c *gin.Context) {})
	}

	// CORS 转发，自行处理跨域头与方法
	if s.cfg.Relay.Enabled {
		relayHandler := handler.NewRelayHandler(&s.cfg.Relay)
		s.engine.Any("/relay/chat/completions", relayHandler.Relay)
	} else {
		log.Info().Msg("relay disabled")
	}
}

// Run 启动服务器，ctx 取消时优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
