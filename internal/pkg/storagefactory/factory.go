package storagefactory

import (
	"context"
	"fmt"

	"pincer/internal/config"
	"pincer/internal/pkg/cache"
	"pincer/internal/pkg/mongodb"
	"pincer/internal/repository"
)

// CloseFunc 释放存储连接
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// NewPrefsRepo 根据配置创建偏好设置仓库
func NewPrefsRepo(ctx context.Context, cfg *config.Config) (repository.PrefsRepo, CloseFunc, error) {
	switch cfg.Prefs.Store {
	case "", "memory":
		return repository.NewMemoryPrefsRepo(cfg.Prefs.APIKey), noopClose, nil
	case "redis":
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		return repository.NewRedisPrefsRepo(rc), func(context.Context) error { return rc.Close() }, nil
	case "mongo":
		mc, err := mongodb.New(ctx, &cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect mongodb: %w", err)
		}
		return repository.NewMongoPrefsRepo(mc.Database()), mc.Close, nil
	case "sqlite":
		repo, err := repository.NewSQLitePrefsRepo(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return repo, func(context.Context) error { return repo.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported prefs store: %s", cfg.Prefs.Store)
	}
}
