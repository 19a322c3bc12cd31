package repository

import (
	"context"
	"errors"
	"time"

	"pincer/internal/model"
	"pincer/internal/pkg/cache"
)

// RedisPrefsRepo 基于 Redis 的偏好设置仓库，记录不过期
type RedisPrefsRepo struct {
	cache *cache.RedisCache
}

// NewRedisPrefsRepo 创建 Redis 仓库
func NewRedisPrefsRepo(c *cache.RedisCache) *RedisPrefsRepo {
	return &RedisPrefsRepo{cache: c}
}

// Get 读取偏好设置
func (r *RedisPrefsRepo) Get(ctx context.Context) (*model.Preferences, error) {
	var prefs model.Preferences
	if err := r.cache.Get(ctx, model.PrefsRecordID, &prefs); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrPrefsNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

// Save 保存偏好设置
func (r *RedisPrefsRepo) Save(ctx context.Context, prefs *model.Preferences) error {
	cp := *prefs
	cp.UpdatedAt = time.Now()
	return r.cache.Set(ctx, model.PrefsRecordID, &cp, 0)
}
