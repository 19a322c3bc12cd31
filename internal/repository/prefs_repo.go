package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"pincer/internal/model"
)

// ErrPrefsNotFound 尚未保存过偏好设置
var ErrPrefsNotFound = errors.New("preferences not found")

// PrefsRepo 偏好设置仓库，只保存一条记录（ID 为 model.PrefsRecordID）
type PrefsRepo interface {
	Get(ctx context.Context) (*model.Preferences, error)
	Save(ctx context.Context, prefs *model.Preferences) error
}

// MemoryPrefsRepo 进程内偏好设置仓库
type MemoryPrefsRepo struct {
	mu    sync.RWMutex
	prefs *model.Preferences
}

// NewMemoryPrefsRepo 创建内存仓库，apiKey 非空时作为初始密钥
func NewMemoryPrefsRepo(apiKey string) *MemoryPrefsRepo {
	repo := &MemoryPrefsRepo{}
	if apiKey != "" {
		repo.prefs = &model.Preferences{
			OpenAIAPIKey:    apiKey,
			TermsAccepted:   true,
			PrivacyAccepted: true,
			UpdatedAt:       time.Now(),
		}
	}
	return repo
}

// Get 读取偏好设置
func (r *MemoryPrefsRepo) Get(ctx context.Context) (*model.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.prefs == nil {
		return nil, ErrPrefsNotFound
	}
	cp := *r.prefs
	return &cp, nil
}

// Save 保存偏好设置
func (r *MemoryPrefsRepo) Save(ctx context.Context, prefs *model.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *prefs
	cp.UpdatedAt = time.Now()
	r.prefs = &cp
	return nil
}
