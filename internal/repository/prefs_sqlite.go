package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"pincer/internal/model"
)

const sqliteSchema = `
create table if not exists preferences
(
    id               text    not null primary key,
    api_key          text    not null,
    terms_accepted   integer not null default 0,
    privacy_accepted integer not null default 0,
    updated_at       datetime not null
);`

// SQLitePrefsRepo 基于 SQLite 的偏好设置仓库
type SQLitePrefsRepo struct {
	db *sqlx.DB
}

// NewSQLitePrefsRepo 打开（必要时创建）数据库文件并建表
func NewSQLitePrefsRepo(path string) (*SQLitePrefsRepo, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, err
	}
	if _, err = db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLitePrefsRepo{db: db}, nil
}

// Get 读取偏好设置
func (r *SQLitePrefsRepo) Get(ctx context.Context) (*model.Preferences, error) {
	var prefs model.Preferences
	err := r.db.GetContext(ctx, &prefs,
		`select api_key, terms_accepted, privacy_accepted, updated_at from preferences where id = ?`,
		model.PrefsRecordID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPrefsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Save 保存偏好设置（不存在时插入）
func (r *SQLitePrefsRepo) Save(ctx context.Context, prefs *model.Preferences) error {
	_, err := r.db.NamedExecContext(ctx, `
insert into preferences (id, api_key, terms_accepted, privacy_accepted, updated_at)
values (:id, :api_key, :terms_accepted, :privacy_accepted, :updated_at)
on conflict(id) do update set
    api_key          = excluded.api_key,
    terms_accepted   = excluded.terms_accepted,
    privacy_accepted = excluded.privacy_accepted,
    updated_at       = excluded.updated_at`,
		map[string]any{
			"id":               model.PrefsRecordID,
			"api_key":          prefs.OpenAIAPIKey,
			"terms_accepted":   prefs.TermsAccepted,
			"privacy_accepted": prefs.PrivacyAccepted,
			"updated_at":       time.Now().UTC(),
		},
	)
	return err
}

// Close 关闭数据库
func (r *SQLitePrefsRepo) Close() error {
	return r.db.Close()
}
