package model

import (
	"errors"
	"strings"
	"time"
)

// PrefsRecordID 偏好设置记录的唯一标识（与扩展存储键一致）
const PrefsRecordID = "pincerPrefs"

// APIKeyPrefix 可接受的密钥前缀
const APIKeyPrefix = "gsk_"

// Preferences 偏好设置实体（单条记录）
type Preferences struct {
	OpenAIAPIKey    string    `bson:"openaiApiKey" json:"openaiApiKey,omitempty" db:"api_key"`
	TermsAccepted   bool      `bson:"termsAccepted" json:"termsAccepted,omitempty" db:"terms_accepted"`
	PrivacyAccepted bool      `bson:"privacyAccepted" json:"privacyAccepted,omitempty" db:"privacy_accepted"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt,omitempty" db:"updated_at"`
}

var (
	ErrInvalidAPIKey      = errors.New("API key must start with " + APIKeyPrefix)
	ErrTermsNotAccepted   = errors.New("terms of use must be accepted")
	ErrPrivacyNotAccepted = errors.New("privacy policy must be accepted")
)

// APIKey 返回去除空白后的密钥，nil 安全
func (p *Preferences) APIKey() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.OpenAIAPIKey)
}

// ValidateForSave 保存前校验：密钥前缀以及两项确认
func (p *Preferences) ValidateForSave() error {
	if !strings.HasPrefix(p.APIKey(), APIKeyPrefix) {
		return ErrInvalidAPIKey
	}
	if !p.TermsAccepted {
		return ErrTermsNotAccepted
	}
	if !p.PrivacyAccepted {
		return ErrPrivacyNotAccepted
	}
	return nil
}

// Masked 返回隐藏密钥后的副本，用于展示
func (p *Preferences) Masked() *Preferences {
	cp := *p
	key := p.APIKey()
	if len(key) > 8 {
		cp.OpenAIAPIKey = key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
	} else if key != "" {
		cp.OpenAIAPIKey = strings.Repeat("*", len(key))
	}
	return &cp
}
