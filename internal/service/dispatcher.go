package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"pincer/internal/ai"
	"pincer/internal/model"
	"pincer/internal/pkg/cache"
	"pincer/internal/pkg/ctxutil"
	"pincer/internal/repository"
)

// ErrUnknownMessageType 不支持的消息类型
var ErrUnknownMessageType = errors.New("unknown message type")

// FailurePolicy 失败处理策略
type FailurePolicy int

const (
	// FailHard 失败时返回 {error}
	FailHard FailurePolicy = iota
	// DegradeEmpty 失败时返回该类型的空结果，不暴露错误
	DegradeEmpty
)

func (p FailurePolicy) String() string {
	if p == FailHard {
		return "fail_hard"
	}
	return "degrade_empty"
}

// kindHandler 单个消息类型的处理方式
type kindHandler struct {
	policy FailurePolicy
	run    func(ctx context.Context, msg *model.Message) (any, error)
	empty  func() any
}

// Dispatcher 消息分发器
// 所有类型共用 凭据 -> 执行 -> 按策略处理失败 的流程，类型之间只有执行逻辑与失败策略不同
type Dispatcher struct {
	ai        *ai.Client
	cache     *cache.ResponseCache
	prefs     repository.PrefsRepo
	aiEnabled bool
	kinds     map[model.MessageType]kindHandler
}

// NewDispatcher 创建消息分发器
func NewDispatcher(aiClient *ai.Client, responseCache *cache.ResponseCache, prefs repository.PrefsRepo, aiEnabled bool) *Dispatcher {
	d := &Dispatcher{
		ai:        aiClient,
		cache:     responseCache,
		prefs:     prefs,
		aiEnabled: aiEnabled,
	}
	d.kinds = map[model.MessageType]kindHandler{
		model.MessageAIRewrite: {
			policy: FailHard,
			run:    d.rewrite,
		},
		model.MessageCalmRewrite: {
			policy: DegradeEmpty,
			run:    d.calm,
			empty:  func() any { return &model.CalmResponse{Replacements: []model.CalmReplacement{}} },
		},
		model.MessageAITooltip: {
			policy: DegradeEmpty,
			run:    d.tooltip,
			empty:  func() any { return &model.TooltipResponse{} },
		},
	}
	return d
}

// Supports 是否支持该消息类型
func (d *Dispatcher) Supports(t model.MessageType) bool {
	_, ok := d.kinds[t]
	return ok
}

// Dispatch 处理一条消息，返回可直接序列化的响应
// 只有消息类型未知时返回错误，其余失败都按类型策略转换为响应
func (d *Dispatcher) Dispatch(ctx context.Context, msg *model.Message) (resp any, err error) {
	h, ok := d.kinds[msg.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
	if !d.aiEnabled {
		return &model.ErrorResponse{Error: model.ErrAIDisabled.Error()}, nil
	}

	logCtx := log.With().
		Str("kind", string(msg.Type)).
		Str("policy", h.policy.String())
	if requestID, ok := ctxutil.GetRequestID(ctx); ok {
		logCtx = logCtx.Str("request_id", requestID)
	}
	logger := logCtx.Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Dispatch panicked")
			resp, err = d.fail(h, fmt.Errorf("internal error: %v", r)), nil
		}
	}()

	out, runErr := h.run(ctx, msg)
	if runErr != nil {
		if h.policy == FailHard {
			logger.Error().Err(runErr).Msg("Dispatch failed")
		} else {
			logger.Warn().Err(runErr).Msg("Dispatch degraded to empty result")
		}
		return d.fail(h, runErr), nil
	}
	return out, nil
}

// fail 按策略生成失败响应
func (d *Dispatcher) fail(h kindHandler, err error) any {
	if h.policy == FailHard {
		return &model.ErrorResponse{Error: err.Error()}
	}
	return h.empty()
}

// Rewrite 改写正文，成功返回结果，失败返回错误
func (d *Dispatcher) Rewrite(ctx context.Context, req *model.RewriteRequest) (*model.RewriteResult, error) {
	resp, err := d.Dispatch(ctx, &model.Message{
		Type:  model.MessageAIRewrite,
		Text:  req.Text,
		Mode:  req.Mode,
		Prefs: req.Prefs,
	})
	if err != nil {
		return nil, err
	}
	switch r := resp.(type) {
	case *model.RewriteResponse:
		return r.Data, nil
	case *model.ErrorResponse:
		return nil, errors.New(r.Error)
	default:
		return nil, fmt.Errorf("unexpected response %T", resp)
	}
}

// resolveAPIKey 优先使用请求携带的密钥，否则读取已保存的偏好设置
// 未认证的 HTTP 请求不会回退到已保存的密钥
func (d *Dispatcher) resolveAPIKey(ctx context.Context, inline *model.Preferences) (string, error) {
	if key := inline.APIKey(); key != "" {
		return key, nil
	}
	if d.prefs == nil || !ctxutil.StoredKeyAllowed(ctx) {
		return "", model.ErrCredentialMissing
	}

	stored, err := d.prefs.Get(ctx)
	if errors.Is(err, repository.ErrPrefsNotFound) {
		return "", model.ErrCredentialMissing
	}
	if err != nil {
		return "", fmt.Errorf("failed to load preferences: %w", err)
	}
	if key := stored.APIKey(); key != "" {
		return key, nil
	}
	return "", model.ErrCredentialMissing
}

func (d *Dispatcher) rewrite(ctx context.Context, msg *model.Message) (any, error) {
	apiKey, err := d.resolveAPIKey(ctx, msg.Prefs)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(msg.Text) == "" {
		return nil, model.ErrEmptyText
	}

	logger := log.With().Str("mode", string(msg.Mode)).Logger()

	key := d.cache.Key(msg.Text, msg.Mode)
	if cached, ok := d.cache.Get(key); ok {
		logger.Debug().Bool("cache_hit", true).Msg("Rewrite served from cache")
		return &model.RewriteResponse{Data: cached}, nil
	}

	out, err := d.ai.Rewrite(ctx, apiKey, msg.Text, msg.Mode)
	if err != nil {
		return nil, err
	}
	d.cache.Set(key, out.Result)

	logger.Info().
		Bool("cache_hit", false).
		Int("chunks", out.Chunks).
		Int("total_tokens", out.Usage.TotalTokens).
		Msg("Rewrite completed")
	return &model.RewriteResponse{Data: out.Result}, nil
}

func (d *Dispatcher) calm(ctx context.Context, msg *model.Message) (any, error) {
	if len(msg.Texts) == 0 {
		return &model.CalmResponse{Replacements: []model.CalmReplacement{}}, nil
	}

	apiKey, err := d.resolveAPIKey(ctx, msg.Prefs)
	if err != nil {
		return nil, err
	}

	replacements, err := d.ai.Calm(ctx, apiKey, msg.Texts)
	if err != nil {
		return nil, err
	}
	return &model.CalmResponse{Replacements: replacements}, nil
}

func (d *Dispatcher) tooltip(ctx context.Context, msg *model.Message) (any, error) {
	apiKey, err := d.resolveAPIKey(ctx, msg.Prefs)
	if err != nil {
		return nil, err
	}

	text, err := d.ai.Tooltip(ctx, apiKey, msg.ElementHTML)
	if err != nil {
		return nil, err
	}
	return &model.TooltipResponse{Text: text}, nil
}
