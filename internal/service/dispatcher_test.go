package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"pincer/internal/ai"
	"pincer/internal/ai/completion"
	"pincer/internal/config"
	"pincer/internal/model"
	"pincer/internal/pkg/cache"
	"pincer/internal/pkg/ctxutil"
	"pincer/internal/repository"
)

// fakeCompleter 按顺序返回预设回复并记录请求
type fakeCompleter struct {
	mu       sync.Mutex
	replies  []string
	failAt   int
	err      error
	panicMsg string
	requests []*completion.Request
}

func (f *fakeCompleter) Complete(ctx context.Context, req *completion.Request) (*completion.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.failAt == len(f.requests) {
		return nil, f.err
	}
	reply := ""
	if i := len(f.requests) - 1; i < len(f.replies) {
		reply = f.replies[i]
	}
	return &completion.Response{Content: reply}, nil
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func testConfig() *config.Config {
	return &config.Config{
		Rewrite: config.RewriteConfig{ChunkLimit: 3000, MinBoundary: 1500, Temperature: 0.3},
		Calm:    config.CalmConfig{Temperature: 0.3},
		Tooltip: config.TooltipConfig{Temperature: 0.2, MaxTokens: 60, MaxHTMLRunes: 2000},
		Cache:   config.CacheConfig{TTL: 10 * time.Minute, PrefixLen: 80},
	}
}

func newTestDispatcher(completer completion.Client, prefs repository.PrefsRepo, responseCache *cache.ResponseCache) *Dispatcher {
	cfg := testConfig()
	if responseCache == nil {
		responseCache = cache.NewResponseCache(&cfg.Cache)
	}
	return NewDispatcher(ai.NewClientWithCompleter(completer, cfg), responseCache, prefs, true)
}

func withKey(key string) *model.Preferences {
	return &model.Preferences{OpenAIAPIKey: key}
}

func TestDispatcher_Rewrite(t *testing.T) {
	Convey("AI_REWRITE", t, func() {
		ctx := context.Background()

		Convey("缺少密钥时返回错误且不发起调用", func() {
			completer := &fakeCompleter{}
			d := newTestDispatcher(completer, repository.NewMemoryPrefsRepo(""), nil)

			resp, err := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: "Hello.", Mode: model.ModePlain})
			So(err, ShouldBeNil)
			So(resp, ShouldResemble, &model.ErrorResponse{Error: "No API key configured."})
			So(completer.calls(), ShouldEqual, 0)
		})

		Convey("请求未携带密钥时读取已保存的偏好设置", func() {
			completer := &fakeCompleter{replies: []string{`{"simplified_text":"Hi."}`}}
			d := newTestDispatcher(completer, repository.NewMemoryPrefsRepo("gsk_stored"), nil)

			resp, err := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: "Hello there.", Mode: model.ModePlain})
			So(err, ShouldBeNil)
			So(resp.(*model.RewriteResponse).Data.SimplifiedText, ShouldEqual, "Hi.")
			So(completer.requests[0].APIKey, ShouldEqual, "gsk_stored")
		})

		Convey("未认证的请求不会使用已保存的密钥", func() {
			completer := &fakeCompleter{replies: []string{`{}`}}
			d := newTestDispatcher(completer, repository.NewMemoryPrefsRepo("gsk_stored"), nil)
			denied := ctxutil.WithoutStoredKey(ctx)

			resp, err := d.Dispatch(denied, &model.Message{Type: model.MessageAIRewrite, Text: "Hello there."})
			So(err, ShouldBeNil)
			So(resp, ShouldResemble, &model.ErrorResponse{Error: "No API key configured."})
			So(completer.calls(), ShouldEqual, 0)

			Convey("自带密钥时照常处理", func() {
				_, err := d.Dispatch(denied, &model.Message{Type: model.MessageAIRewrite, Text: "Hello there.", Prefs: withKey("gsk_inline")})
				So(err, ShouldBeNil)
				So(completer.calls(), ShouldEqual, 1)
				So(completer.requests[0].APIKey, ShouldEqual, "gsk_inline")
			})
		})

		Convey("请求携带的密钥优先", func() {
			completer := &fakeCompleter{replies: []string{`{}`}}
			d := newTestDispatcher(completer, repository.NewMemoryPrefsRepo("gsk_stored"), nil)

			_, err := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: "x", Prefs: withKey("gsk_inline")})
			So(err, ShouldBeNil)
			So(completer.requests[0].APIKey, ShouldEqual, "gsk_inline")
		})

		Convey("2500 字符输入：一次调用，结果原样返回", func() {
			reply := `{"simplified_text":"Short.","bullet_version":["a"],"step_version":[],"literal_version":"L","actions_detected":[],"deadlines_detected":["Mon"]}`
			completer := &fakeCompleter{replies: []string{reply}}
			d := newTestDispatcher(completer, nil, nil)

			resp, err := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: strings.Repeat("w", 2500), Mode: model.ModePlain, Prefs: withKey("gsk_k")})
			So(err, ShouldBeNil)
			So(completer.calls(), ShouldEqual, 1)
			data := resp.(*model.RewriteResponse).Data
			So(data.SimplifiedText, ShouldEqual, "Short.")
			So(data.LiteralVersion, ShouldEqual, "L")
			So(data.DeadlinesDetected, ShouldResemble, []string{"Mon"})
		})

		Convey("模型返回非 JSON 文本时作为 simplified_text 成功返回", func() {
			completer := &fakeCompleter{replies: []string{"Sorry, I can't help."}}
			d := newTestDispatcher(completer, nil, nil)

			resp, err := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: "Some text.", Prefs: withKey("gsk_k")})
			So(err, ShouldBeNil)
			data := resp.(*model.RewriteResponse).Data
			So(data.SimplifiedText, ShouldEqual, "Sorry, I can't help.")
			So(data.BulletVersion, ShouldResemble, []string{})
			So(data.LiteralVersion, ShouldEqual, "")
		})

		Convey("TTL 内同一前缀与风格命中缓存", func() {
			now := time.Now()
			responseCache := cache.NewResponseCache(&testConfig().Cache).WithClock(func() time.Time { return now })
			completer := &fakeCompleter{replies: []string{`{"simplified_text":"first"}`, `{"simplified_text":"second"}`}}
			d := newTestDispatcher(completer, nil, responseCache)
			msg := &model.Message{Type: model.MessageAIRewrite, Text: "Cache me.", Mode: model.ModeSteps, Prefs: withKey("gsk_k")}

			first, _ := d.Dispatch(ctx, msg)
			now = now.Add(5 * time.Minute)
			second, _ := d.Dispatch(ctx, msg)
			So(completer.calls(), ShouldEqual, 1)
			So(second.(*model.RewriteResponse).Data, ShouldEqual, first.(*model.RewriteResponse).Data)

			Convey("过期后重新调用", func() {
				now = now.Add(6 * time.Minute)
				third, _ := d.Dispatch(ctx, msg)
				So(completer.calls(), ShouldEqual, 2)
				So(third.(*model.RewriteResponse).Data.SimplifiedText, ShouldEqual, "second")
			})

			Convey("风格不同不命中", func() {
				other := *msg
				other.Mode = model.ModePlain
				_, _ = d.Dispatch(ctx, &other)
				So(completer.calls(), ShouldEqual, 2)
			})
		})

		Convey("后续片段上游失败：整体失败且不写缓存", func() {
			completer := &fakeCompleter{
				replies: []string{`{"simplified_text":"one"}`},
				failAt:  2,
				err:     &completion.UpstreamError{StatusCode: 500, Body: "oops"},
			}
			responseCache := cache.NewResponseCache(&testConfig().Cache)
			d := newTestDispatcher(completer, nil, responseCache)

			resp, err := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: strings.Repeat("z", 7000), Prefs: withKey("gsk_k")})
			So(err, ShouldBeNil)
			So(resp, ShouldResemble, &model.ErrorResponse{Error: "Completion API error 500: oops"})
			So(completer.calls(), ShouldEqual, 2)
			So(responseCache.Len(), ShouldEqual, 0)
		})

		Convey("空文本返回错误", func() {
			completer := &fakeCompleter{}
			d := newTestDispatcher(completer, nil, nil)
			resp, _ := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: "  ", Prefs: withKey("gsk_k")})
			So(resp, ShouldResemble, &model.ErrorResponse{Error: model.ErrEmptyText.Error()})
			So(completer.calls(), ShouldEqual, 0)
		})

		Convey("处理过程中 panic 转换为错误响应", func() {
			completer := &fakeCompleter{panicMsg: "boom"}
			d := newTestDispatcher(completer, nil, nil)
			resp, err := d.Dispatch(ctx, &model.Message{Type: model.MessageAIRewrite, Text: "x", Prefs: withKey("gsk_k")})
			So(err, ShouldBeNil)
			So(resp.(*model.ErrorResponse).Error, ShouldContainSubstring, "boom")
		})

		Convey("Rewrite 便捷方法返回结果或错误", func() {
			completer := &fakeCompleter{replies: []string{`{"simplified_text":"ok"}`}}
			d := newTestDispatcher(completer, nil, nil)

			result, err := d.Rewrite(ctx, &model.RewriteRequest{Text: "t", Mode: model.ModePlain, Prefs: withKey("gsk_k")})
			So(err, ShouldBeNil)
			So(result.SimplifiedText, ShouldEqual, "ok")

			_, err = d.Rewrite(ctx, &model.RewriteRequest{Text: "t"})
			So(err.Error(), ShouldEqual, "No API key configured.")
		})
	})
}

func TestDispatcher_Calm(t *testing.T) {
	Convey("CALM_REWRITE", t, func() {
		ctx := context.Background()

		Convey("缺少密钥时返回空列表", func() {
			completer := &fakeCompleter{}
			d := newTestDispatcher(completer, repository.NewMemoryPrefsRepo(""), nil)

			resp, err := d.Dispatch(ctx, &model.Message{Type: model.MessageCalmRewrite, Texts: []string{"ACT NOW"}})
			So(err, ShouldBeNil)
			So(resp, ShouldResemble, &model.CalmResponse{Replacements: []model.CalmReplacement{}})
			So(completer.calls(), ShouldEqual, 0)
		})

		Convey("空输入直接返回空列表", func() {
			completer := &fakeCompleter{}
			d := newTestDispatcher(completer, nil, nil)
			resp, _ := d.Dispatch(ctx, &model.Message{Type: model.MessageCalmRewrite, Prefs: withKey("gsk_k")})
			So(resp.(*model.CalmResponse).Replacements, ShouldBeEmpty)
			So(completer.calls(), ShouldEqual, 0)
		})

		Convey("成功返回替换对", func() {
			completer := &fakeCompleter{replies: []string{`{"replacements":[{"original":"ACT NOW","calm":"You can act when ready."}]}`}}
			d := newTestDispatcher(completer, nil, nil)
			resp, _ := d.Dispatch(ctx, &model.Message{Type: model.MessageCalmRewrite, Texts: []string{"ACT NOW"}, Prefs: withKey("gsk_k")})
			So(resp.(*model.CalmResponse).Replacements, ShouldResemble, []model.CalmReplacement{{Original: "ACT NOW", Calm: "You can act when ready."}})
		})

		Convey("上游失败或回复无法解析时返回空列表", func() {
			failing := &fakeCompleter{failAt: 1, err: completion.ErrTransport}
			resp, err := newTestDispatcher(failing, nil, nil).Dispatch(ctx, &model.Message{Type: model.MessageCalmRewrite, Texts: []string{"x"}, Prefs: withKey("gsk_k")})
			So(err, ShouldBeNil)
			So(resp.(*model.CalmResponse).Replacements, ShouldBeEmpty)

			garbled := &fakeCompleter{replies: []string{"not json"}}
			resp, _ = newTestDispatcher(garbled, nil, nil).Dispatch(ctx, &model.Message{Type: model.MessageCalmRewrite, Texts: []string{"x"}, Prefs: withKey("gsk_k")})
			So(resp.(*model.CalmResponse).Replacements, ShouldNotBeNil)
			So(resp.(*model.CalmResponse).Replacements, ShouldBeEmpty)
		})
	})
}

func TestDispatcher_Tooltip(t *testing.T) {
	Convey("AI_TOOLTIP", t, func() {
		ctx := context.Background()

		Convey("返回去除空白的描述", func() {
			completer := &fakeCompleter{replies: []string{" Opens the menu. "}}
			d := newTestDispatcher(completer, nil, nil)
			resp, _ := d.Dispatch(ctx, &model.Message{Type: model.MessageAITooltip, ElementHTML: "<button>☰</button>", Prefs: withKey("gsk_k")})
			So(*resp.(*model.TooltipResponse).Text, ShouldEqual, "Opens the menu.")
		})

		Convey("缺少密钥或调用失败时返回 null", func() {
			completer := &fakeCompleter{}
			resp, _ := newTestDispatcher(completer, nil, nil).Dispatch(ctx, &model.Message{Type: model.MessageAITooltip, ElementHTML: "<a>x</a>"})
			So(resp.(*model.TooltipResponse).Text, ShouldBeNil)

			failing := &fakeCompleter{failAt: 1, err: errors.New("timeout")}
			resp, _ = newTestDispatcher(failing, nil, nil).Dispatch(ctx, &model.Message{Type: model.MessageAITooltip, ElementHTML: "<a>x</a>", Prefs: withKey("gsk_k")})
			So(resp.(*model.TooltipResponse).Text, ShouldBeNil)
		})
	})
}

func TestDispatcher_Envelope(t *testing.T) {
	Convey("消息信封", t, func() {
		ctx := context.Background()

		Convey("未知类型返回错误", func() {
			d := newTestDispatcher(&fakeCompleter{}, nil, nil)
			_, err := d.Dispatch(ctx, &model.Message{Type: "PING"})
			So(errors.Is(err, ErrUnknownMessageType), ShouldBeTrue)
			So(d.Supports("PING"), ShouldBeFalse)
			So(d.Supports(model.MessageAITooltip), ShouldBeTrue)
		})

		Convey("关闭 AI 功能时所有类型返回禁用错误", func() {
			completer := &fakeCompleter{}
			cfg := testConfig()
			d := NewDispatcher(ai.NewClientWithCompleter(completer, cfg), cache.NewResponseCache(&cfg.Cache), nil, false)

			for _, kind := range []model.MessageType{model.MessageAIRewrite, model.MessageCalmRewrite, model.MessageAITooltip} {
				resp, err := d.Dispatch(ctx, &model.Message{Type: kind, Text: "x", Texts: []string{"x"}, Prefs: withKey("gsk_k")})
				So(err, ShouldBeNil)
				So(resp, ShouldResemble, &model.ErrorResponse{Error: "AI features are disabled in this build."})
			}
			So(completer.calls(), ShouldEqual, 0)
		})
	})
}
