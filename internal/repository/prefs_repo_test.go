package repository

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"pincer/internal/model"
)

func TestMemoryPrefsRepo(t *testing.T) {
	Convey("MemoryPrefsRepo", t, func() {
		ctx := context.Background()

		Convey("未保存时返回 ErrPrefsNotFound", func() {
			_, err := NewMemoryPrefsRepo("").Get(ctx)
			So(err, ShouldEqual, ErrPrefsNotFound)
		})

		Convey("初始密钥视为已确认", func() {
			prefs, err := NewMemoryPrefsRepo("gsk_seed").Get(ctx)
			So(err, ShouldBeNil)
			So(prefs.APIKey(), ShouldEqual, "gsk_seed")
			So(prefs.TermsAccepted, ShouldBeTrue)
		})

		Convey("保存后读取副本", func() {
			repo := NewMemoryPrefsRepo("")
			in := &model.Preferences{OpenAIAPIKey: "gsk_a", TermsAccepted: true, PrivacyAccepted: true}
			So(repo.Save(ctx, in), ShouldBeNil)

			in.OpenAIAPIKey = "changed"
			out, err := repo.Get(ctx)
			So(err, ShouldBeNil)
			So(out.OpenAIAPIKey, ShouldEqual, "gsk_a")
			So(out.UpdatedAt.IsZero(), ShouldBeFalse)
		})
	})
}

func TestSQLitePrefsRepo(t *testing.T) {
	Convey("SQLitePrefsRepo", t, func() {
		ctx := context.Background()
		repo, err := NewSQLitePrefsRepo(filepath.Join(t.TempDir(), "nested", "pincer.sqlite"))
		So(err, ShouldBeNil)
		Reset(func() { _ = repo.Close() })

		Convey("未保存时返回 ErrPrefsNotFound", func() {
			_, err := repo.Get(ctx)
			So(err, ShouldEqual, ErrPrefsNotFound)
		})

		Convey("保存后覆盖同一条记录", func() {
			So(repo.Save(ctx, &model.Preferences{OpenAIAPIKey: "gsk_first", TermsAccepted: true, PrivacyAccepted: true}), ShouldBeNil)
			So(repo.Save(ctx, &model.Preferences{OpenAIAPIKey: "gsk_second", TermsAccepted: true}), ShouldBeNil)

			prefs, err := repo.Get(ctx)
			So(err, ShouldBeNil)
			So(prefs.OpenAIAPIKey, ShouldEqual, "gsk_second")
			So(prefs.TermsAccepted, ShouldBeTrue)
			So(prefs.PrivacyAccepted, ShouldBeFalse)

			var count int
			So(repo.db.Get(&count, "select count(*) from preferences"), ShouldBeNil)
			So(count, ShouldEqual, 1)
		})
	})
}
