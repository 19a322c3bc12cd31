package htmltext

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompact(t *testing.T) {
	Convey("Compact 压缩元素 HTML", t, func() {
		Convey("保留元素本身，合并空白", func() {
			out := Compact("  <button class=\"save\">\n   Save\n   draft </button>  ", 0)
			So(out, ShouldEqual, `<button class="save"> Save draft </button>`)
		})

		Convey("移除脚本与样式节点", func() {
			out := Compact(`<div><script>alert(1)</script><style>.a{}</style><a href="/help">Help</a></div>`, 0)
			So(out, ShouldEqual, `<div><a href="/help">Help</a></div>`)
		})

		Convey("只有噪声节点时返回空串", func() {
			So(Compact(`<script>track()</script>`, 0), ShouldEqual, "")
		})

		Convey("空白输入返回空串", func() {
			So(Compact(" \n\t ", 100), ShouldEqual, "")
		})

		Convey("超过上限时按字符截断", func() {
			out := Compact("<p>"+strings.Repeat("é", 50)+"</p>", 10)
			So([]rune(out), ShouldHaveLength, 10)
			So(out, ShouldStartWith, "<p>")
		})
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate 不切断多字节字符", t, func() {
		So(Truncate("héllo", 2), ShouldEqual, "hé")
		So(Truncate("héllo", 0), ShouldEqual, "héllo")
		So(Truncate("hi", 5), ShouldEqual, "hi")
	})
}
