package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"
)

// withPeriodsAt 生成长度为 n 的文本，仅在指定位置放置句号
func withPeriodsAt(n int, positions ...int) string {
	runes := []rune(strings.Repeat("a", n))
	for _, p := range positions {
		runes[p] = '.'
	}
	return string(runes)
}

func TestSplit(t *testing.T) {
	Convey("Split 按字符上限切分文本", t, func() {
		Convey("不超过上限时返回一个去除首尾空白的片段", func() {
			chunks := Split("  Hello there. General Kenobi.  \n", 3000)
			So(len(chunks), ShouldEqual, 1)
			So(chunks[0].Text, ShouldEqual, "Hello there. General Kenobi.")
			So(chunks[0].Index, ShouldEqual, 0)
		})

		Convey("2500 字符的文本只产生一个片段", func() {
			text := strings.Repeat("word. ", 416) + "done"
			So(utf8.RuneCountInString(text), ShouldBeLessThanOrEqualTo, 2500)
			chunks := Split(text, 3000)
			So(len(chunks), ShouldEqual, 1)
			So(chunks[0].Text, ShouldEqual, strings.TrimSpace(text))
		})

		Convey("空白文本返回 nil", func() {
			So(Split("   \n\t ", 3000), ShouldBeNil)
			So(Split("", 3000), ShouldBeNil)
		})

		Convey("句号都靠近段首时回退到原始 3000 字符边界", func() {
			text := withPeriodsAt(7000, 10, 3010, 6010)
			chunks := Split(text, 3000)
			So(len(chunks), ShouldEqual, 3)
			So(len(chunks[0].Text), ShouldEqual, 3000)
			So(len(chunks[1].Text), ShouldEqual, 3000)
			So(len(chunks[2].Text), ShouldEqual, 1000)
			So(chunks[1].Start, ShouldEqual, 3000)
			So(chunks[2].Start, ShouldEqual, 6000)
		})

		Convey("句号位于段内 1500 字符之后时在句号后断开", func() {
			text := strings.Repeat("a", 2000) + "." + strings.Repeat("b", 3000)
			chunks := Split(text, 3000)
			So(len(chunks), ShouldEqual, 2)
			So(chunks[0].Text, ShouldEqual, strings.Repeat("a", 2000)+".")
			So(chunks[1].Text, ShouldEqual, strings.Repeat("b", 3000))
			So(chunks[0].End, ShouldEqual, 2001)
		})

		Convey("句号恰好位于候选终点时片段比上限多一个字符", func() {
			text := withPeriodsAt(3101, 3000)
			chunks := Split(text, 3000)
			So(len(chunks), ShouldEqual, 2)
			So(len(chunks[0].Text), ShouldEqual, 3001)
			So(chunks[1].Start, ShouldEqual, 3001)
		})

		Convey("片段按偏移首尾相接，完整覆盖原文", func() {
			var sb strings.Builder
			for i := 0; sb.Len() < 12000; i++ {
				sb.WriteString("Sentence number ")
				sb.WriteString(strings.Repeat("x", i%37))
				sb.WriteString(". ")
			}
			text := sb.String()
			runes := []rune(text)
			chunks := Split(text, 3000)
			So(len(chunks), ShouldBeGreaterThan, 3)

			var rebuilt strings.Builder
			prevEnd := 0
			for i, c := range chunks {
				So(c.Index, ShouldEqual, i)
				So(c.Start, ShouldEqual, prevEnd)
				So(c.End, ShouldBeGreaterThan, c.Start)
				So(c.End-c.Start, ShouldBeLessThanOrEqualTo, 3001)
				So(strings.TrimSpace(string(runes[c.Start:c.End])), ShouldEqual, c.Text)
				rebuilt.WriteString(string(runes[c.Start:c.End]))
				prevEnd = c.End
			}
			So(prevEnd, ShouldEqual, len(runes))
			So(rebuilt.String(), ShouldEqual, text)
		})

		Convey("按字符而非字节切分多字节文本", func() {
			text := strings.Repeat("é", 4000)
			chunks := Split(text, 3000)
			So(len(chunks), ShouldEqual, 2)
			So(utf8.RuneCountInString(chunks[0].Text), ShouldEqual, 3000)
			So(utf8.ValidString(chunks[0].Text), ShouldBeTrue)
			So(utf8.RuneCountInString(chunks[1].Text), ShouldEqual, 1000)
		})

		Convey("非正数上限使用默认值", func() {
			chunks := Split(strings.Repeat("a", 4000), 0)
			So(len(chunks), ShouldEqual, 2)
			So(len(chunks[0].Text), ShouldEqual, DefaultLimit)
		})
	})
}

func TestChunker_Split(t *testing.T) {
	Convey("自定义边界的切分器", t, func() {
		c := New(100, 10)

		Convey("边界更小时更早采用句号", func() {
			text := strings.Repeat("a", 20) + "." + strings.Repeat("b", 150)
			chunks := c.Split(text)
			So(chunks[0].Text, ShouldEqual, strings.Repeat("a", 20)+".")
		})

		Convey("去除空白后为空的片段被丢弃且序号连续", func() {
			text := strings.Repeat("a", 100) + strings.Repeat(" ", 100) + strings.Repeat("c", 50)
			chunks := c.Split(text)
			So(len(chunks), ShouldEqual, 2)
			So(chunks[1].Index, ShouldEqual, 1)
			So(chunks[1].Text, ShouldEqual, strings.Repeat("c", 50))
		})
	})
}

func TestLastPeriod(t *testing.T) {
	Convey("lastPeriod 只在下界之后查找句号", t, func() {
		runes := []rune(withPeriodsAt(50, 5, 20, 30))

		So(lastPeriod(runes, 49, 0), ShouldEqual, 30)
		So(lastPeriod(runes, 25, 0), ShouldEqual, 20)
		So(lastPeriod(runes, 49, 30), ShouldEqual, -1)
		So(lastPeriod(runes, 29, 20), ShouldEqual, -1)
		So(lastPeriod(runes, 29, 19), ShouldEqual, 20)
		So(lastPeriod(runes, 100, 0), ShouldEqual, 30)
	})
}

func TestSplit_LargeInput(t *testing.T) {
	Convey("没有句号的长文本按上限等长切分", t, func() {
		const n = 3_000_000
		chunks := Split(strings.Repeat("a", n), DefaultLimit)

		So(len(chunks), ShouldEqual, n/DefaultLimit)
		for i, chunk := range chunks {
			if chunk.Start != i*DefaultLimit || chunk.End != (i+1)*DefaultLimit {
				So(chunk.Start, ShouldEqual, i*DefaultLimit)
				So(chunk.End, ShouldEqual, (i+1)*DefaultLimit)
			}
		}
		So(chunks[len(chunks)-1].End, ShouldEqual, n)
	})

	Convey("靠近段首的句号不会被采用", t, func() {
		text := withPeriodsAt(9000, 100, 3100, 6100)
		chunks := Split(text, DefaultLimit)

		So(len(chunks), ShouldEqual, 3)
		So(chunks[0].End, ShouldEqual, 3000)
		So(chunks[1].End, ShouldEqual, 6000)
		So(chunks[2].End, ShouldEqual, 9000)
	})
}
