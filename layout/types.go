package layout

import (
	"math"

	"github.com/ByLCY/glyphpath/glyph"
)

// 该文件定义排版结果，供路径合并、渲染与调试 JSON 共用。所有数值均为排版单位。

// Offset 是单个字符实例的平移量（x 为笔位置，y 为所在行基线）。
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement 记录一个已经排好位置的字符。
type Placement struct {
	Char   rune       `json:"-"`
	Word   int        `json:"word"`   // 所属单词下标
	Index  int        `json:"index"`  // 在单词内的下标
	Line   int        `json:"line"`   // 行号（从 0 开始）
	Width  float64    `json:"width"`  // 可见宽度，空轮廓时为 advance
	Offset Offset     `json:"offset"` // 平移量
	Path   glyph.Path `json:"-"`      // 归一化后的字形路径（未平移）
}

// WordMetrics 记录每个单词的测量与换行决策。
type WordMetrics struct {
	Text    string  `json:"text"`
	Width   float64 `json:"width"`
	X       float64 `json:"x"`
	Line    int     `json:"line"`
	Pending float64 `json:"pending"` // 换行判断时计入的词间距
	Wrapped bool    `json:"wrapped"` // 是否在该词之前换行
}

// Diagnostic kinds.
const (
	DiagMissingGlyph = "missing-glyph"
)

// Diagnostic 记录可恢复的问题，例如缺字被替换为零宽空字形。
type Diagnostic struct {
	Kind    string `json:"kind"`
	Char    string `json:"char"`
	Word    int    `json:"word"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// Result 是一次排版的完整输出。
type Result struct {
	Placements  []Placement     `json:"placements"`
	Words       []WordMetrics   `json:"words"`
	Lines       int             `json:"lines"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
	Markers     []glyph.Contour `json:"-"`
}

// Composite 合并所有字形路径以及调试标记。
func (r *Result) Composite() CompositePath {
	if r == nil {
		return CompositePath{}
	}
	cp := Assemble(r.Placements)
	cp.Contours = append(cp.Contours, r.Markers...)
	return cp
}

// Rect 是轴对齐包围盒。
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// W returns the width of the rectangle.
func (r Rect) W() float64 { return r.MaxX - r.MinX }

// H returns the height of the rectangle.
func (r Rect) H() float64 { return r.MaxY - r.MinY }

// CompositePath 是整篇文本的闭合轮廓集合，坐标为文档绝对坐标（y 向下）。
// 轮廓顺序为插入顺序，下游不应依赖该顺序。
type CompositePath struct {
	Contours []glyph.Contour `json:"contours"`
}

// Empty reports whether the path has no contours.
func (p CompositePath) Empty() bool { return len(p.Contours) == 0 }

// SegmentCount returns the number of segments over all contours.
func (p CompositePath) SegmentCount() int {
	n := 0
	for _, c := range p.Contours {
		n += len(c)
	}
	return n
}

// Closed 判断是否所有轮廓都闭合。
func (p CompositePath) Closed() bool {
	for _, c := range p.Contours {
		if !c.Closed() {
			return false
		}
	}
	return true
}

// Bounds 返回包围盒；没有任何线段时 ok 为 false。
func (p CompositePath) Bounds() (Rect, bool) {
	b := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	ok := false
	for _, c := range p.Contours {
		for _, s := range c {
			for _, pt := range [2]glyph.Point{s.Start, s.End} {
				b.MinX = math.Min(b.MinX, pt.X)
				b.MinY = math.Min(b.MinY, pt.Y)
				b.MaxX = math.Max(b.MaxX, pt.X)
				b.MaxY = math.Max(b.MaxY, pt.Y)
				ok = true
			}
		}
	}
	if !ok {
		return Rect{}, false
	}
	return b, true
}
