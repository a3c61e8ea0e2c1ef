package glyph

// 该文件定义字形与整篇文档共用的线段/轮廓模型，坐标系均为 y 向下。

// Point 是二维坐标点，单位为排版单位（layout unit）。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add 返回平移后的点。
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Segment 是两点之间的有向直线段。
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Contour 是首尾相接的线段序列，最后一段回到第一段的起点。
type Contour []Segment

// Closed reports whether the last segment ends where the first one starts.
// An empty contour counts as closed.
func (c Contour) Closed() bool {
	if len(c) == 0 {
		return true
	}
	return c[len(c)-1].End == c[0].Start
}

// Translate returns a translated copy of the contour.
func (c Contour) Translate(dx, dy float64) Contour {
	if c == nil {
		return nil
	}
	out := make(Contour, len(c))
	for i, s := range c {
		out[i] = Segment{Start: s.Start.Add(dx, dy), End: s.End.Add(dx, dy)}
	}
	return out
}

// Path 是单个字形归一化后的闭合轮廓集合，Width 为可见墨迹的最右端。
type Path struct {
	Contours []Contour `json:"contours"`
	Width    float64   `json:"width"`
}

// Empty 判断该字形是否没有任何可见轮廓（例如空格）。
func (p Path) Empty() bool { return len(p.Contours) == 0 }

// SegmentCount 返回所有轮廓的线段总数。
func (p Path) SegmentCount() int {
	n := 0
	for _, c := range p.Contours {
		n += len(c)
	}
	return n
}

// Translate returns a copy of the path moved by (dx, dy). Width is kept.
func (p Path) Translate(dx, dy float64) Path {
	out := Path{Width: p.Width}
	if len(p.Contours) > 0 {
		out.Contours = make([]Contour, len(p.Contours))
		for i, c := range p.Contours {
			out.Contours[i] = c.Translate(dx, dy)
		}
	}
	return out
}
