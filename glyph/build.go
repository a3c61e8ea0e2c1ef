package glyph

import "math"

// Build 将原始轮廓转换为归一化的闭合折线路径：
//  1. y 取反，从字体的 y 向上转为输出的 y 向下，基线保持在 y=0；
//  2. 整体平移 -minX，使字形自身最左端墨迹位于 x=0（与字体左侧留白无关）；
//  3. 每个轮廓按相邻点生成线段，最后补一条回到首点的闭合线段。
//
// 返回路径的 Width 为平移后的最大 x；没有点时为 0。单点轮廓会得到一条零长度的闭合线段。
func Build(o Outline) Path {
	if len(o.Points) == 0 {
		return Path{}
	}

	pts := make([]Point, len(o.Points))
	minX := math.Inf(1)
	for i, p := range o.Points {
		pts[i] = Point{X: p.X, Y: -p.Y}
		minX = math.Min(minX, pts[i].X)
	}
	maxX := 0.0
	for i := range pts {
		pts[i].X -= minX
		maxX = math.Max(maxX, pts[i].X)
	}

	flipped := Outline{Points: pts, Ends: o.Ends}
	rings := flipped.Contours()
	path := Path{Width: maxX, Contours: make([]Contour, 0, len(rings))}
	for _, ring := range rings {
		path.Contours = append(path.Contours, closeRing(ring))
	}
	return path
}

func closeRing(pts []Point) Contour {
	c := make(Contour, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		c = append(c, Segment{Start: pts[i], End: pts[i+1]})
	}
	return append(c, Segment{Start: pts[len(pts)-1], End: pts[0]})
}
