package layout

// Assemble 将每个字形路径按其 Offset 平移后合并为一条复合路径。
// 输出轮廓保持插入顺序（字符顺序、行顺序），源路径不会被修改。
func Assemble(placed []Placement) CompositePath {
	var out CompositePath
	for _, pl := range placed {
		for _, c := range pl.Path.Contours {
			out.Contours = append(out.Contours, c.Translate(pl.Offset.X, pl.Offset.Y))
		}
	}
	return out
}
