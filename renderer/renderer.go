package renderer

import "github.com/ByLCY/glyphpath/layout"

// Renderer 将复合路径序列化为最终文件，例如 SVG 或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(path layout.CompositePath) ([]byte, error)
}
