package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/glyphpath/glyph"
	"github.com/ByLCY/glyphpath/layout"
	"github.com/ByLCY/glyphpath/renderer"
)

// Format 为输出格式。
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatPath Format = "path" // 仅输出 SVG path 的 d 属性（排版单位）
)

// DefaultPadding 是包围盒四周的留白（排版单位）。
const DefaultPadding = 100.0

// ParseFormat 解析格式名称，空字符串视为 svg。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPDF, FormatPath:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的输出格式 %q（可选：svg、pdf、path）", s)
	}
}

// Meta 记录 PDF 元信息。
type Meta struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
}

// Options configures the canvas renderer.
type Options struct {
	Format Format
	// Scale 为每个排版单位对应的毫米数，默认 layout.UnitsToMM(1)。
	Scale float64
	// Padding 为包围盒四周的留白（排版单位），负数表示不留白。
	Padding float64
	// Fill 为填充色，为空时使用黑色；FillNone 为 true 时不填充（适合笔式绘图仪）。
	Fill     color.Color
	FillNone bool
	// Stroke/StrokeWidth（mm）仅在 StrokeWidth > 0 时生效。
	Stroke      color.Color
	StrokeWidth float64
	Meta        Meta
}

// Renderer draws composite paths via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer, filling unset options with defaults.
func NewRenderer(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if opts.Scale <= 0 {
		opts.Scale = layout.UnitsToMM(1)
	}
	if opts.Padding == 0 {
		opts.Padding = DefaultPadding
	} else if opts.Padding < 0 {
		opts.Padding = 0
	}
	if opts.Fill == nil {
		opts.Fill = canvas.Black
	}
	if opts.Stroke == nil {
		opts.Stroke = canvas.Black
	}
	return &Renderer{opts: opts}
}

// Render 输出整条复合路径，页面大小为包围盒加留白，坐标原点在左上角。
func (r *Renderer) Render(path layout.CompositePath) ([]byte, error) {
	if r.opts.Format == FormatPath {
		return []byte(PathData(path)), nil
	}

	view := r.viewBox(path)
	scale := r.opts.Scale
	width, height := view.W()*scale, view.H()*scale

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 与排版坐标一致：y 向下
	r.applyStyle(ctx)
	if !path.Empty() {
		ctx.DrawPath(0, 0, toCanvasPath(path, func(p glyph.Point) (float64, float64) {
			return (p.X - view.MinX) * scale, (p.Y - view.MinY) * scale
		}))
	}

	var buf bytes.Buffer
	switch r.opts.Format {
	case FormatPDF:
		writer := pdf.New(&buf, width, height, nil)
		meta := r.opts.Meta
		writer.SetInfo(meta.Title, meta.Subject, strings.Join(meta.Keywords, ", "), meta.Author, meta.Creator)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case FormatSVG:
		writer := svg.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", r.opts.Format)
	}
	return buf.Bytes(), nil
}

// viewBox 返回需要输出的区域（排版单位）。空路径时得到仅含留白的区域。
func (r *Renderer) viewBox(path layout.CompositePath) layout.Rect {
	pad := r.opts.Padding
	b, ok := path.Bounds()
	if !ok {
		b = layout.Rect{}
	}
	view := layout.Rect{MinX: b.MinX - pad, MinY: b.MinY - pad, MaxX: b.MaxX + pad, MaxY: b.MaxY + pad}
	// canvas 需要正的页面尺寸
	if view.W() <= 0 {
		view.MaxX = view.MinX + 1
	}
	if view.H() <= 0 {
		view.MaxY = view.MinY + 1
	}
	return view
}

func (r *Renderer) applyStyle(ctx *canvas.Context) {
	if r.opts.FillNone {
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	} else {
		ctx.SetFillColor(r.opts.Fill)
	}
	if r.opts.StrokeWidth > 0 {
		ctx.SetStrokeColor(r.opts.Stroke)
		ctx.SetStrokeWidth(r.opts.StrokeWidth)
	} else {
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	}
}

// toCanvasPath 将闭合轮廓转换为 canvas 路径；闭合线段由 Close 隐式给出。
func toCanvasPath(path layout.CompositePath, pt func(glyph.Point) (float64, float64)) *canvas.Path {
	p := &canvas.Path{}
	for _, contour := range path.Contours {
		if len(contour) == 0 {
			continue
		}
		p.MoveTo(pt(contour[0].Start))
		for _, seg := range contour[:len(contour)-1] {
			p.LineTo(pt(seg.End))
		}
		p.Close()
	}
	return p
}

// PathData 返回排版坐标下的 SVG path 数据（d 属性）。
func PathData(path layout.CompositePath) string {
	if path.Empty() {
		return ""
	}
	return toCanvasPath(path, func(p glyph.Point) (float64, float64) { return p.X, p.Y }).ToSVG()
}
